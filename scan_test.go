package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"smartdoor/reader"
	"smartdoor/rfdeon"
)

// step is one scripted poll cycle of a fake tag source.
type step struct {
	raw []byte
	err error
}

type fakeSource struct {
	steps  []step
	next   int
	closed atomic.Int32
	cancel context.CancelFunc // fired when the script runs out
}

func (f *fakeSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.next >= len(f.steps) {
		if f.cancel != nil {
			f.cancel()
		}
		return nil, ctx.Err()
	}
	s := f.steps[f.next]
	f.next++
	return s.raw, s.err
}

func (f *fakeSource) Close() error {
	f.closed.Add(1)
	return nil
}

// runScanner drives a tagScanner over the scripted source to
// completion and returns the states the fuser published.
func runScanner(t *testing.T, src *fakeSource, dir *Directory, onFatal func(error)) []State {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src.cancel = cancel

	var states []State
	fuser := NewFuser(0, func(st State, _ image.Image) {
		states = append(states, st)
	})

	s := &tagScanner{src: src, dir: dir, fuser: fuser, onFatal: onFatal}
	done := make(chan struct{})
	go func() {
		s.run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scanner did not stop")
	}
	if got := src.closed.Load(); got != 1 {
		t.Fatalf("source closed %d times, want 1", got)
	}
	return states
}

var scanTag = []byte{0xE2, 0x00, 0x34, 0x12, 0x01, 0xAB, 0xCD, 0xEF, 0x00, 0x11, 0x22, 0x33}

func scanDirectory(t *testing.T) *Directory {
	t.Helper()
	path := writeTagFile(t, rfdeon.HexReadable(scanTag)+" - Alice\n")
	d, err := LoadDirectory(path)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestScannerPublishesKnownTag(t *testing.T) {
	src := &fakeSource{steps: []step{
		{raw: nil},     // empty poll cycle
		{raw: scanTag}, // enrolled tag
	}}

	states := runScanner(t, src, scanDirectory(t), nil)
	if len(states) != 1 {
		t.Fatalf("published %d states, want 1", len(states))
	}
	tag := states[0].Tag
	if tag.Kind != KindKnown || tag.Name != "Alice" {
		t.Errorf("published %+v, want known Alice", tag)
	}
	if tag.At.IsZero() {
		t.Error("published identity has no timestamp")
	}
}

func TestScannerPublishesUnknownTag(t *testing.T) {
	stranger := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	src := &fakeSource{steps: []step{{raw: stranger}}}

	states := runScanner(t, src, scanDirectory(t), nil)
	if len(states) != 1 {
		t.Fatalf("published %d states, want 1", len(states))
	}
	if states[0].Tag.Kind != KindUnknown {
		t.Errorf("unenrolled tag published as %+v", states[0].Tag)
	}
}

func TestScannerSkipsTransientErrors(t *testing.T) {
	src := &fakeSource{steps: []step{
		{err: &rfdeon.FrameError{Reason: "bad checksum"}},
		{err: fmt.Errorf("ascii reader: %w", reader.ErrNoise)},
		{raw: scanTag},
	}}

	states := runScanner(t, src, scanDirectory(t), nil)
	if len(states) != 1 {
		t.Fatalf("published %d states, want 1 (noise must not publish)", len(states))
	}
	if states[0].Tag.Name != "Alice" {
		t.Errorf("published %+v after noise, want Alice", states[0].Tag)
	}
}

func TestScannerStopsOnFatalError(t *testing.T) {
	src := &fakeSource{steps: []step{
		{raw: scanTag},
		{err: errors.New("device unplugged")},
		{raw: scanTag}, // must never be reached
	}}

	var fatal error
	states := runScanner(t, src, scanDirectory(t), func(err error) { fatal = err })

	if fatal == nil || fatal.Error() != "device unplugged" {
		t.Errorf("onFatal got %v", fatal)
	}
	if src.next != 2 {
		t.Errorf("scanner kept polling after a fatal error (%d reads)", src.next)
	}
	// One real publish, then one revocation event for the dead channel.
	if len(states) != 2 {
		t.Fatalf("published %d states, want 2", len(states))
	}
	last := states[1]
	if last.Tag.Kind != KindUnknown || last.Granted {
		t.Errorf("fatal error left tag channel at %+v granted=%v", last.Tag, last.Granted)
	}
}

func TestScannerStopsOnCancel(t *testing.T) {
	src := &fakeSource{} // empty script cancels on first read
	states := runScanner(t, src, scanDirectory(t), nil)
	if len(states) != 0 {
		t.Errorf("cancelled scanner published %d states", len(states))
	}
}
