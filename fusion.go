package main

import (
	"image"
	"strings"
	"sync"
	"time"
)

// IdentityKind distinguishes a channel that has never reported from
// one whose latest reading recognized nobody.
type IdentityKind int

const (
	KindNone    IdentityKind = iota // no reading on this channel yet
	KindUnknown                     // a reading happened, nobody recognized
	KindKnown                       // an enrolled person was recognized
)

// Identity is one channel's latest assertion. Name carries the
// enrolled display name for KindKnown and optional status text (an
// error condition, for example) otherwise.
type Identity struct {
	Kind IdentityKind
	Name string
	At   time.Time
}

// Display renders the identity the way the presentation layer shows
// it: the person's name, or the Unknown sentinel.
func (id Identity) Display() string {
	if id.Kind == KindKnown {
		return id.Name
	}
	return "Unknown"
}

// State is the fused decision published to the presentation sink.
type State struct {
	Face    Identity
	Tag     Identity
	Granted bool
}

// Fuser reconciles the two identity channels into a single access
// decision. Workers call FaceSeen and TagSeen from their own
// goroutines; each call updates that channel's field, recomputes the
// decision and publishes it under one lock, so interleaved events
// behave exactly as if applied sequentially.
type Fuser struct {
	mu       sync.Mutex
	face     Identity
	tag      Identity
	window   time.Duration
	now      func() time.Time
	onUpdate func(State, image.Image)
}

// NewFuser creates a fusion controller. The face channel starts at
// KindUnknown (camera live, nobody matched yet) and the tag channel
// at KindNone (never read). A non-zero window additionally requires
// both readings to be at most that old for a grant; zero keeps the
// latest reading authoritative indefinitely.
func NewFuser(window time.Duration, onUpdate func(State, image.Image)) *Fuser {
	return &Fuser{
		face:     Identity{Kind: KindUnknown},
		window:   window,
		now:      time.Now,
		onUpdate: onUpdate,
	}
}

// FaceSeen records the face channel's latest identity along with the
// annotated frame for the display.
func (f *Fuser) FaceSeen(id Identity, frame image.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id.At.IsZero() {
		id.At = f.now()
	}
	f.face = id
	f.publish(frame)
}

// TagSeen records the RFID channel's latest identity.
func (f *Fuser) TagSeen(id Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id.At.IsZero() {
		id.At = f.now()
	}
	f.tag = id
	f.publish(nil)
}

// State returns a snapshot of the current decision.
func (f *Fuser) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{Face: f.face, Tag: f.tag, Granted: f.granted()}
}

func (f *Fuser) publish(frame image.Image) {
	if f.onUpdate == nil {
		return
	}
	f.onUpdate(State{Face: f.face, Tag: f.tag, Granted: f.granted()}, frame)
}

// granted applies the fusion rule: both channels recognized an
// enrolled person, the names agree ignoring case, and recent enough
// when a grant window is configured.
func (f *Fuser) granted() bool {
	if f.face.Kind != KindKnown || f.tag.Kind != KindKnown {
		return false
	}
	if !strings.EqualFold(f.face.Name, f.tag.Name) {
		return false
	}
	if f.window > 0 {
		now := f.now()
		if now.Sub(f.face.At) > f.window || now.Sub(f.tag.At) > f.window {
			return false
		}
	}
	return true
}
