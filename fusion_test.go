package main

import (
	"image"
	"strings"
	"sync"
	"testing"
	"time"
)

func known(name string) Identity { return Identity{Kind: KindKnown, Name: name} }
func unknownID() Identity        { return Identity{Kind: KindUnknown} }

func TestFusionDecisionTable(t *testing.T) {
	tests := []struct {
		name    string
		face    *Identity // nil = never published on that channel
		tag     *Identity
		granted bool
	}{
		{"both match", ptr(known("Alice")), ptr(known("Alice")), true},
		{"case-insensitive match", ptr(known("Alice")), ptr(known("alice")), true},
		{"face unknown", ptr(unknownID()), ptr(known("Alice")), false},
		{"tag never seen", ptr(known("Bob")), nil, false},
		{"names differ", ptr(known("Alice")), ptr(known("Bob")), false},
		{"tag unknown", ptr(known("Alice")), ptr(unknownID()), false},
		{"nothing seen", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFuser(0, nil)
			if tt.face != nil {
				f.FaceSeen(*tt.face, nil)
			}
			if tt.tag != nil {
				f.TagSeen(*tt.tag)
			}
			st := f.State()
			if st.Granted != tt.granted {
				t.Errorf("granted = %v, want %v (face=%+v tag=%+v)", st.Granted, tt.granted, st.Face, st.Tag)
			}
		})
	}
}

func ptr(id Identity) *Identity { return &id }

func TestFusionLatestEventWins(t *testing.T) {
	f := NewFuser(0, nil)
	f.FaceSeen(known("Alice"), nil)
	f.TagSeen(known("Alice"))
	if !f.State().Granted {
		t.Fatal("expected grant after matching events")
	}

	// A later unknown on either channel revokes the grant.
	f.FaceSeen(unknownID(), nil)
	if f.State().Granted {
		t.Error("grant survived a face channel unknown")
	}

	f.FaceSeen(known("Alice"), nil)
	f.TagSeen(known("Bob"))
	if f.State().Granted {
		t.Error("grant survived a mismatched tag")
	}
}

func TestFusionPublishesEveryEvent(t *testing.T) {
	var states []State
	f := NewFuser(0, func(st State, _ image.Image) {
		states = append(states, st)
	})

	f.FaceSeen(known("Alice"), nil)
	f.TagSeen(known("Alice"))
	f.TagSeen(unknownID())

	if len(states) != 3 {
		t.Fatalf("published %d states, want 3", len(states))
	}
	want := []bool{false, true, false}
	for i, granted := range want {
		if states[i].Granted != granted {
			t.Errorf("state %d granted = %v, want %v", i, states[i].Granted, granted)
		}
	}
}

func TestFusionGrantWindow(t *testing.T) {
	now := time.Now()
	f := NewFuser(10*time.Second, nil)
	f.now = func() time.Time { return now }

	f.FaceSeen(known("Alice"), nil)
	f.TagSeen(known("Alice"))
	if !f.State().Granted {
		t.Fatal("fresh identities should grant")
	}

	// Age both readings past the window.
	f.now = func() time.Time { return now.Add(11 * time.Second) }
	if f.State().Granted {
		t.Error("stale identities should not grant")
	}
}

func TestFusionWindowDisabledNeverExpires(t *testing.T) {
	now := time.Now()
	f := NewFuser(0, nil)
	f.now = func() time.Time { return now }

	f.FaceSeen(known("Alice"), nil)
	f.TagSeen(known("Alice"))

	f.now = func() time.Time { return now.Add(24 * time.Hour) }
	if !f.State().Granted {
		t.Error("with no window the latest readings stay authoritative")
	}
}

// Concurrent events must behave as if applied in some sequential
// order: every published snapshot internally consistent, one snapshot
// per event, final state equal to the last snapshot.
func TestFusionConcurrentEvents(t *testing.T) {
	const perChannel = 200

	var mu sync.Mutex
	var snapshots []State
	f := NewFuser(0, func(st State, _ image.Image) {
		mu.Lock()
		snapshots = append(snapshots, st)
		mu.Unlock()
	})

	faceIDs := []Identity{known("Alice"), known("Bob"), unknownID()}
	tagIDs := []Identity{known("alice"), known("Carol"), unknownID()}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < perChannel; i++ {
			f.FaceSeen(faceIDs[i%len(faceIDs)], nil)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perChannel; i++ {
			f.TagSeen(tagIDs[i%len(tagIDs)])
		}
	}()
	wg.Wait()

	if len(snapshots) != 2*perChannel {
		t.Fatalf("published %d snapshots, want %d (lost updates)", len(snapshots), 2*perChannel)
	}

	for i, st := range snapshots {
		want := st.Face.Kind == KindKnown && st.Tag.Kind == KindKnown &&
			strings.EqualFold(st.Face.Name, st.Tag.Name)
		if st.Granted != want {
			t.Fatalf("snapshot %d inconsistent: granted=%v face=%+v tag=%+v", i, st.Granted, st.Face, st.Tag)
		}
	}

	final := f.State()
	last := snapshots[len(snapshots)-1]
	if final.Face != last.Face || final.Tag != last.Tag || final.Granted != last.Granted {
		t.Errorf("final state %+v does not match last snapshot %+v", final, last)
	}
}

func TestIdentityDisplay(t *testing.T) {
	tests := []struct {
		name     string
		id       Identity
		expected string
	}{
		{"known", known("Alice"), "Alice"},
		{"unknown", unknownID(), "Unknown"},
		{"never seen", Identity{}, "Unknown"},
		{"error text stays hidden", Identity{Kind: KindUnknown, Name: "reader error"}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Display(); got != tt.expected {
				t.Errorf("Display() = %q, want %q", got, tt.expected)
			}
		})
	}
}
