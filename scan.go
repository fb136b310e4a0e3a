package main

import (
	"context"
	"errors"
	"log"

	"smartdoor/reader"
	"smartdoor/rfdeon"
)

// tagScanner drives the RFID channel: one poll cycle per iteration,
// first tag only, resolved against the directory and published to the
// fuser. Protocol noise is logged and skipped; losing the device
// stops this channel without touching the face channel.
type tagScanner struct {
	src     reader.TagSource
	dir     *Directory
	fuser   *Fuser
	onFatal func(error)
}

// run polls until ctx is cancelled or the source is lost. The source
// is released on every exit path.
func (s *tagScanner) run(ctx context.Context) {
	defer s.src.Close()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		raw, err := s.src.Read(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if reader.Transient(err) {
				log.Printf("Tag read: %v", err)
				continue
			}
			// Device lost: report once, revoke any standing grant on
			// this channel, stop.
			log.Printf("Tag reader failed: %v", err)
			s.fuser.TagSeen(Identity{Kind: KindUnknown, Name: "reader error"})
			if s.onFatal != nil {
				s.onFatal(err)
			}
			return
		}
		if raw == nil {
			continue // no tag in range this cycle
		}

		tag := rfdeon.HexReadable(raw)
		id := Identity{Kind: KindUnknown}
		if name, ok := s.dir.Lookup(tag); ok {
			id = Identity{Kind: KindKnown, Name: name}
		}
		log.Printf("Tag %s: %s", tag, id.Display())
		s.fuser.TagSeen(id)
	}
}
