package face

import (
	"context"
	"image"
	"log"
	"time"
)

// Result is one recognition cycle's outcome. Frame always carries the
// live camera image so a display stays current even with nobody in
// view; it is annotated only when a face was found.
type Result struct {
	Name  string // matched person, empty when nobody matched
	Known bool
	Faces int // detections in the frame
	Frame image.Image
}

// Loop continuously captures frames, matches the first detected face
// against the enrolled set and reports each cycle through a callback.
type Loop struct {
	cam      Camera
	det      Detector
	set      *Set
	tol      float64
	onResult func(Result)
}

// NewLoop wires a recognition loop. A tolerance of 0 selects
// DefaultTolerance.
func NewLoop(cam Camera, det Detector, set *Set, tolerance float64, onResult func(Result)) *Loop {
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}
	return &Loop{cam: cam, det: det, set: set, tol: tolerance, onResult: onResult}
}

// Run captures and matches frames until ctx is cancelled. The camera
// is released exactly once, on whichever iteration observes the stop.
// Capture and detection failures are transient: the iteration is
// skipped and nothing is published.
func (l *Loop) Run(ctx context.Context) {
	defer l.cam.Close()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := l.cam.Read()
		if err != nil {
			log.Printf("Frame capture: %v", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		detections, err := l.det.Detect(frame)
		if err != nil {
			log.Printf("Face detect: %v", err)
			continue
		}

		if len(detections) == 0 {
			l.onResult(Result{Frame: frame})
			continue
		}

		// First-face policy: additional faces in frame are ignored.
		probe := detections[0]
		name, known := l.set.Vote(probe.Encoding, l.tol)

		label := name
		if !known {
			label = "Unknown"
		}

		l.onResult(Result{
			Name:  name,
			Known: known,
			Faces: len(detections),
			Frame: Annotate(frame, probe.Rect, label),
		})
	}
}
