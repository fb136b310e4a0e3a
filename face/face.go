// Package face matches camera frames against a set of enrolled face
// encodings. An encoding is a 128-dimension feature vector; two faces
// are considered the same person when the Euclidean distance between
// their encodings is within a fixed tolerance. One enrolled person may
// contribute several encodings, and recognition resolves a probe by
// majority vote among the samples it matches.
package face

import (
	"image"
	"math"
)

// DefaultTolerance is the standard match distance for dlib-style
// 128-dimension encodings, the same cutoff the enrollment pipeline
// uses.
const DefaultTolerance = 0.6

// Encoding is one face feature vector.
type Encoding []float32

// Sample pairs an encoding with the enrolled person it belongs to.
// Owner names are not unique across samples.
type Sample struct {
	Name     string
	Encoding Encoding
}

// Detection is one face found in a frame.
type Detection struct {
	Rect     image.Rectangle
	Encoding Encoding
}

// Set is the immutable collection of enrolled samples, in enrollment
// order. Order matters: vote ties resolve to the earliest name.
type Set struct {
	samples []Sample
}

// NewSet builds a Set from samples. The slice is not copied; callers
// must not mutate it afterwards.
func NewSet(samples []Sample) *Set {
	return &Set{samples: samples}
}

// Len returns the number of enrolled samples.
func (s *Set) Len() int {
	return len(s.samples)
}

// Distance returns the Euclidean distance between two encodings, or
// +Inf when their dimensions differ.
func Distance(a, b Encoding) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Vote compares probe against every enrolled sample at the given
// tolerance and tallies matches by owner name. The name with the most
// matching samples wins; ties resolve to the name encountered first in
// enrollment order. The second return is false when no sample matched.
func (s *Set) Vote(probe Encoding, tolerance float64) (string, bool) {
	counts := make(map[string]int)
	var order []string

	for _, sample := range s.samples {
		if Distance(sample.Encoding, probe) > tolerance {
			continue
		}
		if _, seen := counts[sample.Name]; !seen {
			order = append(order, sample.Name)
		}
		counts[sample.Name]++
	}

	best, bestCount := "", 0
	for _, name := range order {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	return best, bestCount > 0
}
