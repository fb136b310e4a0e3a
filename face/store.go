package face

import (
	"encoding/gob"
	"fmt"
	"os"
)

// storeFile is the on-disk layout of the encodings blob: parallel
// slices written by the enrollment tool, names[i] owning encodings[i].
type storeFile struct {
	Names     []string
	Encodings []Encoding
}

// LoadSet reads the enrolled encodings blob. A missing file is not an
// error: matching degrades to always-unknown with an empty set.
func LoadSet(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSet(nil), nil
		}
		return nil, fmt.Errorf("open encodings %s: %w", path, err)
	}
	defer f.Close()

	var sf storeFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode encodings %s: %w", path, err)
	}
	if len(sf.Names) != len(sf.Encodings) {
		return nil, fmt.Errorf("encodings %s: %d names for %d encodings", path, len(sf.Names), len(sf.Encodings))
	}

	samples := make([]Sample, len(sf.Names))
	for i := range sf.Names {
		samples[i] = Sample{Name: sf.Names[i], Encoding: sf.Encodings[i]}
	}
	return NewSet(samples), nil
}

// SaveSet writes samples in the enrollment blob layout. Provided for
// enrollment tooling and tests; the running device only loads.
func SaveSet(path string, samples []Sample) error {
	sf := storeFile{
		Names:     make([]string, len(samples)),
		Encodings: make([]Encoding, len(samples)),
	}
	for i, s := range samples {
		sf.Names[i] = s.Name
		sf.Encodings[i] = s.Encoding
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create encodings %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(&sf); err != nil {
		f.Close()
		return fmt.Errorf("encode encodings %s: %w", path, err)
	}
	return f.Close()
}
