package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"smartdoor/rfdeon"
)

// Directory maps canonical tag identifiers to enrolled display names.
// It is built once at startup from the tag file written by the
// enrollment process and never changes while the scan loop runs.
type Directory struct {
	names map[string]string
}

// LoadDirectory reads the tag file, one "<TAG> - <NAME>" record per
// line with the tag in space-separated hex. A missing file yields an
// empty directory, not an error; lines that do not parse are skipped.
func LoadDirectory(path string) (*Directory, error) {
	d := &Directory{names: make(map[string]string)}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("open tag file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), " - ", 2)
		if len(parts) != 2 {
			continue
		}
		tag := rfdeon.Normalize(strings.TrimSpace(parts[0]))
		name := strings.TrimSpace(parts[1])
		if tag == "" || name == "" {
			continue
		}
		d.names[tag] = name
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tag file %s: %w", path, err)
	}
	return d, nil
}

// Lookup resolves a tag identifier to its enrolled name. The tag is
// normalized first, so raw and canonical forms both resolve. Absent
// tags report false, never an error.
func (d *Directory) Lookup(tag string) (string, bool) {
	name, ok := d.names[rfdeon.Normalize(tag)]
	return name, ok
}

// Len returns the number of enrolled tags.
func (d *Directory) Len() int {
	return len(d.names)
}
