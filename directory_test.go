package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTagFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.txt")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDirectory(t *testing.T) {
	path := writeTagFile(t, ""+
		"E2 00 34 12 01 AB CD EF 00 11 22 33 - Alice\n"+
		"AA BB CC DD EE FF 00 11 22 33 44 55 - Bob Smith\n"+
		"not a record\n"+
		"   \n"+
		" - NoTag\n"+
		"FF FF FF FF FF FF FF FF FF FF FF FF -    \n")

	d, err := LoadDirectory(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Fatalf("loaded %d entries, want 2", d.Len())
	}

	name, ok := d.Lookup("E2 00 34 12 01 AB CD EF 00 11 22 33")
	if !ok || name != "Alice" {
		t.Errorf("Lookup canonical = %q, %v; want Alice, true", name, ok)
	}
	// Names keep embedded spaces.
	name, ok = d.Lookup("AA BB CC DD EE FF 00 11 22 33 44 55")
	if !ok || name != "Bob Smith" {
		t.Errorf("Lookup = %q, %v; want Bob Smith, true", name, ok)
	}
}

func TestLookupNormalizesQuery(t *testing.T) {
	path := writeTagFile(t, "E2 00 34 12 01 AB CD EF 00 11 22 33 - Alice\n")
	d, err := LoadDirectory(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, query := range []string{
		"e200341201abcdef00112233",
		"E2003412 01ABCDEF 00112233",
		"e2 00 34 12 01 ab cd ef 00 11 22 33",
	} {
		if name, ok := d.Lookup(query); !ok || name != "Alice" {
			t.Errorf("Lookup(%q) = %q, %v; want Alice, true", query, name, ok)
		}
	}
}

func TestLookupUnknownTag(t *testing.T) {
	path := writeTagFile(t, "E2 00 34 12 01 AB CD EF 00 11 22 33 - Alice\n")
	d, err := LoadDirectory(path)
	if err != nil {
		t.Fatal(err)
	}
	if name, ok := d.Lookup("00 00 00 00 00 00 00 00 00 00 00 00"); ok {
		t.Errorf("unknown tag resolved to %q", name)
	}
}

func TestLoadDirectoryMissingFile(t *testing.T) {
	d, err := LoadDirectory(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("missing file produced %d entries", d.Len())
	}
	if _, ok := d.Lookup("E2 00 34 12 01 AB CD EF 00 11 22 33"); ok {
		t.Error("empty directory resolved a tag")
	}
}

func TestLoadDirectoryDashInName(t *testing.T) {
	// Only the first separator splits; later dashes belong to the name.
	path := writeTagFile(t, "E2 00 34 12 01 AB CD EF 00 11 22 33 - Mary-Jane - Visitor\n")
	d, err := LoadDirectory(path)
	if err != nil {
		t.Fatal(err)
	}
	name, ok := d.Lookup("E2 00 34 12 01 AB CD EF 00 11 22 33")
	if !ok || name != "Mary-Jane - Visitor" {
		t.Errorf("Lookup = %q, %v; want full name after first separator", name, ok)
	}
}
