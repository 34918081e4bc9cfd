// file: pkg/cpmfs/read_test.go

package cpmfs

import (
	"bytes"
	"errors"
	"testing"

	"cpmadd88/pkg/d88"
)

func TestReadFileNotFound(t *testing.T) {
	img, _ := newTestImage(t, testGeometry())
	if _, err := ReadFile(img, mustName(t, "no.way")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("ReadFile = %v, want ErrFileNotFound", err)
	}
}

func TestListAndStat(t *testing.T) {
	img, _ := newTestImage(t, testGeometry())
	a := mustName(t, "a.dat")
	b := mustName(t, "b.dat")

	if _, err := Write(img, a, bytes.NewReader(patternBytes(600)), scanFor(t, img, a), nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := Write(img, b, bytes.NewReader(patternBytes(100)), scanFor(t, img, b), nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	infos, err := List(img)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List returned %d files, want 2", len(infos))
	}
	if infos[0].Name != a || infos[1].Name != b {
		t.Errorf("listing order: got %v, %v", infos[0].Name, infos[1].Name)
	}
	if infos[0].Records != 5 || infos[0].Bytes != 640 || infos[0].Blocks != 2 {
		t.Errorf("a.dat: %+v", infos[0])
	}
	if infos[1].Records != 1 || infos[1].Blocks != 1 {
		t.Errorf("b.dat: %+v", infos[1])
	}

	fi, err := Stat(img, b)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if fi != infos[1] {
		t.Errorf("Stat = %+v, want %+v", fi, infos[1])
	}
	if _, err := Stat(img, mustName(t, "no.way")); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Stat = %v, want ErrFileNotFound", err)
	}
}

// A multi-extent file lists as one file with aggregated counters.
func TestListMultiExtent(t *testing.T) {
	img, _ := newTestImage(t, d88.DefaultGeometry())
	name := mustName(t, "span.dat")

	if _, err := Write(img, name, bytes.NewReader(patternBytes(16385)), scanFor(t, img, name), nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	infos, err := List(img)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("List returned %d files, want 1", len(infos))
	}
	fi := infos[0]
	if fi.Extents != 2 || fi.Records != 129 || fi.Blocks != 9 {
		t.Errorf("aggregate: %+v", fi)
	}
}

func TestUsage(t *testing.T) {
	geo := testGeometry()
	img, _ := newTestImage(t, geo)

	u, err := Usage(img)
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if u.Files != 0 || u.LiveEntries != 0 {
		t.Errorf("empty image usage: %+v", u)
	}
	if u.LastUsedBlock != 1 {
		t.Errorf("LastUsedBlock = %d, want 1", u.LastUsedBlock)
	}
	if u.FreeBlocks != geo.TotalBlocks()-2 {
		t.Errorf("FreeBlocks = %d, want %d", u.FreeBlocks, geo.TotalBlocks()-2)
	}

	name := mustName(t, "use.dat")
	if _, err := Write(img, name, bytes.NewReader(patternBytes(600)), scanFor(t, img, name), nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	u, err = Usage(img)
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if u.Files != 1 || u.LiveEntries != 1 {
		t.Errorf("usage after write: %+v", u)
	}
	if u.FreeEntries != geo.DirectoryEntries()-1 {
		t.Errorf("FreeEntries = %d, want %d", u.FreeEntries, geo.DirectoryEntries()-1)
	}
	if u.LastUsedBlock != 3 {
		t.Errorf("LastUsedBlock = %d, want 3", u.LastUsedBlock)
	}
	if u.FreeBytes != (geo.TotalBlocks()-4)*geo.BlockSize {
		t.Errorf("FreeBytes = %d", u.FreeBytes)
	}
}
