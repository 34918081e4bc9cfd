// file: pkg/cpmfs/scan_test.go

package cpmfs

import (
	"bytes"
	"path/filepath"
	"testing"

	"cpmadd88/pkg/d88"
)

// testGeometry is a small synthetic layout: 8 blocks of 512 bytes,
// 4 records per block, 32 directory slots, 64 records per extent.
func testGeometry() d88.Geometry {
	return d88.Geometry{
		BytesPerSector:  128,
		SectorsPerTrack: 4,
		Tracks:          10,
		Sides:           1,
		ReservedTracks:  2,
		BlockSize:       512,
		RecordSize:      128,
		DirectoryBlocks: 2,
	}
}

func newTestImage(t *testing.T, geo d88.Geometry) (*d88.Image, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.d88")
	img, err := d88.Create(path, geo, "TEST")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	t.Cleanup(func() { img.Close() })
	return img, path
}

func mustName(t *testing.T, s string) Name {
	t.Helper()
	n, err := EncodeName(s)
	if err != nil {
		t.Fatalf("EncodeName(%q) failed: %v", s, err)
	}
	return n
}

func TestScanEmptyDirectory(t *testing.T) {
	img, _ := newTestImage(t, testGeometry())

	res, err := Scan(img, mustName(t, "any.fil"))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.DuplicateFound {
		t.Error("duplicate found in empty directory")
	}
	if res.LastLiveEntry != -1 {
		t.Errorf("LastLiveEntry = %d, want -1", res.LastLiveEntry)
	}
	if res.LastUsedBlock != 1 {
		t.Errorf("LastUsedBlock = %d, want 1", res.LastUsedBlock)
	}
}

func TestScanAfterWrite(t *testing.T) {
	img, _ := newTestImage(t, testGeometry())
	name := mustName(t, "first.dat")

	res, err := Scan(img, name)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if _, err := Write(img, name, bytes.NewReader(make([]byte, 600)), res, nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	// 600 bytes = 5 records = 2 blocks starting at block 2.
	res, err = Scan(img, name)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !res.DuplicateFound {
		t.Error("written name not detected as duplicate")
	}
	if res.LastLiveEntry != 0 {
		t.Errorf("LastLiveEntry = %d, want 0", res.LastLiveEntry)
	}
	if res.LastUsedBlock != 3 {
		t.Errorf("LastUsedBlock = %d, want 3", res.LastUsedBlock)
	}

	// A different name scans the same marks without the duplicate.
	res, err = Scan(img, mustName(t, "other.dat"))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.DuplicateFound {
		t.Error("unrelated name reported as duplicate")
	}
	if res.LastUsedBlock != 3 {
		t.Errorf("LastUsedBlock = %d, want 3", res.LastUsedBlock)
	}
}

// Block numbers above 127 must compare as unsigned bytes.
func TestScanHighBlockNumbers(t *testing.T) {
	img, _ := newTestImage(t, d88.DefaultGeometry())

	entry := DirEntry{Status: StatusLive}
	copy(entry.Base[:], "BIG     ")
	copy(entry.Ext[:], "DAT")
	entry.RecordCount = 16
	entry.Blocks[0] = 150

	if err := writeEntry(img, 0, entry); err != nil {
		t.Fatalf("writeEntry failed: %v", err)
	}
	res, err := Scan(img, mustName(t, "new.dat"))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.LastUsedBlock != 150 {
		t.Errorf("LastUsedBlock = %d, want 150", res.LastUsedBlock)
	}
}
