// file: pkg/d88/header_test.go

package d88

import (
	"encoding/binary"
	"testing"
)

func TestHeaderSizes(t *testing.T) {
	if got := binary.Size(&DiskHeader{}); got != DiskHeaderSize {
		t.Errorf("DiskHeader encodes to %d bytes, want %d", got, DiskHeaderSize)
	}
	if got := binary.Size(&sectorHeader{}); got != SectorHeaderSize {
		t.Errorf("sectorHeader encodes to %d bytes, want %d", got, SectorHeaderSize)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	var h DiskHeader
	copy(h.Name[:], "ROUNDTRIP")
	h.WriteProtect = WriteProtectSet
	h.MediaType = MediaType2D
	h.DiskSize = 348848
	h.TrackOffsets[0] = DiskHeaderSize
	h.TrackOffsets[79] = 344496

	var got DiskHeader
	if err := got.FromBytes(h.toBytes()); err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if got != h {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, h)
	}
	if got.DiskName() != "ROUNDTRIP" {
		t.Errorf("DiskName() = %q, want ROUNDTRIP", got.DiskName())
	}
	if !got.Protected() {
		t.Error("Protected() = false, want true")
	}
}

func TestSizeCode(t *testing.T) {
	tests := []struct {
		bps  int
		want byte
	}{
		{128, 0},
		{256, 1},
		{512, 2},
		{1024, 3},
	}
	for _, tt := range tests {
		if got := sizeCode(tt.bps); got != tt.want {
			t.Errorf("sizeCode(%d) = %d, want %d", tt.bps, got, tt.want)
		}
	}
}
