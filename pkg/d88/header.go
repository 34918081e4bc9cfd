// file: pkg/d88/header.go

package d88

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// WriteProtectSet is the header value marking a protected image.
	WriteProtectSet = 0x10

	// MediaType2D identifies a double-sided double-density disk.
	MediaType2D = 0x00

	trackOffsetSlots = 164
)

// DiskHeader is the 688-byte .d88 preamble: a NUL-terminated disk name,
// protection and media flags, the container size, and a table of absolute
// offsets to each physical track.
type DiskHeader struct {
	Name         [17]byte // disk name, NUL-terminated
	Reserved     [9]byte
	WriteProtect byte // 0x00 = writable, 0x10 = protected
	MediaType    byte // 0x00 = 2D, 0x10 = 2DD, 0x20 = 2HD
	DiskSize     uint32
	TrackOffsets [trackOffsetSlots]uint32 // 0 = track absent
}

// DiskName returns the header name with the NUL padding stripped.
func (h DiskHeader) DiskName() string {
	name := h.Name[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// Protected reports whether the write-protect flag is set.
func (h DiskHeader) Protected() bool { return h.WriteProtect != 0 }

func (h *DiskHeader) toBytes() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, h)
	return buf.Bytes()
}

// FromBytes populates the header from the first DiskHeaderSize bytes of data.
func (h *DiskHeader) FromBytes(data []byte) error {
	if len(data) < DiskHeaderSize {
		return fmt.Errorf("%w: %d bytes is too short for a .d88 header", ErrTruncatedImage, len(data))
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, h)
}

// sectorHeader is the 16-byte metadata record preceding every sector
// payload in the container.
type sectorHeader struct {
	Cylinder     byte
	Head         byte
	SectorID     byte // 1-based within the track
	SizeCode     byte // payload = 128 << SizeCode
	SectorsInTrk uint16
	Density      byte
	Deleted      byte
	Status       byte
	Reserved     [5]byte
	DataSize     uint16
}

func sizeCode(bytesPerSector int) byte {
	var n byte
	for s := 128; s < bytesPerSector; s <<= 1 {
		n++
	}
	return n
}
