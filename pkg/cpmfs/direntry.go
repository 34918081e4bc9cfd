// file: pkg/cpmfs/direntry.go

package cpmfs

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"cpmadd88/pkg/d88"
)

const (
	// StatusLive marks a directory entry written by this tool. CP/M
	// stores the drive number here; 0 is the login drive.
	StatusLive = 0x00

	// StatusErased marks a deleted entry, the same byte a formatted
	// sector is filled with.
	StatusErased = 0xE5

	// FillByte pads the final record of a file, CP/M's soft EOF.
	FillByte = 0x1A
)

// DirEntry is one 32-byte CP/M directory record (the classic FCB image):
// one extent of a file's allocation.
type DirEntry struct {
	Status      byte
	Base        [8]byte
	Ext         [3]byte
	Extent      byte // 0-based sequence number among entries of one file
	Reserved    [2]byte
	RecordCount byte     // records used in this extent, 1..128 (128 = 0x80)
	Blocks      [16]byte // allocation map, block numbers, 0 = unused slot
}

// Live reports whether the entry is in use under this tool's convention:
// status byte equal to zero. Strict CP/M treats everything except the
// 0xE5 erase marker as live; status 0 is kept for compatibility with the
// images this tool has always produced.
func (e *DirEntry) Live() bool { return e.Status == StatusLive }

// NameMatches compares the entry's name and extension bytes against n.
func (e *DirEntry) NameMatches(n Name) bool {
	return e.Base == n.Base && e.Ext == n.Ext
}

// Name returns the entry's encoded filename.
func (e *DirEntry) Name() Name { return Name{Base: e.Base, Ext: e.Ext} }

// Records returns the record count as an int. The 0x80 "full extent"
// sentinel is the value 128 itself, so no translation is needed.
func (e *DirEntry) Records() int { return int(e.RecordCount) }

func (e *DirEntry) toBytes() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, e)
	return buf.Bytes()
}

func decodeEntry(data []byte) (DirEntry, error) {
	var e DirEntry
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &e); err != nil {
		return DirEntry{}, err
	}
	return e, nil
}

// ReadEntry reads directory slot index from the image.
func ReadEntry(img *d88.Image, index int) (DirEntry, error) {
	buf := make([]byte, d88.DirEntrySize)
	if err := img.ReadLogical(img.Geometry().EntryAddr(index), buf); err != nil {
		return DirEntry{}, fmt.Errorf("directory slot %d: %w", index, err)
	}
	return decodeEntry(buf)
}

func writeEntry(img *d88.Image, index int, e DirEntry) error {
	if err := img.WriteLogical(img.Geometry().EntryAddr(index), e.toBytes()); err != nil {
		return fmt.Errorf("directory slot %d: %w", index, err)
	}
	return nil
}
