// file: pkg/d88/geometry.go

// Package d88 implements the .d88 disk container format used by PC-8801
// emulators: a fixed preamble followed by 256-byte sectors, each carrying
// its own 16-byte header. The package maps logical CP/M disk addresses to
// container byte offsets and provides random access to an image file.
package d88

import "fmt"

const (
	// DiskHeaderSize is the fixed .d88 preamble before the first sector.
	DiskHeaderSize = 688 // 0x2B0

	// SectorHeaderSize is the per-sector metadata header length.
	SectorHeaderSize = 16

	// DirEntrySize is the on-disk size of one CP/M directory entry.
	DirEntrySize = 32
)

// Geometry describes one CP/M disk layout inside a .d88 container. All
// derived values are exact integer arithmetic over these fields.
type Geometry struct {
	BytesPerSector  int // logical sector payload size
	SectorsPerTrack int // sectors per cylinder (both sides of a 2D disk)
	Tracks          int // cylinders per disk
	Sides           int // physical sides, used only when formatting
	ReservedTracks  int // system tracks before the data area
	BlockSize       int // allocation block size
	RecordSize      int // CP/M record size
	DirectoryBlocks int // blocks at the start of the data area holding the directory
}

// DefaultGeometry returns the single supported production layout:
// a 5.25" double-sided disk for the PC-8801 (256 bytes/sector,
// 32 sectors/track, 40 tracks, 2048-byte blocks).
func DefaultGeometry() Geometry {
	return Geometry{
		BytesPerSector:  256,
		SectorsPerTrack: 32,
		Tracks:          40,
		Sides:           2,
		ReservedTracks:  2,
		BlockSize:       2048,
		RecordSize:      128,
		DirectoryBlocks: 2,
	}
}

// Validate checks the geometry for internal consistency. Block numbers
// must fit in the one-byte slots of a directory entry's allocation map,
// so TotalBlocks is capped at 256.
func (g Geometry) Validate() error {
	switch {
	case g.BytesPerSector <= 0, g.SectorsPerTrack <= 0, g.Tracks <= 0,
		g.Sides <= 0, g.BlockSize <= 0, g.RecordSize <= 0, g.DirectoryBlocks <= 0:
		return fmt.Errorf("%w: all dimensions must be positive", ErrInvalidGeometry)
	case g.ReservedTracks < 0 || g.ReservedTracks >= g.Tracks:
		return fmt.Errorf("%w: reserved tracks %d out of range", ErrInvalidGeometry, g.ReservedTracks)
	case g.BytesPerSector%g.RecordSize != 0:
		return fmt.Errorf("%w: record size %d does not divide sector size %d",
			ErrInvalidGeometry, g.RecordSize, g.BytesPerSector)
	case g.BlockSize%g.BytesPerSector != 0:
		return fmt.Errorf("%w: sector size %d does not divide block size %d",
			ErrInvalidGeometry, g.BytesPerSector, g.BlockSize)
	case g.SectorsPerTrack%g.Sides != 0:
		return fmt.Errorf("%w: %d sectors per track not divisible by %d sides",
			ErrInvalidGeometry, g.SectorsPerTrack, g.Sides)
	case (g.DiskSize()-g.DataBase())%g.BlockSize != 0:
		return fmt.Errorf("%w: data area is not a whole number of blocks", ErrInvalidGeometry)
	case g.DirectoryBlocks > g.TotalBlocks():
		return fmt.Errorf("%w: directory does not fit in the data area", ErrInvalidGeometry)
	case g.TotalBlocks() > 256:
		return fmt.Errorf("%w: %d blocks do not fit one-byte block numbers",
			ErrInvalidGeometry, g.TotalBlocks())
	}
	return nil
}

// SectorCount returns the number of logical sectors on the disk.
func (g Geometry) SectorCount() int { return g.SectorsPerTrack * g.Tracks }

// DiskSize returns the logical disk size in bytes, sector headers excluded.
func (g Geometry) DiskSize() int { return g.BytesPerSector * g.SectorCount() }

// DataBase returns the logical address of the data area, which starts
// after the reserved system tracks.
func (g Geometry) DataBase() int {
	return g.BytesPerSector * g.SectorsPerTrack * g.ReservedTracks
}

// TotalBlocks returns the number of allocation blocks in the data area,
// directory blocks included.
func (g Geometry) TotalBlocks() int { return (g.DiskSize() - g.DataBase()) / g.BlockSize }

// RecordsPerBlock returns the number of records in one allocation block.
func (g Geometry) RecordsPerBlock() int { return g.BlockSize / g.RecordSize }

// TotalRecords returns the record capacity of the whole data area.
func (g Geometry) TotalRecords() int { return g.TotalBlocks() * g.RecordsPerBlock() }

// DirectoryEntries returns the number of directory slots, all of which
// live inside the reserved directory blocks.
func (g Geometry) DirectoryEntries() int {
	return g.DirectoryBlocks * g.BlockSize / DirEntrySize
}

// EntryRecords returns how many records one directory entry covers before
// a new extent must be opened. The 16-slot allocation map caps it on
// geometries with small blocks; 128 records is the CP/M extent capacity.
func (g Geometry) EntryRecords() int {
	n := 16 * g.RecordsPerBlock()
	if n > 128 {
		n = 128
	}
	return n
}

// ContainerOffset maps a logical disk address to a byte offset inside the
// .d88 container: past the preamble, past the first sector header, and
// past one further sector header per full sector crossed.
func (g Geometry) ContainerOffset(addr int) int {
	return DiskHeaderSize + SectorHeaderSize + addr + SectorHeaderSize*(addr/g.BytesPerSector)
}

// ContainerSize returns the exact byte size of a well-formed image.
func (g Geometry) ContainerSize() int {
	return g.ContainerOffset(g.DiskSize()-1) + 1
}

// BlockAddr returns the logical address of an allocation block.
func (g Geometry) BlockAddr(block int) int {
	return g.DataBase() + g.BlockSize*block
}

// EntryAddr returns the logical address of a directory slot. The
// directory occupies the first data blocks, so slot 0 sits at block 0.
func (g Geometry) EntryAddr(index int) int {
	return g.BlockAddr(0) + DirEntrySize*index
}

// RecordAddr returns the logical address of a record, counted from the
// start of the data area across all blocks.
func (g Geometry) RecordAddr(record int) int {
	return g.BlockAddr(record/g.RecordsPerBlock()) + g.RecordSize*(record%g.RecordsPerBlock())
}
