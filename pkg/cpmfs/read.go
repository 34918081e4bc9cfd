// file: pkg/cpmfs/read.go

package cpmfs

import (
	"fmt"
	"sort"

	"cpmadd88/pkg/d88"
)

// FileInfo aggregates the live directory entries of one file.
type FileInfo struct {
	Name    Name
	Records int // records across all extents
	Bytes   int // Records * record size; CP/M keeps no byte-exact length
	Blocks  int // data blocks referenced
	Extents int // directory entries used
}

// UsageInfo summarizes directory and data-area occupancy. Free space is
// counted the only way this system recognizes it: contiguously above the
// allocation high-water mark.
type UsageInfo struct {
	Files         int
	LiveEntries   int
	FreeEntries   int
	LastUsedBlock int
	FreeBlocks    int
	FreeBytes     int
}

// ReadFile returns the stored contents of name: every record of its
// entry chain in extent order. The returned length is a whole number of
// records, so the tail still carries the FillByte padding of the final
// record. ErrFileNotFound when no live entry matches.
func ReadFile(img *d88.Image, name Name) ([]byte, error) {
	geo := img.Geometry()
	var extents []DirEntry
	for i := 0; i < geo.DirectoryEntries(); i++ {
		e, err := ReadEntry(img, i)
		if err != nil {
			return nil, err
		}
		if e.Live() && e.NameMatches(name) {
			extents = append(extents, e)
		}
	}
	if len(extents) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	sort.Slice(extents, func(i, j int) bool { return extents[i].Extent < extents[j].Extent })

	rpb := geo.RecordsPerBlock()
	out := make([]byte, 0, totalRecords(extents)*geo.RecordSize)
	rec := make([]byte, geo.RecordSize)
	for _, e := range extents {
		// Records live in the populated map slots in index order; a
		// later extent's blocks may start mid-map, so slot position
		// inside the map does not matter, only relative order.
		var blocks []int
		for _, b := range e.Blocks {
			if b != 0 {
				blocks = append(blocks, int(b))
			}
		}
		for r := 0; r < e.Records(); r++ {
			if r/rpb >= len(blocks) {
				return nil, fmt.Errorf("file %s extent %d: allocation map covers %d blocks for %d records",
					name, e.Extent, len(blocks), e.Records())
			}
			addr := geo.BlockAddr(blocks[r/rpb]) + geo.RecordSize*(r%rpb)
			if err := img.ReadLogical(addr, rec); err != nil {
				return nil, err
			}
			out = append(out, rec...)
		}
	}
	return out, nil
}

func totalRecords(extents []DirEntry) int {
	n := 0
	for _, e := range extents {
		n += e.Records()
	}
	return n
}

// List returns one FileInfo per live file, in order of first appearance
// in the directory.
func List(img *d88.Image) ([]FileInfo, error) {
	geo := img.Geometry()
	var infos []FileInfo
	index := make(map[Name]int)
	for i := 0; i < geo.DirectoryEntries(); i++ {
		e, err := ReadEntry(img, i)
		if err != nil {
			return nil, err
		}
		if !e.Live() {
			continue
		}
		pos, ok := index[e.Name()]
		if !ok {
			pos = len(infos)
			index[e.Name()] = pos
			infos = append(infos, FileInfo{Name: e.Name()})
		}
		fi := &infos[pos]
		fi.Records += e.Records()
		fi.Extents++
		for _, b := range e.Blocks {
			if b != 0 {
				fi.Blocks++
			}
		}
	}
	for i := range infos {
		infos[i].Bytes = infos[i].Records * geo.RecordSize
	}
	return infos, nil
}

// Stat returns the FileInfo for name, or ErrFileNotFound.
func Stat(img *d88.Image, name Name) (FileInfo, error) {
	infos, err := List(img)
	if err != nil {
		return FileInfo{}, err
	}
	for _, fi := range infos {
		if fi.Name == name {
			return fi, nil
		}
	}
	return FileInfo{}, fmt.Errorf("%w: %s", ErrFileNotFound, name)
}

// Usage reports directory occupancy and the free space above the
// high-water mark.
func Usage(img *d88.Image) (UsageInfo, error) {
	geo := img.Geometry()
	var u UsageInfo
	files := make(map[Name]bool)
	u.LastUsedBlock = 1
	for i := 0; i < geo.DirectoryEntries(); i++ {
		e, err := ReadEntry(img, i)
		if err != nil {
			return UsageInfo{}, err
		}
		if !e.Live() {
			continue
		}
		u.LiveEntries++
		files[e.Name()] = true
		for _, b := range e.Blocks {
			if int(b) > u.LastUsedBlock {
				u.LastUsedBlock = int(b)
			}
		}
	}
	u.Files = len(files)
	u.FreeEntries = geo.DirectoryEntries() - u.LiveEntries
	u.FreeBlocks = geo.TotalBlocks() - 1 - u.LastUsedBlock
	if u.FreeBlocks < 0 {
		u.FreeBlocks = 0
	}
	u.FreeBytes = u.FreeBlocks * geo.BlockSize
	return u, nil
}
