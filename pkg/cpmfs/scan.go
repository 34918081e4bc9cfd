// file: pkg/cpmfs/scan.go

package cpmfs

import "cpmadd88/pkg/d88"

// ScanResult summarizes one pass over the whole directory.
type ScanResult struct {
	DuplicateFound bool // a live entry carries the target name
	LastLiveEntry  int  // highest live slot index, -1 for an empty directory
	LastUsedBlock  int  // highest block referenced by any live entry, >= 1
}

// Scan reads every directory slot and reports whether target already
// exists, the highest live slot index, and the allocation high-water
// mark. LastUsedBlock starts at 1 so the first writable block is always
// past the two directory blocks; it only ever rises from there. The scan
// never stops early on a duplicate because the high-water mark must
// cover the entire directory.
func Scan(img *d88.Image, target Name) (ScanResult, error) {
	res := ScanResult{LastLiveEntry: -1, LastUsedBlock: 1}
	for i := 0; i < img.Geometry().DirectoryEntries(); i++ {
		e, err := ReadEntry(img, i)
		if err != nil {
			return ScanResult{}, err
		}
		if !e.Live() {
			continue
		}
		res.LastLiveEntry = i
		if e.NameMatches(target) {
			res.DuplicateFound = true
		}
		for _, b := range e.Blocks {
			if int(b) > res.LastUsedBlock {
				res.LastUsedBlock = int(b)
			}
		}
	}
	return res, nil
}
