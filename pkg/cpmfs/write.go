// file: pkg/cpmfs/write.go

package cpmfs

import (
	"fmt"
	"io"
	"log/slog"

	"cpmadd88/pkg/d88"
)

// WriteResult describes what a write persisted. On a capacity failure it
// arrives inside the CapacityError and counts only what reached the image.
type WriteResult struct {
	Records    int   // records written to the data area
	Bytes      int64 // source bytes consumed
	Entries    int   // directory entries persisted
	FirstBlock int   // first data block of the file, 0 if no record was written
	LastBlock  int   // last data block of the file, 0 if no record was written
}

// Write appends the contents of src to the image as one file, strictly
// above the allocation high-water mark found by Scan. It consumes src in
// record-size chunks, pads the final chunk with FillByte, and opens a new
// directory entry whenever the current extent fills up. Entries go into
// consecutive slots starting right after the last live one.
//
// Records and entries are committed as they are produced. A capacity
// failure therefore leaves everything written before the failing chunk
// in place; the returned CapacityError carries the partial result. A
// duplicate name in scan fails with ErrNameExists before any I/O.
//
// log may be nil; it only ever receives debug-level progress.
func Write(img *d88.Image, name Name, src io.Reader, scan ScanResult, log *slog.Logger) (WriteResult, error) {
	if scan.DuplicateFound {
		return WriteResult{}, ErrNameExists
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	geo := img.Geometry()
	rpb := geo.RecordsPerBlock()
	entryRecords := geo.EntryRecords()
	slots := geo.DirectoryEntries()

	log.Debug("appending above high-water mark",
		"name", name.String(),
		"lastUsedBlock", scan.LastUsedBlock,
		"lastLiveEntry", scan.LastLiveEntry)

	entry := DirEntry{Status: StatusLive, Base: name.Base, Ext: name.Ext}
	record := make([]byte, geo.RecordSize)

	var res WriteResult
	written := 0      // records written for the whole file
	extent := 0       // index of the extent being filled
	recsInExtent := 0 // records in the current extent

	for {
		for i := range record {
			record[i] = FillByte
		}
		n, err := io.ReadFull(src, record)
		if n > 0 {
			if recsInExtent == entryRecords {
				// Previous extent is full and already persisted;
				// open the next one.
				extent++
				recsInExtent = 0
				entry = DirEntry{Status: StatusLive, Base: name.Base, Ext: name.Ext, Extent: byte(extent)}
			}

			slot := scan.LastLiveEntry + 1 + extent
			if slot >= slots {
				log.Debug("write aborted", "reason", ReasonDirectoryFull, "records", written)
				return res, &CapacityError{Reason: ReasonDirectoryFull, Partial: res}
			}
			recIdx := rpb*(scan.LastUsedBlock+1) + written
			if recIdx >= geo.TotalRecords() {
				log.Debug("write aborted", "reason", ReasonDataFull, "records", written)
				return res, &CapacityError{Reason: ReasonDataFull, Partial: res}
			}

			if werr := img.WriteLogical(geo.RecordAddr(recIdx), record); werr != nil {
				return res, werr
			}
			written++
			recsInExtent++
			res.Records = written
			res.Bytes += int64(n)

			// Block numbers rise with the file as a whole, so a later
			// extent's map may start mid-way through its 16 slots.
			spanned := (written + rpb - 1) / rpb
			entry.RecordCount = byte(recsInExtent)
			entry.Blocks[(spanned-1)%len(entry.Blocks)] = byte(scan.LastUsedBlock + spanned)
			res.LastBlock = scan.LastUsedBlock + spanned
			if res.FirstBlock == 0 {
				res.FirstBlock = scan.LastUsedBlock + 1
			}

			if recsInExtent == entryRecords {
				if werr := writeEntry(img, slot, entry); werr != nil {
					return res, werr
				}
				res.Entries = extent + 1
				log.Debug("directory entry flushed", "slot", slot, "extent", extent, "records", recsInExtent)
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("reading source: %w", err)
		}
	}

	// The last extent is flushed unconditionally, so a partial extent is
	// always committed and an exactly-full one is harmlessly rewritten.
	slot := scan.LastLiveEntry + 1 + extent
	if slot >= slots {
		log.Debug("write aborted", "reason", ReasonDirectoryFull, "records", written)
		return res, &CapacityError{Reason: ReasonDirectoryFull, Partial: res}
	}
	if err := writeEntry(img, slot, entry); err != nil {
		return res, err
	}
	res.Entries = extent + 1
	log.Debug("directory entry flushed", "slot", slot, "extent", extent, "records", recsInExtent)
	return res, nil
}
