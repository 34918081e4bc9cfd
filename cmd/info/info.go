// file: cmd/info/info.go

// Package info reports container header, geometry and usage of a .d88 image.
package info

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"cpmadd88/internal/bytefmt"
	"cpmadd88/pkg/cpmfs"
	"cpmadd88/pkg/d88"
)

// InfoOptions configures the Info report.
type InfoOptions struct {
	JSON bool      // machine-readable output
	Out  io.Writer // defaults to os.Stdout
}

// DefaultInfoOptions returns default options for Info.
func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{}
}

// Report is the machine-readable shape of the info output.
type Report struct {
	Path          string `json:"path"`
	DiskName      string `json:"diskName"`
	WriteProtect  bool   `json:"writeProtected"`
	ContainerSize int    `json:"containerSize"`
	DiskSize      int    `json:"diskSize"`
	Blocks        int    `json:"blocks"`
	BlockSize     int    `json:"blockSize"`
	DirectorySlot int    `json:"directorySlots"`
	Files         int    `json:"files"`
	LiveEntries   int    `json:"liveEntries"`
	FreeEntries   int    `json:"freeEntries"`
	LastUsedBlock int    `json:"lastUsedBlock"`
	FreeBytes     int    `json:"freeBytes"`
}

// Info prints a report on the image at imagePath.
func Info(imagePath string, opts *InfoOptions) error {
	if opts == nil {
		opts = DefaultInfoOptions()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	img, err := d88.OpenReadOnly(imagePath)
	if err != nil {
		return err
	}
	defer img.Close()

	geo := img.Geometry()
	hdr := img.Header()
	usage, err := cpmfs.Usage(img)
	if err != nil {
		return err
	}

	rep := Report{
		Path:          imagePath,
		DiskName:      hdr.DiskName(),
		WriteProtect:  hdr.Protected(),
		ContainerSize: geo.ContainerSize(),
		DiskSize:      geo.DiskSize(),
		Blocks:        geo.TotalBlocks(),
		BlockSize:     geo.BlockSize,
		DirectorySlot: geo.DirectoryEntries(),
		Files:         usage.Files,
		LiveEntries:   usage.LiveEntries,
		FreeEntries:   usage.FreeEntries,
		LastUsedBlock: usage.LastUsedBlock,
		FreeBytes:     usage.FreeBytes,
	}

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	w := tabwriter.NewWriter(out, 2, 8, 2, ' ', 0)
	fmt.Fprintf(w, "Image:\t%s\n", rep.Path)
	fmt.Fprintf(w, "Disk name:\t%s\n", rep.DiskName)
	fmt.Fprintf(w, "Write-protected:\t%v\n", rep.WriteProtect)
	fmt.Fprintf(w, "Container size:\t%s\n", bytefmt.Size(rep.ContainerSize))
	fmt.Fprintf(w, "Logical disk size:\t%s\n", bytefmt.Size(rep.DiskSize))
	fmt.Fprintf(w, "Data blocks:\t%d x %s\n", rep.Blocks, bytefmt.Size(rep.BlockSize))
	fmt.Fprintf(w, "Directory slots:\t%d (%d live, %d free)\n",
		rep.DirectorySlot, rep.LiveEntries, rep.FreeEntries)
	fmt.Fprintf(w, "Files:\t%d\n", rep.Files)
	fmt.Fprintf(w, "High-water block:\t%d\n", rep.LastUsedBlock)
	fmt.Fprintf(w, "Free above mark:\t%s\n", bytefmt.Size(rep.FreeBytes))
	return w.Flush()
}
