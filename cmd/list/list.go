// file: cmd/list/list.go

// Package list prints the directory of a CP/M .d88 image.
package list

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"cpmadd88/internal/bytefmt"
	"cpmadd88/pkg/cpmfs"
	"cpmadd88/pkg/d88"
)

// ListOptions configures the directory listing.
type ListOptions struct {
	Long bool      // records, blocks and extents per file
	Bare bool      // names only, no summary
	Out  io.Writer // defaults to os.Stdout
}

// DefaultListOptions returns default options for List.
func DefaultListOptions() *ListOptions {
	return &ListOptions{}
}

// List prints the live files of the image at imagePath. Sizes are whole
// records, since CP/M keeps no byte-exact file length.
func List(imagePath string, opts *ListOptions) error {
	if opts == nil {
		opts = DefaultListOptions()
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

	files, err := cpmfs.List(img)
	if err != nil {
		return err
	}

	if opts.Bare {
		for _, f := range files {
			fmt.Fprintln(out, f.Name)
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 2, 8, 2, ' ', 0)
	if opts.Long {
		fmt.Fprintln(w, "NAME\tSIZE\tRECORDS\tBLOCKS\tEXTENTS")
		for _, f := range files {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
				f.Name, bytefmt.Size(f.Bytes), f.Records, f.Blocks, f.Extents)
		}
	} else {
		for _, f := range files {
			fmt.Fprintf(w, "%s\t%s\n", f.Name, bytefmt.Size(f.Bytes))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	usage, err := cpmfs.Usage(img)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d file(s), %s free\n", usage.Files, bytefmt.Size(usage.FreeBytes))
	return nil
}
