// file: cmd/create/create.go

// Package create formats blank CP/M .d88 images.
package create

import (
	"fmt"
	"os"
	"path/filepath"

	"cpmadd88/internal/bytefmt"
	"cpmadd88/pkg/d88"
)

// CreateOptions configures the disk creation.
type CreateOptions struct {
	Name  string // disk name stored in the container header
	Force bool   // overwrite an existing file
	Quiet bool   // suppress non-error output
}

// DefaultCreateOptions returns default options for Create.
func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{}
}

// Create formats a new image at outPath with the default geometry. Every
// sector is filled with the CP/M erase marker, so the new directory
// scans as empty.
func Create(outPath string, opts *CreateOptions) error {
	if opts == nil {
		opts = DefaultCreateOptions()
	}
	outPath = filepath.Clean(outPath)

	if opts.Force {
		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing existing image: %w", err)
		}
	}

	geo := d88.DefaultGeometry()
	img, err := d88.Create(outPath, geo, opts.Name)
	if err != nil {
		return err
	}
	if err := img.Close(); err != nil {
		return fmt.Errorf("closing image: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Created %s (%s, %d directory slots, %d data blocks)\n",
			outPath, bytefmt.Size(geo.ContainerSize()), geo.DirectoryEntries(), geo.TotalBlocks())
	}
	return nil
}
