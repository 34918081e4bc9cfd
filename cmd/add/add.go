// file: cmd/add/add.go

// Package add implements the core operation of the tool: appending one
// host file into the trailing free space of a CP/M .d88 image.
package add

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cpmadd88/pkg/cpmfs"
	"cpmadd88/pkg/d88"
)

// AddOptions configures the Add operation.
type AddOptions struct {
	Quiet  bool         // suppress non-error output
	Logger *slog.Logger // debug-level progress, nil for none
}

// DefaultAddOptions returns default options for Add.
func DefaultAddOptions() *AddOptions {
	return &AddOptions{}
}

// Add writes the host file at filePath into the image at imagePath. The
// stored name is the encoded basename of filePath. Failures surface the
// cpmfs sentinels: ErrInvalidFilename, ErrNameExists and, wrapped in a
// CapacityError, ErrCapacityExceeded — the last after a partial write
// that stays committed.
func Add(imagePath string, filePath string, opts *AddOptions) error {
	if opts == nil {
		opts = DefaultAddOptions()
	}

	name, err := cpmfs.EncodeName(filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(filePath), err)
	}

	src, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	img, err := d88.Open(imagePath)
	if err != nil {
		return err
	}
	defer img.Close()

	if !opts.Quiet {
		fmt.Printf("%s --> %s\n", filePath, imagePath)
	}

	scan, err := cpmfs.Scan(img, name)
	if err != nil {
		return err
	}
	res, err := cpmfs.Write(img, name, src, scan, opts.Logger)
	if err != nil {
		return err
	}
	if err := img.Sync(); err != nil {
		return fmt.Errorf("flushing image: %w", err)
	}

	if !opts.Quiet {
		fmt.Println("Done.")
	}
	if opts.Logger != nil {
		opts.Logger.Debug("file added",
			"name", name.String(),
			"records", res.Records,
			"entries", res.Entries,
			"firstBlock", res.FirstBlock,
			"lastBlock", res.LastBlock)
	}
	return nil
}
