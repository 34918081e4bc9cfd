// file: cmd/extract/extract.go

// Package extract copies a file out of a CP/M .d88 image.
package extract

import (
	"fmt"
	"os"
	"strings"

	"cpmadd88/pkg/cpmfs"
	"cpmadd88/pkg/d88"
)

// ExtractOptions configures the Extract operation.
type ExtractOptions struct {
	OutPath string // host path to write, defaults to the lowercased name
	Force   bool   // overwrite an existing host file
	Quiet   bool   // suppress non-error output
}

// DefaultExtractOptions returns default options for Extract.
func DefaultExtractOptions() *ExtractOptions {
	return &ExtractOptions{}
}

// Extract writes the contents of fileName from the image to a host file.
// The output keeps the soft-EOF padding of the final record, because the
// stored file length is only known in whole records.
func Extract(imagePath string, fileName string, opts *ExtractOptions) error {
	if opts == nil {
		opts = DefaultExtractOptions()
	}

	name, err := cpmfs.EncodeName(fileName)
	if err != nil {
		return fmt.Errorf("%s: %w", fileName, err)
	}

	img, err := d88.OpenReadOnly(imagePath)
	if err != nil {
		return err
	}
	defer img.Close()

	data, err := cpmfs.ReadFile(img, name)
	if err != nil {
		return err
	}

	outPath := opts.OutPath
	if outPath == "" {
		outPath = strings.ToLower(name.String())
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.Force {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	out, err := os.OpenFile(outPath, flag, 0644)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	if !opts.Quiet {
		fmt.Printf("Extracted %s (%d bytes) to %s\n", name, len(data), outPath)
	}
	return nil
}
