// file: pkg/d88/image.go

package d88

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// FormatFiller is the byte a freshly formatted sector is filled with.
// CP/M uses the same value to mark erased directory entries, so a new
// image scans as an empty directory.
const FormatFiller = 0xE5

// Image is an open .d88 container holding one CP/M filesystem. All access
// goes through logical disk addresses; the sector headers of the container
// are never exposed. An Image is not safe for concurrent use.
type Image struct {
	f        *os.File
	geo      Geometry
	header   DiskHeader
	readOnly bool
}

// Create formats a new image at path: the .d88 preamble with a populated
// track offset table, then every sector as its 16-byte header followed by
// a FormatFiller payload. It fails if path already exists.
func Create(path string, geo Geometry, name string) (*Image, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrImageExists, path)
		}
		return nil, fmt.Errorf("creating image: %w", err)
	}

	img := &Image{f: f, geo: geo}
	if err := img.format(name); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	return img, nil
}

func (img *Image) format(name string) error {
	geo := img.geo
	physTracks := geo.Tracks * geo.Sides
	sectorsPerPhys := geo.SectorsPerTrack / geo.Sides
	trackBytes := sectorsPerPhys * (SectorHeaderSize + geo.BytesPerSector)

	hdr := DiskHeader{
		MediaType: MediaType2D,
		DiskSize:  uint32(geo.ContainerSize()),
	}
	if len(name) > len(hdr.Name)-1 {
		name = name[:len(hdr.Name)-1]
	}
	copy(hdr.Name[:], name)
	for p := 0; p < physTracks && p < trackOffsetSlots; p++ {
		hdr.TrackOffsets[p] = uint32(DiskHeaderSize + p*trackBytes)
	}
	img.header = hdr

	buf := new(bytes.Buffer)
	buf.Grow(geo.ContainerSize())
	binary.Write(buf, binary.LittleEndian, &hdr)

	payload := bytes.Repeat([]byte{FormatFiller}, geo.BytesPerSector)
	for p := 0; p < physTracks; p++ {
		for s := 0; s < sectorsPerPhys; s++ {
			sh := sectorHeader{
				Cylinder:     byte(p / geo.Sides),
				Head:         byte(p % geo.Sides),
				SectorID:     byte(s + 1),
				SizeCode:     sizeCode(geo.BytesPerSector),
				SectorsInTrk: uint16(sectorsPerPhys),
				DataSize:     uint16(geo.BytesPerSector),
			}
			binary.Write(buf, binary.LittleEndian, &sh)
			buf.Write(payload)
		}
	}

	if _, err := img.f.WriteAt(buf.Bytes(), 0); err != nil {
		return fmt.Errorf("formatting image: %w", err)
	}
	return nil
}

// Open opens an existing image with the default geometry for writing.
func Open(path string) (*Image, error) {
	return OpenGeometry(path, DefaultGeometry())
}

// OpenReadOnly opens an existing image with the default geometry; any
// write fails with ErrWriteProtected.
func OpenReadOnly(path string) (*Image, error) {
	img, err := open(path, DefaultGeometry(), os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	img.readOnly = true
	return img, nil
}

// OpenGeometry opens an existing image laid out with an explicit geometry.
func OpenGeometry(path string, geo Geometry) (*Image, error) {
	return open(path, geo, os.O_RDWR)
}

func open(path string, geo Geometry, flag int) (*Image, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening image: %w", err)
	}
	if fi.Size() < int64(geo.ContainerSize()) {
		f.Close()
		return nil, fmt.Errorf("%w: have %d bytes, need %d",
			ErrTruncatedImage, fi.Size(), geo.ContainerSize())
	}

	img := &Image{f: f, geo: geo}
	raw := make([]byte, DiskHeaderSize)
	if _, err := f.ReadAt(raw, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("reading image header: %w", err)
	}
	if err := img.header.FromBytes(raw); err != nil {
		f.Close()
		return nil, err
	}
	return img, nil
}

// Geometry returns the geometry the image was opened with.
func (img *Image) Geometry() Geometry { return img.geo }

// Header returns the container preamble as read at open time.
func (img *Image) Header() DiskHeader { return img.header }

// ReadLogical fills p from the logical disk address addr. The read is
// split at sector boundaries so container sector headers are skipped,
// never returned. A short read is an error.
func (img *Image) ReadLogical(addr int, p []byte) error {
	return img.each(addr, p, func(off int64, chunk []byte) error {
		if _, err := img.f.ReadAt(chunk, off); err != nil {
			return fmt.Errorf("read %d bytes at disk address %d: %w", len(chunk), addr, err)
		}
		return nil
	})
}

// WriteLogical writes p at the logical disk address addr, split at sector
// boundaries like ReadLogical. It fails with ErrWriteProtected when the
// image was opened read-only or carries the write-protect flag.
func (img *Image) WriteLogical(addr int, p []byte) error {
	if img.readOnly || img.header.Protected() {
		return ErrWriteProtected
	}
	return img.each(addr, p, func(off int64, chunk []byte) error {
		if _, err := img.f.WriteAt(chunk, off); err != nil {
			return fmt.Errorf("write %d bytes at disk address %d: %w", len(chunk), addr, err)
		}
		return nil
	})
}

// each walks p in runs that stay inside one sector payload, handing each
// run's container offset to op.
func (img *Image) each(addr int, p []byte, op func(off int64, chunk []byte) error) error {
	if addr < 0 || addr+len(p) > img.geo.DiskSize() {
		return fmt.Errorf("%w: %d..%d", ErrAddressRange, addr, addr+len(p))
	}
	bps := img.geo.BytesPerSector
	for done := 0; done < len(p); {
		n := bps - (addr+done)%bps
		if rest := len(p) - done; n > rest {
			n = rest
		}
		off := int64(img.geo.ContainerOffset(addr + done))
		if err := op(off, p[done:done+n]); err != nil {
			return err
		}
		done += n
	}
	return nil
}

// Sync flushes the image file to stable storage.
func (img *Image) Sync() error {
	if img.readOnly {
		return nil
	}
	return img.f.Sync()
}

// Close closes the underlying file.
func (img *Image) Close() error { return img.f.Close() }
