// file: pkg/cpmfs/errors.go

package cpmfs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFilename  = errors.New("filename has no extension")
	ErrNameExists       = errors.New("a file with the same name exists")
	ErrCapacityExceeded = errors.New("not enough capacity")
	ErrFileNotFound     = errors.New("file not found")
)

// CapacityReason names which limit a write ran into.
type CapacityReason string

const (
	ReasonDirectoryFull = CapacityReason("directory slots exhausted")
	ReasonDataFull      = CapacityReason("data records exhausted")
)

// CapacityError reports a write stopped by a capacity limit. Records and
// entries persisted before the failing chunk stay committed; Partial
// describes them. Unwraps to ErrCapacityExceeded.
type CapacityError struct {
	Reason  CapacityReason
	Partial WriteResult
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s after %d records in %d entries",
		ErrCapacityExceeded, e.Reason, e.Partial.Records, e.Partial.Entries)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }
