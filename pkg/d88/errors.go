// file: pkg/d88/errors.go

package d88

import "errors"

var (
	ErrInvalidGeometry = errors.New("invalid disk geometry")
	ErrImageExists     = errors.New("image file already exists")
	ErrTruncatedImage  = errors.New("image file is smaller than its geometry requires")
	ErrWriteProtected  = errors.New("image is write-protected")
	ErrAddressRange    = errors.New("disk address out of range")
)
