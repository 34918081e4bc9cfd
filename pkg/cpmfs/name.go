// file: pkg/cpmfs/name.go

// Package cpmfs implements the CP/M filesystem layer on top of a d88
// image: 8.3 name encoding, the 32-byte directory entries, directory
// scanning, and the append-only allocation engine that writes a host
// file into the free space above the directory's high-water mark.
package cpmfs

import "strings"

// Name is an encoded CP/M filename: uppercase, space-padded 8.3 form,
// exactly as the bytes appear in a directory entry.
type Name struct {
	Base [8]byte
	Ext  [3]byte
}

// EncodeName normalizes a host filename into directory form. The name is
// split at the last dot, so "a.b.c" has base "a.b" and extension "c".
// A filename without a dot fails with ErrInvalidFilename. Base and
// extension are silently truncated to 8 and 3 characters.
func EncodeName(hostName string) (Name, error) {
	dot := strings.LastIndexByte(hostName, '.')
	if dot < 0 {
		return Name{}, ErrInvalidFilename
	}
	base, ext := hostName[:dot], hostName[dot+1:]

	var n Name
	for i := range n.Base {
		n.Base[i] = ' '
	}
	for i := range n.Ext {
		n.Ext[i] = ' '
	}
	for i := 0; i < len(base) && i < len(n.Base); i++ {
		n.Base[i] = upper(base[i])
	}
	for i := 0; i < len(ext) && i < len(n.Ext); i++ {
		n.Ext[i] = upper(ext[i])
	}
	return n, nil
}

// upper uppercases ASCII letters and leaves every other byte alone.
func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// String renders the name with padding trimmed, "NAME.EXT".
func (n Name) String() string {
	base := strings.TrimRight(string(n.Base[:]), " ")
	ext := strings.TrimRight(string(n.Ext[:]), " ")
	return base + "." + ext
}
