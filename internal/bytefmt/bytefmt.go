// file: internal/bytefmt/bytefmt.go

// Package bytefmt renders byte counts for listings. Disks here top out
// well under a megabyte, so only B and K forms matter.
package bytefmt

import "fmt"

// Size renders n in a compact human form.
func Size(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%dB", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1fK", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/(1024*1024))
	}
}
