// Package display provides small output helpers for the CLI surface.
package display

import (
	"fmt"
	"io"
)

// PrintBanner writes the startup banner.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintf(w, "ffconv v%s -----------\n", version)
}

// FormatBytes renders an output file size for the run summary.
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	units := []string{"KiB", "MiB", "GiB", "TiB"}
	v := float64(n) / 1024
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", v, units[i])
}
