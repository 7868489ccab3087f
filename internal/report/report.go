// Package report renders one variable's statistics and histogram into the
// text artifact downstream consumers parse by position, and writes it
// atomically.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gridstat/internal/histogram"
	"gridstat/internal/ncfile"
)

const timestampLayout = "2006-01-02 15:04:05"

// Filename derives the report file name for a variable from the source
// file's base name. Names are unique per variable, so reports from one run
// never overwrite each other.
func Filename(sourceBase, variable string) string {
	return fmt.Sprintf("%s_%s_histogram.txt", sourceBase, variable)
}

// Render produces the report body: header with generation timestamp, the
// variable's metadata in declaration order followed by shape, dtype and
// dimensions, the statistics block, a format marker, then one line per bin
// in increasing bin order. All fractional values carry six decimal digits.
func Render(v *ncfile.Variable, sum histogram.Summary, h *histogram.Histogram, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Histogram for variable: %s\n", v.Name)
	fmt.Fprintf(&b, "# Generated on: %s\n", now.Format(timestampLayout))
	b.WriteString("# Variable info:\n")
	for _, a := range v.Attrs {
		fmt.Fprintf(&b, "#   %s: %s\n", a.Name, a.Value.Render())
	}
	fmt.Fprintf(&b, "#   shape: %s\n", v.ShapeString())
	fmt.Fprintf(&b, "#   dtype: %s\n", v.TypeName())
	fmt.Fprintf(&b, "#   dimensions: %s\n", v.DimsString())
	b.WriteString("#\n")
	b.WriteString("# Statistics:\n")
	fmt.Fprintf(&b, "#   Count: %d\n", sum.Count)
	fmt.Fprintf(&b, "#   Mean: %.6f\n", sum.Mean)
	fmt.Fprintf(&b, "#   Std Dev: %.6f\n", sum.StdDev)
	fmt.Fprintf(&b, "#   Min: %.6f\n", sum.Min)
	fmt.Fprintf(&b, "#   Max: %.6f\n", sum.Max)
	fmt.Fprintf(&b, "#   Median: %.6f\n", sum.Median)
	b.WriteString("#\n")
	b.WriteString("# Format: bin_center, count, bin_left_edge, bin_right_edge\n")
	b.WriteString("#\n")
	for _, bin := range h.Bins {
		fmt.Fprintf(&b, "%.6f, %d, %.6f, %.6f\n", bin.Center, bin.Count, bin.Left, bin.Right)
	}
	return b.String()
}

// Write persists data at path via a uniquely named temp file and an atomic
// rename, so concurrent workers and prior artifacts never leave a torn
// report behind. An existing file at path is overwritten.
func Write(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString()[:8])
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// SourceBase strips the directory and extension from a source file path,
// e.g. "/data/X.nc" -> "X".
func SourceBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
