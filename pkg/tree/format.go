package tree

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with binary prefixes and one decimal place,
// right-aligned in six columns (e.g. "  10.0 B", "   2.0 KB").
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range sizeUnits {
		if value < 1024 {
			return fmt.Sprintf("%6.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%6.1f PB", value)
}

// formatEntry builds the display text of one entry. Metadata that cannot be
// read leaves out the matching annotation.
func (r *Renderer) formatEntry(e *Entry) string {
	name := e.Name
	if r.cfg.FullPath {
		name = e.Path
	}

	if e.IsDir() {
		name += "/"
	}

	if r.cfg.ShowSize && e.IsFile() {
		if size, ok := e.Size(); ok {
			name = fmt.Sprintf("%s (%s)", name, FormatSize(size))
		}
	}

	if r.cfg.ShowPermissions {
		if perm, ok := e.Permissions(); ok {
			name = fmt.Sprintf("[%03o] %s", uint32(perm), name)
		}
	}

	return name
}
