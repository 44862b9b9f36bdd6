package valueobjects

// Palette maps a node level onto a display color. Colors repeat cyclically,
// so every non-negative level has one.
type Palette struct {
	colors []string
}

// NewPalette copies the given colors. An empty list falls back to a single gray.
func NewPalette(colors []string) Palette {
	if len(colors) == 0 {
		return Palette{colors: []string{"#6B7280"}}
	}
	cp := make([]string, len(colors))
	copy(cp, colors)
	return Palette{colors: cp}
}

// ColorFor returns palette[level mod size]
func (p Palette) ColorFor(level int) string {
	if len(p.colors) == 0 {
		return "#6B7280"
	}
	if level < 0 {
		level = 0
	}
	return p.colors[level%len(p.colors)]
}

// Size returns the number of colors in the cycle
func (p Palette) Size() int {
	return len(p.colors)
}
