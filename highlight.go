package overlay

// DisplayColor picks the color a shape is drawn with: inside when the
// reference is contained and inside differs from base, base otherwise.
func DisplayColor(base, inside Color, contained bool) Color {
	if contained && inside != base {
		return inside
	}
	return base
}
