package color

// Presentations returns the candidate notations for a color, ordered hex,
// then rgb()/rgba(), then hsl()/hsla(). The list is never empty.
func Presentations(c RGBA) []string {
	return []string{
		c.Hex(),
		c.RGBString(),
		c.HSLString(),
	}
}
