package document

import (
	"strconv"
	"strings"
)

type rgb struct {
	r, g, b int
}

// parseHex reads #RGB or #RRGGBB.
func parseHex(s string) (rgb, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{r: int(v >> 16 & 0xff), g: int(v >> 8 & 0xff), b: int(v & 0xff)}, true
}

func colorOr(s, fallback string) rgb {
	if c, ok := parseHex(s); ok {
		return c
	}
	c, _ := parseHex(fallback)
	return c
}

// tint mixes c with white; amount 0 keeps c, 1 gives white.
func (c rgb) tint(amount float64) rgb {
	mix := func(v int) int {
		return v + int(float64(255-v)*amount)
	}
	return rgb{r: mix(c.r), g: mix(c.g), b: mix(c.b)}
}

// ValidColor reports whether s is a #RGB or #RRGGBB color.
func ValidColor(s string) bool {
	_, ok := parseHex(s)
	return ok && strings.HasPrefix(strings.TrimSpace(s), "#")
}
