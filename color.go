package overlay

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for malformed input.
var ErrInvalidColor = errors.New("overlay: invalid color")

// Color is a packed, non-premultiplied RGBA color laid out as 0xAABBGGRR:
// red in the low byte, alpha in the high byte.
//
// Color implements color.Color, so it can be handed to gg, ebiten or any
// image/draw consumer directly.
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	White       Color = 0xFFFFFFFF
	Black       Color = 0xFF000000
)

// PackRGBA packs 8-bit components into a Color.
func PackRGBA(r, g, b, a uint8) Color {
	return Color(uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24)
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c >> 16) }

// A returns the alpha component.
func (c Color) A() uint8 { return uint8(c >> 24) }

// Alpha returns the alpha component in [0, 1].
func (c Color) Alpha() float64 { return float64(c.A()) / 255 }

// WithAlpha returns c with its alpha replaced by a, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	return c&0x00FFFFFF | Color(unitToByte(a))<<24
}

// ScaleAlpha returns c with its alpha multiplied by k.
func (c Color) ScaleAlpha(k float64) Color {
	return c.WithAlpha(c.Alpha() * k)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts c to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// GG converts c to gg's floating point color.
func (c Color) GG() gg.RGBA {
	return gg.RGBA{
		R: float64(c.R()) / 255,
		G: float64(c.G()) / 255,
		B: float64(c.B()) / 255,
		A: c.Alpha(),
	}
}

// String returns the color as "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R(), c.G(), c.B(), c.A())
}

// FromColor converts any color.Color to a packed Color.
func FromColor(cc color.Color) Color {
	n := color.NRGBAModel.Convert(cc).(color.NRGBA)
	return PackRGBA(n.R, n.G, n.B, n.A)
}

// ParseColor parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (the leading
// '#' is optional) or an SVG/CSS color name such as "orangered".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromColor(c), nil
	}
	hex := strings.TrimPrefix(s, "#")

	var r, g, b uint8
	a := uint8(255)
	var err error
	switch len(hex) {
	case 3, 4:
		digits := make([]uint8, len(hex))
		for i := range hex {
			if digits[i], err = parseHexByte(hex[i : i+1]); err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			digits[i] *= 17
		}
		r, g, b = digits[0], digits[1], digits[2]
		if len(hex) == 4 {
			a = digits[3]
		}
	case 6, 8:
		parts := make([]uint8, len(hex)/2)
		for i := range parts {
			if parts[i], err = parseHexByte(hex[2*i : 2*i+2]); err != nil {
				return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
		}
		r, g, b = parts[0], parts[1], parts[2]
		if len(hex) == 8 {
			a = parts[3]
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return PackRGBA(r, g, b, a), nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseColor.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func parseHexByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	return uint8(v), err
}

func unitToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
