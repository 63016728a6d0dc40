package shaders

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/taigrr/softras/pkg/math3d"
	"github.com/taigrr/softras/pkg/render"
)

// Band is one step of a posterization palette: diffuse values below Bound
// that no earlier band claimed get Color.
type Band struct {
	Color render.Color
	Bound float64
}

// Palette is an ordered list of bands with ascending bounds.
type Palette []Band

// band builds a Band from a packed 0xAABBGGRR color.
func band(packed uint32, bound float64) Band {
	return Band{Color: render.UnpackColor(packed), Bound: bound}
}

var (
	CoolPalette = Palette{
		band(0xFF000000, 0.15),
		band(0xFF403020, 0.30),
		band(0xFF804000, 0.50),
		band(0xFFB07020, 0.70),
		band(0xFFF0A050, 0.85),
		band(0xFFFFD090, 1.00),
	}
	WarmPalette = Palette{
		band(0xFF000000, 0.15),
		band(0xFF203040, 0.30),
		band(0xFF406080, 0.50),
		band(0xFF6090B0, 0.70),
		band(0xFF80B0E0, 0.85),
		band(0xFFA0D0FF, 1.00),
	}
	GrayTonesPalette = Palette{
		band(0xFF101010, 0.25),
		band(0xFF202020, 0.50),
		band(0xFF303030, 0.75),
		band(0xFF404040, 1.00),
	}
	DarkBlueToOrangePalette = Palette{
		band(0xFF000000, 0.20),
		band(0xFF2C190B, 0.45),
		band(0xFF623E1E, 0.70),
		band(0xFF0065FF, 1.00),
	}
	RandomPalette = Palette{
		band(0xFF6C7059, 0.04),
		band(0xFF1E213D, 0.07),
		band(0xFFFAD201, 0.10),
		band(0xFF3D642D, 0.20),
		band(0xFFF39F18, 0.40),
		band(0xFF193737, 0.80),
		band(0xFFFFFFFF, 1.00),
	}
	LowBandPassPalette = Palette{
		band(0xFF000000, 0.10),
		band(0xFF39FF14, 0.25),
		band(0xFF000000, 1.00),
	}
	DefaultPalette = Palette{
		band(0xFFA0A0A0, 1.00),
	}
)

var palettes = map[string]Palette{
	"cool":            CoolPalette,
	"warm":            WarmPalette,
	"gray":            GrayTonesPalette,
	"darkblue-orange": DarkBlueToOrangePalette,
	"random":          RandomPalette,
	"lowbandpass":     LowBandPassPalette,
	"default":         DefaultPalette,
}

// PaletteByName looks up a built-in palette.
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[name]
	return p, ok
}

// PaletteNames lists the built-in palettes in sorted order.
func PaletteNames() []string {
	return slices.Sorted(maps.Keys(palettes))
}

// fallbackColor is used for diffuse values no band claims, which includes
// a diffuse of exactly 1.
var fallbackColor = render.UnpackColor(0xFFC0C0C0)

// Pick returns the color of the first band whose bound is above diffuse.
func (p Palette) Pick(diffuse float64) render.Color {
	for _, b := range p {
		if diffuse < b.Bound {
			return b.Color
		}
	}
	return fallbackColor
}

// ValidatePalette checks that p is non-empty, its bounds strictly ascend
// within (0, 1] and the last bound is 1.
func ValidatePalette(p Palette) error {
	if len(p) == 0 {
		return errors.New("shaders: empty palette")
	}
	prev := 0.0
	for i, b := range p {
		if !(b.Bound > prev) || b.Bound > 1 {
			return fmt.Errorf("shaders: palette band %d bound %v out of order", i, b.Bound)
		}
		prev = b.Bound
	}
	if prev != 1 {
		return fmt.Errorf("shaders: palette ends at %v, want 1", prev)
	}
	return nil
}

// Posterize quantizes the diffuse term into the bands of a palette.
type Posterize struct {
	varyings
	Palette Palette
}

// NewPosterize creates a posterize shader. A nil palette picks
// DefaultPalette.
func NewPosterize(ctx *render.Context, p Palette) (*Posterize, error) {
	if p == nil {
		p = DefaultPalette
	}
	if err := ValidatePalette(p); err != nil {
		return nil, err
	}
	return &Posterize{varyings: newVaryings(ctx), Palette: p}, nil
}

func (s *Posterize) Fragment(bar math3d.Vec3) (render.Color, bool) {
	return s.Palette.Pick(s.diffuse(bar)), false
}
