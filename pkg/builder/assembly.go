package builder

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/surface"
)

// mirrorMaterial marks a surface as reflecting in the prescription; every
// odd reflection reverses the ray propagation direction.
const mirrorMaterial = "MIRROR"

// Lens tries the toric, spherical and cylindrical lens builders in turn
// and returns the first element that fits the surface pair. A builder
// declining the pair is not an error; any other failure aborts.
func (b *Builder) Lens(back, front surface.Surface, direction Direction) (core.Primitive, error) {
	lastErr := cannotCreate("surfaces %q and %q do not define a lens", back.Common().Name, front.Common().Name)

	backTor, backOK := asToroidal(back)
	frontTor, frontOK := asToroidal(front)
	if backOK && frontOK {
		prim, err := b.ToricLens(backTor, frontTor, direction)
		if err == nil {
			return prim, nil
		}
		if !errors.Is(err, ErrCannotCreatePrimitive) {
			return nil, err
		}
		lastErr = err
	}

	prim, err := b.SphericalLens(back, front)
	if err == nil {
		return prim, nil
	}
	if !errors.Is(err, ErrCannotCreatePrimitive) {
		return nil, err
	}
	lastErr = err

	if backOK && frontOK {
		prim, err := b.CylindricalLens(backTor, frontTor)
		if err == nil {
			return prim, nil
		}
		if !errors.Is(err, ErrCannotCreatePrimitive) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// Mirror tries the toric, spherical and cylindrical mirror builders and
// the flat window builders in turn and returns the first element that fits
// the surface.
func (b *Builder) Mirror(surf surface.Surface, direction Direction) (core.Primitive, error) {
	var lastErr error

	if tor, ok := asToroidal(surf); ok {
		for _, build := range []func(*surface.Toroidal, Direction) (core.Primitive, error){
			b.ToricMirror,
			b.CylindricalMirror,
		} {
			prim, err := build(tor, direction)
			if err == nil {
				return prim, nil
			}
			if !errors.Is(err, ErrCannotCreatePrimitive) {
				return nil, err
			}
			lastErr = err
		}
	}

	prim, err := b.SphericalMirror(surf, direction)
	if err == nil {
		return prim, nil
	}
	if !errors.Is(err, ErrCannotCreatePrimitive) {
		return nil, err
	}
	lastErr = err

	for _, build := range []func(surface.Surface) (core.Primitive, error){
		b.Rectangle,
		b.Circle,
	} {
		prim, err := build(surf)
		if err == nil {
			return prim, nil
		}
		if !errors.Is(err, ErrCannotCreatePrimitive) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func asToroidal(s surface.Surface) (*surface.Toroidal, bool) {
	switch s := s.(type) {
	case *surface.Toroidal:
		return s, true
	case surface.Toroidal:
		return &s, true
	default:
		return nil, false
	}
}

// BuildSequence walks a prescription surface list and builds its optical
// elements, accumulating axial placement as it goes.
//
// A surface without a material only contributes its thickness. Two
// consecutive surfaces where the first carries glass form a lens; a
// surface that no lens pairing fits becomes a mirror or a flat window.
// Every odd pass through a reflecting surface reverses the propagation
// direction used by the sign dispatch.
func (b *Builder) BuildSequence(surfaces []surface.Surface) ([]core.Primitive, error) {
	current := core.Identity()
	direction := Forward
	mirrorsPassed := 0

	var elements []core.Primitive

	advance := func(thickness float64) {
		current = current.Mul(core.Translate(0, 0, thickness))
	}
	passReflector := func(material string) {
		if material != mirrorMaterial {
			return
		}
		mirrorsPassed++
		if mirrorsPassed%2 == 1 {
			direction = -direction
		}
	}

	i := 0
	for i < len(surfaces) {
		attrs := surfaces[i].Common()

		if math.IsInf(attrs.Thickness, 1) {
			b.log.Debug("surface has infinite thickness, skipping", zap.Int("index", i))
			i++
			continue
		}

		if attrs.Material == "" {
			b.log.Debug("surface has no material, skipping", zap.Int("index", i))
			advance(attrs.Thickness)
			i++
			continue
		}

		if i+1 < len(surfaces) {
			front := surfaces[i+1]
			prim, err := b.Lens(surfaces[i], front, direction)
			if err == nil {
				prim.SetTransform(current.Mul(prim.Transform()))
				elements = append(elements, prim)
				b.log.Info("lens created",
					zap.Int("backIndex", i),
					zap.Int("frontIndex", i+1),
					zap.String("name", prim.Name()))

				// A reflecting surface that still pairs into a lens
				// reverses the propagation direction all the same.
				passReflector(attrs.Material)

				if front.Common().Material != "" {
					// The front surface starts the next element in an
					// assembly; keep a sliver of space between them.
					padding := attrs.Thickness * 1e-6
					advance(attrs.Thickness + padding)
					i++
				} else {
					advance(attrs.Thickness + front.Common().Thickness)
					i += 2
				}
				continue
			}
			if !errors.Is(err, ErrCannotCreatePrimitive) {
				return nil, err
			}
		}

		prim, err := b.Mirror(surfaces[i], direction)
		if err != nil {
			return nil, err
		}
		prim.SetTransform(current.Mul(prim.Transform()))
		elements = append(elements, prim)
		b.log.Info("mirror created",
			zap.Int("index", i),
			zap.String("name", prim.Name()))

		advance(attrs.Thickness)
		passReflector(attrs.Material)
		i++
	}

	return elements, nil
}
