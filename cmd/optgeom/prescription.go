package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mzolin/go-optics-csg/pkg/surface"
)

// prescription is the YAML input of the build command: an ordered surface
// list and an optional probe ray.
type prescription struct {
	Surfaces []surfaceSpec `yaml:"surfaces"`
	Probe    *probeSpec    `yaml:"probe"`
}

type surfaceSpec struct {
	Name             string     `yaml:"name"`
	Type             string     `yaml:"type"` // standard (default) or toroidal
	Radius           float64    `yaml:"radius"`
	RadiusHorizontal float64    `yaml:"radius_horizontal"`
	Thickness        float64    `yaml:"thickness"`
	Material         string     `yaml:"material"`
	SemiDiameter     float64    `yaml:"semi_diameter"`
	Aperture         *pairSpec  `yaml:"aperture"`
	Rectangular      bool       `yaml:"rectangular"`
	ApertureDecenter *pairSpec  `yaml:"aperture_decenter"`
}

type pairSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type probeSpec struct {
	Origin    [3]float64 `yaml:"origin"`
	Direction [3]float64 `yaml:"direction"`
}

func loadPrescription(path string) (*prescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prescription: %w", err)
	}

	var p prescription
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing prescription: %w", err)
	}
	if len(p.Surfaces) == 0 {
		return nil, fmt.Errorf("prescription %s lists no surfaces", path)
	}
	return &p, nil
}

// surfaces converts the YAML specs into surface descriptions.
func (p *prescription) surfaces() ([]surface.Surface, error) {
	out := make([]surface.Surface, 0, len(p.Surfaces))
	for i, spec := range p.Surfaces {
		attrs := surface.Attributes{
			Name:         spec.Name,
			Radius:       spec.Radius,
			Thickness:    spec.Thickness,
			Material:     spec.Material,
			SemiDiameter: spec.SemiDiameter,
		}
		if spec.Aperture != nil {
			attrs.Aperture = &surface.Aperture{
				HalfWidthX:  spec.Aperture.X,
				HalfWidthY:  spec.Aperture.Y,
				Rectangular: spec.Rectangular,
			}
		}
		if spec.ApertureDecenter != nil {
			attrs.ApertureDecenter = &surface.Decenter{
				X: spec.ApertureDecenter.X,
				Y: spec.ApertureDecenter.Y,
			}
		}

		switch spec.Type {
		case "", "standard":
			out = append(out, surface.Standard{Attributes: attrs})
		case "toroidal":
			out = append(out, &surface.Toroidal{
				Attributes:       attrs,
				RadiusHorizontal: spec.RadiusHorizontal,
			})
		default:
			return nil, fmt.Errorf("surface %d: unknown type %q", i, spec.Type)
		}
	}
	return out, nil
}
