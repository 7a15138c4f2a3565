package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mzolin/go-optics-csg/pkg/builder"
	"github.com/mzolin/go-optics-csg/pkg/core"
	"github.com/mzolin/go-optics-csg/pkg/lens"
	"github.com/mzolin/go-optics-csg/pkg/mirror"
)

func newBuildCommand() *cobra.Command {
	var (
		file    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the elements of a prescription and report their geometry",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			return runBuild(log, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "elements.yaml", "prescription YAML file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log builder dispatch decisions")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

func runBuild(log *zap.Logger, file string) error {
	p, err := loadPrescription(file)
	if err != nil {
		return err
	}
	surfaces, err := p.surfaces()
	if err != nil {
		return err
	}

	b := builder.New(builder.WithLogger(log))
	elements, err := b.BuildSequence(surfaces)
	if err != nil {
		return err
	}
	log.Info("prescription built",
		zap.Int("surfaces", len(surfaces)),
		zap.Int("elements", len(elements)))

	for i, elem := range elements {
		reportElement(log, i, elem)
	}

	if p.Probe != nil {
		probe(log, elements, *p.Probe)
	}
	return nil
}

func reportElement(log *zap.Logger, index int, elem core.Primitive) {
	box := elem.BoundingBox()
	fields := []zap.Field{
		zap.Int("index", index),
		zap.String("name", elem.Name()),
		zap.String("type", fmt.Sprintf("%T", elem)),
		zap.Any("material", elem.Material()),
		zap.String("bounds", fmt.Sprintf("[%.4g %.4g %.4g] .. [%.4g %.4g %.4g]",
			box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)),
	}

	switch e := elem.(type) {
	case *lens.Element:
		fields = append(fields,
			zap.Float64("diameter", e.Diameter()),
			zap.Float64("centerThickness", e.CenterThickness()),
			zap.Float64("edgeThickness", e.EdgeThickness()),
			zap.Float64("frontSag", e.FrontSag()),
			zap.Float64("backSag", e.BackSag()),
			zap.Bool("short", e.IsShort()))
	case *mirror.Mirror:
		fields = append(fields, zap.Float64("faceSag", e.FaceSag()))
	}

	log.Info("element", fields...)
}

// probe fires one ray through the assembly and logs every element
// boundary it crosses, nearest first.
func probe(log *zap.Logger, elements []core.Primitive, spec probeSpec) {
	origin := core.NewVec3(spec.Origin[0], spec.Origin[1], spec.Origin[2])
	dir := core.NewVec3(spec.Direction[0], spec.Direction[1], spec.Direction[2]).Normalize()
	ray := core.NewRay(origin, dir)

	log.Info("firing probe ray",
		zap.String("origin", fmt.Sprintf("%+v", origin)),
		zap.String("direction", fmt.Sprintf("%+v", dir)))

	var crossings []probeCrossing

	for _, elem := range elements {
		hit, ok := elem.Hit(ray)
		for ok {
			crossings = append(crossings, probeCrossing{
				element: elem.Name(),
				t:       hit.T,
				point:   hit.Point,
				exiting: hit.Exiting,
			})
			hit, ok = elem.NextIntersection()
		}
	}

	if len(crossings) == 0 {
		log.Warn("probe ray missed every element")
		return
	}

	sort.Slice(crossings, func(i, j int) bool { return crossings[i].t < crossings[j].t })
	for _, c := range crossings {
		log.Info("crossing",
			zap.String("element", c.element),
			zap.Float64("t", c.t),
			zap.String("point", fmt.Sprintf("(%.6g, %.6g, %.6g)", c.point.X, c.point.Y, c.point.Z)),
			zap.Bool("exiting", c.exiting))
	}
}

type probeCrossing struct {
	element string
	t       float64
	point   core.Vec3
	exiting bool
}
