// Command bsfit approximates the points of a job file with a cubic
// B-spline and prints its knots and control points.
//
//	bsfit [-svg] [-precision n] [-v] job.toml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/golang/geo/r3"

	"github.com/stepgeom/curve"
	"github.com/stepgeom/curve/internal/jobfile"
	"github.com/stepgeom/curve/tolerance"
)

func main() {
	var (
		svg       = flag.Bool("svg", false, "print the curve as an SVG path (2D jobs)")
		precision = flag.Int("precision", 6, "maximum number of decimals in SVG output")
		verbose   = flag.Bool("v", false, "log every trial")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: bsfit [flags] job.{toml,yaml}")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	curve.SetLogger(logger)

	job, err := jobfile.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	set, err := job.ToleranceSet()
	if err != nil {
		log.Fatal(err)
	}
	ctx := tolerance.NewContext(context.Background(), set)

	out := report{w: os.Stdout, svg: *svg, precision: *precision}
	if job.Dim() == 2 {
		err = run2D(ctx, job, out)
	} else {
		err = run3D(ctx, job, out)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func options(ctx context.Context, job *jobfile.Job) []curve.Option {
	opts := []curve.Option{curve.WithTolerance(tolerance.FromContext(ctx))}
	if job.Closed {
		opts = append(opts, curve.Closed())
	}
	return opts
}

func run2D(ctx context.Context, job *jobfile.Job, out report) error {
	pts := make([]curve.Point, len(job.Points))
	for i, p := range job.Points {
		pts[i] = curve.Pt(p[0], p[1])
	}
	params := job.Params
	if params == nil {
		params = curve.ChordLengthParams(pts, job.Closed)
	}
	opts := options(ctx, job)
	if job.StartTangent != nil {
		opts = append(opts, curve.WithEndTangents(
			curve.Vec(job.StartTangent[0], job.StartTangent[1]),
			curve.Vec(job.EndTangent[0], job.EndTangent[1])))
	}

	a, err := curve.NewApproximation2D(pts, params, opts...)
	if err != nil {
		return err
	}
	var c curve.BSplineCurve
	if job.Breakpoints != nil {
		c, err = a.FitWithKnots(len(job.Breakpoints)-1, job.Breakpoints)
	} else {
		c, err = a.FitWithTolerance(job.Distance, job.Midpoint)
	}
	if err != nil {
		return err
	}
	summarize(a.Trials(), a.Interpolated(), c.Segments(), len(pts))

	out.knots(c.Knots(), c.Multiplicities())
	for i, p := range c.ControlPoints() {
		fmt.Fprintf(out.w, "cp %d %g %g\n", i, p.X, p.Y)
	}
	if out.svg {
		fmt.Fprintln(out.w, c.BezPath().SVG(curve.SVGOptions{MaxPrecision: out.precision}))
	}
	return nil
}

func run3D(ctx context.Context, job *jobfile.Job, out report) error {
	pts := make([]r3.Vector, len(job.Points))
	for i, p := range job.Points {
		pts[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	params := job.Params
	if params == nil {
		params = curve.ChordLengthParams3D(pts, job.Closed)
	}
	opts := options(ctx, job)
	if job.StartTangent != nil {
		s, e := job.StartTangent, job.EndTangent
		opts = append(opts, curve.WithEndTangents3D(
			r3.Vector{X: s[0], Y: s[1], Z: s[2]},
			r3.Vector{X: e[0], Y: e[1], Z: e[2]}))
	}

	a, err := curve.NewApproximation3D(pts, params, opts...)
	if err != nil {
		return err
	}
	var c curve.BSplineCurve3D
	if job.Breakpoints != nil {
		c, err = a.FitWithKnots(len(job.Breakpoints)-1, job.Breakpoints)
	} else {
		c, err = a.FitWithTolerance(job.Distance, job.Midpoint)
	}
	if err != nil {
		return err
	}
	summarize(a.Trials(), a.Interpolated(), c.Segments(), len(pts))

	out.knots(c.Knots(), c.Multiplicities())
	for i, p := range c.ControlPoints() {
		fmt.Fprintf(out.w, "cp %d %g %g %g\n", i, p.X, p.Y, p.Z)
	}
	if out.svg {
		slog.Warn("bsfit: SVG output needs a 2D job")
	}
	return nil
}

func summarize(trials []curve.Trial, interpolated bool, segments, points int) {
	slog.Info("bsfit: done",
		"points", points,
		"segments", segments,
		"trials", len(trials),
		"interpolated", interpolated)
}

type report struct {
	w         io.Writer
	svg       bool
	precision int
}

func (r report) knots(values []float64, mults []int) {
	for i, v := range values {
		fmt.Fprintf(r.w, "knot %g %d\n", v, mults[i])
	}
}
