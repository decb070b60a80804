// Package jobfile decodes approximation jobs from TOML or YAML files.
//
// A job lists sample points of dimension 2 or 3 and, optionally, their
// curve parameters, end tangents, the fitting tolerances and a tolerance
// table overriding the defaults:
//
//	closed = false
//	distance = 0.01
//	midpoint = 0.05
//	points = [[0.0, 0.0], [1.0, 2.0], [3.0, 3.0]]
//
//	[tolerance]
//	parameter = 1e-9
package jobfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/stepgeom/curve/tolerance"
)

// ErrFormat is returned for files that are not well-formed jobs.
var ErrFormat = errors.New("jobfile: bad format")

// Format is the encoding of a job file.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%w: unknown extension of %q", ErrFormat, path)
	}
}

// Job is one approximation request.
type Job struct {
	Points [][]float64 `toml:"points" yaml:"points"`
	// Params holds one parameter per point, plus the closing parameter for
	// closed jobs. Empty means chord-length parameters.
	Params []float64 `toml:"params,omitempty" yaml:"params,omitempty"`
	Closed bool      `toml:"closed" yaml:"closed"`

	StartTangent []float64 `toml:"start_tangent,omitempty" yaml:"start_tangent,omitempty"`
	EndTangent   []float64 `toml:"end_tangent,omitempty" yaml:"end_tangent,omitempty"`

	// Distance and Midpoint are the fitting tolerances. Breakpoints, when
	// present, select a fit with fixed knots instead.
	Distance    float64   `toml:"distance" yaml:"distance"`
	Midpoint    float64   `toml:"midpoint" yaml:"midpoint"`
	Breakpoints []float64 `toml:"breakpoints,omitempty" yaml:"breakpoints,omitempty"`

	Tolerance *Tolerances `toml:"tolerance,omitempty" yaml:"tolerance,omitempty"`
}

// Tolerances overrides the default tolerance set. Zero fields keep the
// default.
type Tolerances struct {
	Distance  float64 `toml:"distance,omitempty" yaml:"distance,omitempty"`
	Angle     float64 `toml:"angle,omitempty" yaml:"angle,omitempty"`
	Parameter float64 `toml:"parameter,omitempty" yaml:"parameter,omitempty"`
	Real      float64 `toml:"real,omitempty" yaml:"real,omitempty"`
}

// Load reads and decodes the job file at path.
func Load(path string) (*Job, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	job, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Decode reads a job from r and validates it. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Job, error) {
	var job Job
	switch format {
	case TOML:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&job); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&job); err != nil {
			if err == io.EOF {
				err = errors.New("empty document")
			}
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, format)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Dim returns the dimension of the points, or 0 for a job without points.
func (j *Job) Dim() int {
	if len(j.Points) == 0 {
		return 0
	}
	return len(j.Points[0])
}

// Validate checks the shape of the job. Numeric conditions that depend on
// tolerances, such as increasing parameters, are left to the approximation.
func (j *Job) Validate() error {
	if len(j.Points) == 0 {
		return fmt.Errorf("%w: no points", ErrFormat)
	}
	dim := j.Dim()
	if dim != 2 && dim != 3 {
		return fmt.Errorf("%w: points have %d coordinates, want 2 or 3", ErrFormat, dim)
	}
	for i, p := range j.Points {
		if len(p) != dim {
			return fmt.Errorf("%w: point %d has %d coordinates, want %d", ErrFormat, i, len(p), dim)
		}
	}
	if (j.StartTangent == nil) != (j.EndTangent == nil) {
		return fmt.Errorf("%w: start_tangent and end_tangent go together", ErrFormat)
	}
	for _, t := range [][]float64{j.StartTangent, j.EndTangent} {
		if t != nil && len(t) != dim {
			return fmt.Errorf("%w: tangent has %d coordinates, want %d", ErrFormat, len(t), dim)
		}
	}
	for _, v := range []float64{j.Distance, j.Midpoint} {
		if math.IsNaN(v) || v < 0 {
			return fmt.Errorf("%w: fitting tolerance %g", ErrFormat, v)
		}
	}
	return nil
}

// ToleranceSet returns the default tolerances with the job's overrides
// applied.
func (j *Job) ToleranceSet() (tolerance.Set, error) {
	def := tolerance.Default()
	if j.Tolerance == nil {
		return def, nil
	}
	pick := func(v, d float64) float64 {
		if v == 0 {
			return d
		}
		return v
	}
	t := j.Tolerance
	set, err := tolerance.New(
		pick(t.Distance, def.Distance()),
		pick(t.Angle, def.Angle()),
		pick(t.Parameter, def.Parameter()),
		pick(t.Real, def.Real()),
	)
	if err != nil {
		return tolerance.Set{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return set, nil
}
