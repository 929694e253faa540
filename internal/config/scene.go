// Package config loads scene files: which potential to evaluate, over which
// grid, which cross-sections to take and where to write the results.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	iontrap "github.com/flywave/go-iontrap"
)

var ErrInvalidScene = errors.New("config: invalid scene")

const (
	EnvPrefix     = "IONTRAP"
	defaultCount  = 100
	defaultLevels = 20
	planeLevels   = 50
)

// envKeys have no default, so they are bound explicitly for AutomaticEnv to
// see them during Unmarshal.
var envKeys = []string{"preset", "variant", "params", "output.levels", "output.palette"}

type Section struct {
	Axis string `mapstructure:"axis"`
	// Index defaults to the middle of the axis when unset.
	Index *int `mapstructure:"index"`
}

type Output struct {
	Dir       string  `mapstructure:"dir"`
	Levels    int     `mapstructure:"levels"`
	WidthIn   float64 `mapstructure:"width_in"`
	HeightIn  float64 `mapstructure:"height_in"`
	MaxPoints int     `mapstructure:"max_points"`
	// Palette is coolwarm or RdBu; unset picks RdBu for 2D fields and
	// coolwarm for 3D ones.
	Palette string `mapstructure:"palette"`
	// SharedRange colours every section over the range of the whole field.
	SharedRange bool `mapstructure:"shared_range"`
}

type Scene struct {
	Preset   string             `mapstructure:"preset"`
	Variant  string             `mapstructure:"variant"`
	Params   []float64          `mapstructure:"params"`
	Axes     []iontrap.AxisSpec `mapstructure:"axes"`
	Sections []Section          `mapstructure:"sections"`
	Output   Output             `mapstructure:"output"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", "out")
	v.SetDefault("output.width_in", 6.0)
	v.SetDefault("output.height_in", 5.0)
	v.SetDefault("output.max_points", 8000)
	v.SetDefault("output.shared_range", true)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}
	return v
}

// Load reads a YAML, JSON or TOML scene file; the format follows the
// extension. IONTRAP_* environment variables override file values.
func Load(path string) (*Scene, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	return decode(v)
}

// Default is the scene used when no file is given: the Paul trap preset on a
// 100^3 grid over [-1, 1], unless IONTRAP_VARIANT names another variant.
func Default() (*Scene, error) {
	v := newViper()
	if !v.IsSet("variant") {
		v.SetDefault("preset", "paul_trap")
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Scene, error) {
	var s Scene
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) normalize() error {
	switch {
	case s.Preset != "" && s.Variant != "":
		return fmt.Errorf("%w: set either preset or variant, not both", ErrInvalidScene)
	case s.Preset != "":
		p, err := iontrap.LookupPreset(s.Preset)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
		if len(s.Params) == 0 {
			s.Params = p.Params
		}
		s.Variant = string(p.Variant)
	case s.Variant == "":
		return fmt.Errorf("%w: no preset or variant", ErrInvalidScene)
	}

	v := iontrap.Variant(s.Variant)
	if !v.Valid() {
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidScene, s.Variant)
	}
	if len(s.Params) != v.Arity() {
		return fmt.Errorf("%w: %s takes %d params %v, got %d", ErrInvalidScene, v, v.Arity(), v.ParamNames(), len(s.Params))
	}

	if len(s.Axes) == 0 {
		s.Axes = make([]iontrap.AxisSpec, v.Dims())
		for i := range s.Axes {
			s.Axes[i] = iontrap.AxisSpec{Lo: -1, Hi: 1, Count: defaultCount}
		}
	}
	if len(s.Axes) != v.Dims() {
		return fmt.Errorf("%w: %s needs %d axes, got %d", ErrInvalidScene, v, v.Dims(), len(s.Axes))
	}

	for i, sec := range s.Sections {
		if _, err := iontrap.ParseAxisID(sec.Axis); err != nil {
			return fmt.Errorf("%w: section %d: %v", ErrInvalidScene, i, err)
		}
	}
	if s.Output.Levels == 0 {
		s.Output.Levels = defaultLevels
		if v.Dims() == 2 {
			s.Output.Levels = planeLevels
		}
	}
	if s.Output.Palette == "" {
		s.Output.Palette = "coolwarm"
		if v.Dims() == 2 {
			s.Output.Palette = "RdBu"
		}
	}
	if s.Output.Palette != "coolwarm" && s.Output.Palette != "RdBu" {
		return fmt.Errorf("%w: unknown palette %q", ErrInvalidScene, s.Output.Palette)
	}
	if s.Output.WidthIn <= 0 || s.Output.HeightIn <= 0 {
		return fmt.Errorf("%w: output size %vx%v", ErrInvalidScene, s.Output.WidthIn, s.Output.HeightIn)
	}
	return nil
}

func (s *Scene) PotentialVariant() iontrap.Variant {
	return iontrap.Variant(s.Variant)
}

func (s *Scene) Parameters() iontrap.Parameters {
	return iontrap.Parameters(s.Params)
}

func (s *Scene) Grid() (*iontrap.Grid, error) {
	return iontrap.BuildGrid(s.Axes...)
}

// Evaluate builds the grid and evaluates the scene's potential over it.
func (s *Scene) Evaluate() (*iontrap.ScalarField, error) {
	g, err := s.Grid()
	if err != nil {
		return nil, err
	}
	return iontrap.Evaluate(s.PotentialVariant(), g, s.Parameters())
}

// CrossSections extracts the configured sections, or the three mid-index
// sections when none are listed. 2D fields yield their single plane.
func (s *Scene) CrossSections(f *iontrap.ScalarField) ([]*iontrap.CrossSection, error) {
	if f.Dims() == 2 {
		p, err := f.Plane()
		if err != nil {
			return nil, err
		}
		return []*iontrap.CrossSection{p}, nil
	}
	if len(s.Sections) == 0 {
		return f.MidSections()
	}
	ret := make([]*iontrap.CrossSection, 0, len(s.Sections))
	for _, sec := range s.Sections {
		axis, err := iontrap.ParseAxisID(sec.Axis)
		if err != nil {
			return nil, err
		}
		index := f.Grid().Axis(axis).Mid()
		if sec.Index != nil {
			index = *sec.Index
		}
		cs, err := f.CrossSection(axis, index)
		if err != nil {
			return nil, err
		}
		ret = append(ret, cs)
	}
	return ret, nil
}
