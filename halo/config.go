package halo

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a pipeline configuration. Absent fields
// keep their defaults; unknown fields are rejected.
type fileConfig struct {
	RMin float64 `yaml:"rmin"`
	RMax float64 `yaml:"rmax"`
	RNum int     `yaml:"rnum"`
	RLog *bool   `yaml:"rlog"`

	HOD     *modelConfig `yaml:"hod"`
	Profile string       `yaml:"profile"`
	CM      *modelConfig `yaml:"cm"`
	Bias    *modelConfig `yaml:"bias"`

	Exclusion          string `yaml:"halo_exclusion"`
	Nonlinear          *bool  `yaml:"nonlinear"`
	ScaleDependentBias *bool  `yaml:"scale_dependent_bias"`

	NG      float64 `yaml:"ng"`
	Workers int     `yaml:"workers"`
	DLog10M float64 `yaml:"dlog10m"`
}

// modelConfig names a registered model with parameter overrides.
type modelConfig struct {
	Model  string             `yaml:"model"`
	Params map[string]float64 `yaml:"params"`
}

// LoadConfig decodes a YAML configuration into the options it encodes;
// pass them to New (or Update). Field values are validated here so a bad
// file fails with an error instead of an option panic.
func LoadConfig(r io.Reader) ([]Option, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fc fileConfig
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("halo: decode config: %w", err)
	}

	return fc.options()
}

// LoadConfigFile is LoadConfig over a file path.
func LoadConfigFile(path string) ([]Option, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("halo: open config: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}

// options validates the decoded fields and translates them.
func (fc *fileConfig) options() ([]Option, error) {
	var opts []Option

	if fc.RMin != 0 || fc.RMax != 0 || fc.RNum != 0 {
		if !(fc.RMin > 0) || !(fc.RMax > fc.RMin) || fc.RNum < 2 {
			return nil, fmt.Errorf(
				"%w: separation bounds need 0 < rmin < rmax and rnum >= 2", ErrBadConfig)
		}
		opts = append(opts, WithRBounds(fc.RMin, fc.RMax, fc.RNum))
	}
	if fc.RLog != nil {
		opts = append(opts, WithRLog(*fc.RLog))
	}

	if fc.HOD != nil {
		if fc.HOD.Model == "" {
			return nil, fmt.Errorf("%w: hod needs a model name", ErrBadConfig)
		}
		opts = append(opts, WithHOD(fc.HOD.Model, fc.HOD.Params))
	}
	if fc.Profile != "" {
		opts = append(opts, WithProfile(fc.Profile))
	}
	if fc.CM != nil {
		if fc.CM.Model == "" {
			return nil, fmt.Errorf("%w: cm needs a relation name", ErrBadConfig)
		}
		opts = append(opts, WithCM(fc.CM.Model, fc.CM.Params))
	}
	if fc.Bias != nil {
		if fc.Bias.Model == "" {
			return nil, fmt.Errorf("%w: bias needs a model name", ErrBadConfig)
		}
		opts = append(opts, WithBias(fc.Bias.Model, fc.Bias.Params))
	}

	if fc.Exclusion != "" {
		opts = append(opts, WithExclusion(fc.Exclusion))
	}
	if fc.Nonlinear != nil {
		opts = append(opts, WithNonlinear(*fc.Nonlinear))
	}
	if fc.ScaleDependentBias != nil {
		opts = append(opts, WithScaleDependentBias(*fc.ScaleDependentBias))
	}

	if fc.NG < 0 {
		return nil, fmt.Errorf("%w: ng must be positive", ErrBadConfig)
	}
	if fc.NG > 0 {
		opts = append(opts, WithNG(fc.NG))
	}
	if fc.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must be non-negative", ErrBadConfig)
	}
	if fc.Workers > 0 {
		opts = append(opts, WithWorkers(fc.Workers))
	}
	if fc.DLog10M < 0 {
		return nil, fmt.Errorf("%w: dlog10m must be positive", ErrBadConfig)
	}
	if fc.DLog10M > 0 {
		opts = append(opts, WithDLog10M(fc.DLog10M))
	}

	return opts, nil
}
