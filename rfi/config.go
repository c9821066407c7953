package rfi

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// WidenMode selects how a detected bad time sample is widened.
type WidenMode string

const (
	// WidenSymmetric masks [t-TimeCut, t+TimeCut): TimeCut samples before t
	// but only TimeCut-1 after it. TimeCut 0 masks only t.
	WidenSymmetric WidenMode = "symmetric"
	// WidenForward masks [t, t+TimeCut).
	WidenForward WidenMode = "forward"
	// WidenNone masks only t.
	WidenNone WidenMode = "none"
)

// Kernel selects the smoothing kernel shape of the foreground filter.
type Kernel string

const (
	KernelGaussian    Kernel = "gaussian"
	KernelHann        Kernel = "hann"
	KernelRectangular Kernel = "rectangular"
)

// MaxTimeBinsSmooth bounds the smoothing FWHM, and with it the kernel
// length of about 1.7*FWHM taps.
const MaxTimeBinsSmooth = 1e5

// Config holds the flagging and filtering parameters.
type Config struct {
	TimeSigma        float64   `yaml:"time_sigma_thres"`
	FreqSigma        float64   `yaml:"freq_sigma_thres"`
	BadnessThreshold float64   `yaml:"badness_thres"`
	TimeCut          int       `yaml:"time_cut"`
	MaxIterations    int       `yaml:"max_itr"`
	Bands            int       `yaml:"n_bands"`
	TimeBinsSmooth   float64   `yaml:"time_bins_smooth"` // Gaussian FWHM in time bins
	Widen            WidenMode `yaml:"widen_mode"`
	Kernel           Kernel    `yaml:"kernel"`
	Workers          int       `yaml:"workers"` // concurrent sub-bands, <= 1 is sequential
}

// DefaultConfig returns the parameters used by the GBT flagging pipeline.
func DefaultConfig() Config {
	return Config{
		TimeSigma:        3.0,
		FreqSigma:        6.0,
		BadnessThreshold: 0.1,
		TimeCut:          40,
		MaxIterations:    20,
		Bands:            20,
		TimeBinsSmooth:   10.0,
		Widen:            WidenSymmetric,
		Kernel:           KernelGaussian,
		Workers:          1,
	}
}

// Validate reports the first invalid field, wrapped in ErrConfiguration.
func (c Config) Validate() error {
	switch {
	case !positive(c.TimeSigma):
		return fmt.Errorf("%w: time_sigma_thres must be > 0: %v", ErrConfiguration, c.TimeSigma)
	case !positive(c.FreqSigma):
		return fmt.Errorf("%w: freq_sigma_thres must be > 0: %v", ErrConfiguration, c.FreqSigma)
	case math.IsNaN(c.BadnessThreshold) || c.BadnessThreshold < 0 || c.BadnessThreshold > 1:
		return fmt.Errorf("%w: badness_thres must be in [0,1]: %v", ErrConfiguration, c.BadnessThreshold)
	case c.TimeCut < 0:
		return fmt.Errorf("%w: time_cut must be >= 0: %d", ErrConfiguration, c.TimeCut)
	case c.MaxIterations < 1:
		return fmt.Errorf("%w: max_itr must be >= 1: %d", ErrConfiguration, c.MaxIterations)
	case c.Bands < 1:
		return fmt.Errorf("%w: n_bands must be >= 1: %d", ErrConfiguration, c.Bands)
	case !positive(c.TimeBinsSmooth) || c.TimeBinsSmooth > MaxTimeBinsSmooth:
		return fmt.Errorf("%w: time_bins_smooth must be in (0,%g]: %v", ErrConfiguration, float64(MaxTimeBinsSmooth), c.TimeBinsSmooth)
	}

	switch c.Widen {
	case WidenSymmetric, WidenForward, WidenNone:
	default:
		return fmt.Errorf("%w: unknown widen_mode %q", ErrConfiguration, c.Widen)
	}

	switch c.Kernel {
	case KernelGaussian, KernelHann, KernelRectangular:
	default:
		return fmt.Errorf("%w: unknown kernel %q", ErrConfiguration, c.Kernel)
	}

	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// LoadConfig decodes YAML from r on top of DefaultConfig and validates the
// result. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfigFile reads and decodes a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rfi: read config: %w", err)
	}

	return LoadConfig(bytes.NewReader(raw))
}

// YAML encodes c with the configuration file keys.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
