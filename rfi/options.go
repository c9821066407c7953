package rfi

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig applies zero or more options to DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithTimeSigma sets the time outlier threshold multiplier.
func WithTimeSigma(v float64) Option {
	return func(c *Config) { c.TimeSigma = v }
}

// WithFreqSigma sets the channel outlier threshold multiplier.
func WithFreqSigma(v float64) Option {
	return func(c *Config) { c.FreqSigma = v }
}

// WithBadnessThreshold sets the bad-channel fraction that triggers time flagging.
func WithBadnessThreshold(v float64) Option {
	return func(c *Config) { c.BadnessThreshold = v }
}

// WithTimeCut sets the half-width, in samples, of the time mask widening.
func WithTimeCut(n int) Option {
	return func(c *Config) { c.TimeCut = n }
}

// WithMaxIterations caps every convergence loop.
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

// WithBands sets the number of foreground sub-bands.
func WithBands(n int) Option {
	return func(c *Config) { c.Bands = n }
}

// WithTimeBinsSmooth sets the foreground smoothing FWHM in time bins.
func WithTimeBinsSmooth(v float64) Option {
	return func(c *Config) { c.TimeBinsSmooth = v }
}

// WithWiden sets the time mask widening mode.
func WithWiden(m WidenMode) Option {
	return func(c *Config) { c.Widen = m }
}

// WithKernel sets the smoothing kernel shape.
func WithKernel(k Kernel) Option {
	return func(c *Config) { c.Kernel = k }
}

// WithWorkers bounds the number of sub-bands filtered concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}
