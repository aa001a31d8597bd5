package ambience

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Default tuning. The swell/cue ranges are deliberately wide so independent
// chains never phase-lock into an audible pattern.
const (
	DefaultMasterVolume = 1.0
	DefaultLoopVolume   = 0.35
	DefaultCueVolume    = 0.5

	DefaultCueDelayMin = 8 * time.Second
	DefaultCueDelayMax = 25 * time.Second

	DefaultSwellDelayMin = 6 * time.Second
	DefaultSwellDelayMax = 20 * time.Second

	DefaultSwellVolumeMin = 0.3
	DefaultSwellVolumeMax = 0.8

	DefaultSwellFadeMin = 8 * time.Second
	DefaultSwellFadeMax = 18 * time.Second

	DefaultSwellHoldMin = 4 * time.Second
	DefaultSwellHoldMax = 10 * time.Second
)

// Config tunes one ambient session. All ranges are sampled half-open
// [Min, Max). Zero values are replaced by the defaults above and volumes are
// clamped to [0,1]; a Config can never make construction fail.
type Config struct {
	Seed uint64 `env:"SOUNDSCAPE_SEED"`

	MasterVolume float64 `env:"SOUNDSCAPE_MASTER_VOLUME"`
	LoopVolume   float64 `env:"SOUNDSCAPE_LOOP_VOLUME"`
	CueVolume    float64 `env:"SOUNDSCAPE_CUE_VOLUME"`

	CueDelayMin time.Duration `env:"SOUNDSCAPE_CUE_DELAY_MIN"`
	CueDelayMax time.Duration `env:"SOUNDSCAPE_CUE_DELAY_MAX"`

	SwellDelayMin time.Duration `env:"SOUNDSCAPE_SWELL_DELAY_MIN"`
	SwellDelayMax time.Duration `env:"SOUNDSCAPE_SWELL_DELAY_MAX"`

	SwellVolumeMin float64 `env:"SOUNDSCAPE_SWELL_VOLUME_MIN"`
	SwellVolumeMax float64 `env:"SOUNDSCAPE_SWELL_VOLUME_MAX"`

	SwellFadeMin time.Duration `env:"SOUNDSCAPE_SWELL_FADE_MIN"`
	SwellFadeMax time.Duration `env:"SOUNDSCAPE_SWELL_FADE_MAX"`

	SwellHoldMin time.Duration `env:"SOUNDSCAPE_SWELL_HOLD_MIN"`
	SwellHoldMax time.Duration `env:"SOUNDSCAPE_SWELL_HOLD_MAX"`

	// FadeSteps is the discrete step count per envelope.
	FadeSteps int `env:"SOUNDSCAPE_FADE_STEPS"`
}

func DefaultConfig() Config {
	return Config{
		MasterVolume:   DefaultMasterVolume,
		LoopVolume:     DefaultLoopVolume,
		CueVolume:      DefaultCueVolume,
		CueDelayMin:    DefaultCueDelayMin,
		CueDelayMax:    DefaultCueDelayMax,
		SwellDelayMin:  DefaultSwellDelayMin,
		SwellDelayMax:  DefaultSwellDelayMax,
		SwellVolumeMin: DefaultSwellVolumeMin,
		SwellVolumeMax: DefaultSwellVolumeMax,
		SwellFadeMin:   DefaultSwellFadeMin,
		SwellFadeMax:   DefaultSwellFadeMax,
		SwellHoldMin:   DefaultSwellHoldMin,
		SwellHoldMax:   DefaultSwellHoldMax,
		FadeSteps:      DefaultFadeSteps,
	}
}

// ConfigFromEnv returns the default config overlaid with any SOUNDSCAPE_*
// environment variables. A malformed environment degrades to the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return DefaultConfig()
	}
	return cfg.withDefaults()
}

// withDefaults fills zero values, clamps volumes, and repairs inverted or
// negative ranges so the engine never sees a pathological configuration.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MasterVolume == 0 {
		c.MasterVolume = d.MasterVolume
	}
	if c.LoopVolume == 0 {
		c.LoopVolume = d.LoopVolume
	}
	if c.CueVolume == 0 {
		c.CueVolume = d.CueVolume
	}
	if c.FadeSteps <= 0 {
		c.FadeSteps = d.FadeSteps
	}

	c.MasterVolume = clampF(c.MasterVolume, 0, 1)
	c.LoopVolume = clampF(c.LoopVolume, 0, 1)
	c.CueVolume = clampF(c.CueVolume, 0, 1)
	c.SwellVolumeMin = clampF(c.SwellVolumeMin, 0, 1)
	c.SwellVolumeMax = clampF(c.SwellVolumeMax, 0, 1)
	if c.SwellVolumeMax < c.SwellVolumeMin {
		c.SwellVolumeMin, c.SwellVolumeMax = c.SwellVolumeMax, c.SwellVolumeMin
	}
	if c.SwellVolumeMin == 0 && c.SwellVolumeMax == 0 {
		c.SwellVolumeMin, c.SwellVolumeMax = d.SwellVolumeMin, d.SwellVolumeMax
	}

	c.CueDelayMin, c.CueDelayMax = repairRange(c.CueDelayMin, c.CueDelayMax, d.CueDelayMin, d.CueDelayMax)
	c.SwellDelayMin, c.SwellDelayMax = repairRange(c.SwellDelayMin, c.SwellDelayMax, d.SwellDelayMin, d.SwellDelayMax)
	c.SwellFadeMin, c.SwellFadeMax = repairRange(c.SwellFadeMin, c.SwellFadeMax, d.SwellFadeMin, d.SwellFadeMax)
	c.SwellHoldMin, c.SwellHoldMax = repairRange(c.SwellHoldMin, c.SwellHoldMax, d.SwellHoldMin, d.SwellHoldMax)
	return c
}

func repairRange(min, max, defMin, defMax time.Duration) (time.Duration, time.Duration) {
	if min <= 0 && max <= 0 {
		return defMin, defMax
	}
	if min < 0 {
		min = 0
	}
	if max < min {
		min, max = max, min
	}
	return min, max
}
