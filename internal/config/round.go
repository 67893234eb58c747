package config

import (
	"errors"
	"time"

	"github.com/tomz197/boxfall/internal/round"
)

// Environment variables understood by LoadRound.
const (
	EnvLevelsToWin      = "BOXFALL_LEVELS"
	EnvSeed             = "BOXFALL_SEED"
	EnvFallAcceleration = "BOXFALL_FALL_ACCEL"
	EnvPlayerStartX     = "BOXFALL_START_X"
)

// LoadRound returns round.DefaultConfig with environment overrides applied.
// Without BOXFALL_SEED every round gets a time based seed. All malformed values
// are reported together; the result is validated.
func LoadRound() (round.Config, error) {
	cfg := round.DefaultConfig()
	var errs []error

	var err error
	if cfg.LevelsToWin, err = GetEnvInt(EnvLevelsToWin, cfg.LevelsToWin); err != nil {
		errs = append(errs, err)
	}
	if cfg.Seed, err = GetEnvInt64(EnvSeed, time.Now().UnixNano()); err != nil {
		errs = append(errs, err)
	}
	if cfg.FallAcceleration, err = GetEnvFloat(EnvFallAcceleration, cfg.FallAcceleration); err != nil {
		errs = append(errs, err)
	}
	if cfg.PlayerStartX, err = GetEnvFloat(EnvPlayerStartX, cfg.PlayerStartX); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, cfg.Validate()
}
