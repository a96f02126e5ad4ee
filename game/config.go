package game

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds the simulation constants. They are fixed once a Chain is built.
type Config struct {
	ParticleCount    int     `yaml:"particle_count"`
	SegmentLength    float64 `yaml:"segment_length"`
	Gravity          float64 `yaml:"gravity"`
	RelaxationPasses int     `yaml:"relaxation_passes"`
	FloorHeight      float64 `yaml:"floor_height"`
	Damping          float64 `yaml:"damping"`
	Wind             float64 `yaml:"wind"`
}

func DefaultConfig() Config {
	return Config{
		ParticleCount:    DefaultParticleCount,
		SegmentLength:    DefaultSegmentLength,
		Gravity:          DefaultGravity,
		RelaxationPasses: DefaultRelaxationPasses,
		FloorHeight:      DefaultFloorHeight,
		Damping:          DefaultDamping,
		Wind:             DefaultWind,
	}
}

func (c Config) Validate() error {
	if c.ParticleCount < 2 {
		return fmt.Errorf("%w: particle_count must be at least 2, got %d", ErrInvalidConfig, c.ParticleCount)
	}
	if !finite(c.SegmentLength) || c.SegmentLength <= 0 {
		return fmt.Errorf("%w: segment_length must be positive, got %v", ErrInvalidConfig, c.SegmentLength)
	}
	if c.RelaxationPasses < 1 {
		return fmt.Errorf("%w: relaxation_passes must be at least 1, got %d", ErrInvalidConfig, c.RelaxationPasses)
	}
	if !finite(c.Damping) || c.Damping < 0 || c.Damping > 1 {
		return fmt.Errorf("%w: damping must be within [0,1], got %v", ErrInvalidConfig, c.Damping)
	}
	if !finite(c.Gravity) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	}
	if !finite(c.FloorHeight) {
		return fmt.Errorf("%w: floor_height must be finite", ErrInvalidConfig)
	}
	if !finite(c.Wind) {
		return fmt.Errorf("%w: wind must be finite", ErrInvalidConfig)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
