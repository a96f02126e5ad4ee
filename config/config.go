package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"woolball/game"
	"woolball/protocol"
)

const envPrefix = "WOOLBALL_"

type Config struct {
	Addr        string      `yaml:"addr"`
	LogLevel    string      `yaml:"log_level"`
	TickHz      int         `yaml:"tick_hz"`
	BroadcastHz int         `yaml:"broadcast_hz"`
	Simulation  game.Config `yaml:"simulation"`
	Camera      game.Camera `yaml:"camera"`
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		LogLevel:    "info",
		TickHz:      protocol.SimTickHz,
		BroadcastHz: protocol.BroadcastHz,
		Simulation:  game.DefaultConfig(),
		Camera:      game.DefaultCamera(),
	}
}

// InitConfig loads a .env file into the environment if one exists.
func InitConfig() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func GetEnvVariable(v string) (string, error) {
	if v == "" {
		return "", fmt.Errorf("input param empty")
	}
	b := os.Getenv(v)
	if b == "" {
		return "", fmt.Errorf("failed to get variable for %s", v)
	}
	return b, nil
}

// Load reads the YAML file at path (skipped when path is empty) over the
// defaults, then applies WOOLBALL_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := decode(f, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, err := GetEnvVariable(envPrefix + "ADDR"); err == nil {
		c.Addr = v
	}
	if v, err := GetEnvVariable(envPrefix + "LOG_LEVEL"); err == nil {
		c.LogLevel = v
	}

	ints := map[string]*int{
		"TICK_HZ":           &c.TickHz,
		"BROADCAST_HZ":      &c.BroadcastHz,
		"PARTICLE_COUNT":    &c.Simulation.ParticleCount,
		"RELAXATION_PASSES": &c.Simulation.RelaxationPasses,
	}
	for name, dst := range ints {
		v, err := GetEnvVariable(envPrefix + name)
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = n
	}

	floats := map[string]*float64{
		"SEGMENT_LENGTH": &c.Simulation.SegmentLength,
		"GRAVITY":        &c.Simulation.Gravity,
		"FLOOR_HEIGHT":   &c.Simulation.FloorHeight,
		"DAMPING":        &c.Simulation.Damping,
		"WIND":           &c.Simulation.Wind,
	}
	for name, dst := range floats {
		v, err := GetEnvVariable(envPrefix + name)
		if err != nil {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = f
	}
	return nil
}

func (c Config) Validate() error {
	if c.TickHz <= 0 || c.BroadcastHz <= 0 {
		return fmt.Errorf("tick_hz and broadcast_hz must be positive, got %d and %d", c.TickHz, c.BroadcastHz)
	}
	if c.BroadcastHz > c.TickHz {
		return fmt.Errorf("broadcast_hz %d exceeds tick_hz %d", c.BroadcastHz, c.TickHz)
	}
	return c.Simulation.Validate()
}
