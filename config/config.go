package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

// Fleet geometry defaults
const NUM_ELEVATORS = 2
const MIN_FLOOR = 0
const MAX_FLOOR = 10

// Timing constants for the dispatch engine
const ASSIGNMENT_SWEEP_INTERVAL = 500 * time.Millisecond
const MOVEMENT_TICK_INTERVAL = 1000 * time.Millisecond
const STUCK_TIMEOUT = 15 * time.Second

// Cost added by NearestCar for a pickup that is not on the elevator's way,
// modeling that the elevator must finish its current trip first
const NEAREST_CAR_PENALTY = 100

// Config holds the runtime parameters of one dispatch engine instance.
// Zero or missing fields are replaced with the package defaults above.
type Config struct {
	NumElevators      int           `yaml:"NumElevators"`
	MinFloor          int           `yaml:"MinFloor"`
	MaxFloor          int           `yaml:"MaxFloor"`
	SweepInterval     time.Duration `yaml:"SweepInterval"`
	TickInterval      time.Duration `yaml:"TickInterval"`
	StuckTimeout      time.Duration `yaml:"StuckTimeout"`
	NearestCarPenalty int           `yaml:"NearestCarPenalty"`
}

func Default() Config {
	return Config{
		NumElevators:      NUM_ELEVATORS,
		MinFloor:          MIN_FLOOR,
		MaxFloor:          MAX_FLOOR,
		SweepInterval:     ASSIGNMENT_SWEEP_INTERVAL,
		TickInterval:      MOVEMENT_TICK_INTERVAL,
		StuckTimeout:      STUCK_TIMEOUT,
		NearestCarPenalty: NEAREST_CAR_PENALTY,
	}
}

// Load reads a YAML config file and fills absent keys with defaults.
func Load(path string) (Config, error) {
	c := Config{}
	file, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, err
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.NumElevators <= 0 {
		c.NumElevators = def.NumElevators
	}
	if c.MaxFloor <= c.MinFloor {
		c.MinFloor = def.MinFloor
		c.MaxFloor = def.MaxFloor
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = def.SweepInterval
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.StuckTimeout <= 0 {
		c.StuckTimeout = def.StuckTimeout
	}
	if c.NearestCarPenalty <= 0 {
		c.NearestCarPenalty = def.NearestCarPenalty
	}
}
