package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"airport-simulator/internal/game/airport"
	ilog "airport-simulator/internal/log"
)

// Config represents the complete simulator configuration.
type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	Airport    AirportConfig    `json:"airport"`
	Log        LogConfig        `json:"log"`
}

// SimulationConfig drives the tick loop and the arrival stream.
type SimulationConfig struct {
	// TickRate is the number of ticks per real second (default: 60)
	TickRate float64 `json:"tick_rate"`

	// SecondsPerTick is the simulated time covered by one tick
	SecondsPerTick float64 `json:"seconds_per_tick"`

	// Width and Height are the extent of the sector in world units
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// MaxAircraft caps the number of aircraft alive at once
	MaxAircraft int `json:"max_aircraft"`

	// SpawnIntervalTicks is the number of ticks between two arrivals
	SpawnIntervalTicks int `json:"spawn_interval_ticks"`

	// Seed makes the arrival stream reproducible
	Seed uint64 `json:"seed"`

	// AirSpeed and TaxiSpeed are in knots
	AirSpeed  float64 `json:"air_speed"`
	TaxiSpeed float64 `json:"taxi_speed"`

	// FuelCapacity is the tank size of every aircraft
	FuelCapacity int `json:"fuel_capacity"`

	// FuelBurn is the fuel burned per tick while airborne
	FuelBurn int `json:"fuel_burn"`
}

// AirportConfig mirrors airport.Config.
type AirportConfig struct {
	// RefillPeriod is the number of ticks between fuel orders (default: 101)
	RefillPeriod int `json:"refill_period"`

	// MaxOrder caps a single fuel order (default: 5000)
	MaxOrder int `json:"max_order"`

	// ServiceCycles is the turnaround duration in ticks (default: 20)
	ServiceCycles int `json:"service_cycles"`

	// RunwayEnd selects the landing direction (0 or 1)
	RunwayEnd int `json:"runway_end"`
}

// LogConfig selects the log level and destination.
type LogConfig struct {
	// Level is one of debug, info, warn, error, off
	Level string `json:"level"`

	// Dir is where rotated log files go; empty means stderr
	Dir string `json:"dir"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	ac := airport.DefaultConfig()
	return &Config{
		Simulation: SimulationConfig{
			TickRate:           60,
			SecondsPerTick:     1,
			Width:              1024,
			Height:             768,
			MaxAircraft:        8,
			SpawnIntervalTicks: 300,
			Seed:               1,
			AirSpeed:           220,
			TaxiSpeed:          60,
			FuelCapacity:       3000,
			FuelBurn:           1,
		},
		Airport: AirportConfig{
			RefillPeriod:  ac.RefillPeriod,
			MaxOrder:      ac.MaxOrder,
			ServiceCycles: ac.ServiceCycles,
			RunwayEnd:     ac.RunwayEnd,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a JSON file. A missing file yields the
// defaults; fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// AirportSettings converts the airport section for the airport package.
func (c *Config) AirportSettings() airport.Config {
	return airport.Config{
		RefillPeriod:  c.Airport.RefillPeriod,
		MaxOrder:      c.Airport.MaxOrder,
		ServiceCycles: c.Airport.ServiceCycles,
		RunwayEnd:     c.Airport.RunwayEnd,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	s := c.Simulation
	if s.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive")
	}
	if s.SecondsPerTick <= 0 {
		return fmt.Errorf("seconds_per_tick must be positive")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("sector size must be positive")
	}
	if s.MaxAircraft < 0 {
		return fmt.Errorf("max_aircraft cannot be negative")
	}
	if s.SpawnIntervalTicks <= 0 {
		return fmt.Errorf("spawn_interval_ticks must be positive")
	}
	if s.AirSpeed <= 0 || s.TaxiSpeed <= 0 {
		return fmt.Errorf("speeds must be positive")
	}
	if s.FuelCapacity <= 0 {
		return fmt.Errorf("fuel_capacity must be positive")
	}
	if s.FuelBurn < 0 {
		return fmt.Errorf("fuel_burn cannot be negative")
	}
	if err := c.AirportSettings().Validate(); err != nil {
		return err
	}
	if c.Airport.RunwayEnd > 1 {
		return fmt.Errorf("runway_end must be 0 or 1")
	}
	if _, err := ilog.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
