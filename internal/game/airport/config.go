package airport

import "fmt"

const (
	DefaultRefillPeriod  = 101
	DefaultMaxOrder      = 5000
	DefaultServiceCycles = 20
)

// Config holds the fuel-supply and servicing constants of an airport.
type Config struct {
	// RefillPeriod is the number of ticks between two fuel orders.
	RefillPeriod int
	// MaxOrder caps the quantity of a single fuel order.
	MaxOrder int
	// ServiceCycles is how many ticks a parked aircraft is serviced for.
	ServiceCycles int
	// RunwayEnd selects the runway direction used for arrivals and departures.
	RunwayEnd int
}

func DefaultConfig() Config {
	return Config{
		RefillPeriod:  DefaultRefillPeriod,
		MaxOrder:      DefaultMaxOrder,
		ServiceCycles: DefaultServiceCycles,
	}
}

func (c Config) Validate() error {
	if c.RefillPeriod <= 0 {
		return fmt.Errorf("refill period must be positive, got %d", c.RefillPeriod)
	}
	if c.MaxOrder < 0 {
		return fmt.Errorf("max order cannot be negative, got %d", c.MaxOrder)
	}
	if c.ServiceCycles < 0 {
		return fmt.Errorf("service cycles cannot be negative, got %d", c.ServiceCycles)
	}
	if c.RunwayEnd < 0 {
		return fmt.Errorf("runway end cannot be negative, got %d", c.RunwayEnd)
	}
	return nil
}
