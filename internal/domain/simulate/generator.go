// Package simulate produces synthetic live sensor samples for the console.
package simulate

import (
	"math/rand"
	"sync"
	"time"

	"github.com/evpulse/evpulse/internal/domain/model"
)

// Range bounds one simulated field.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Field ranges for the simulated feed. Brake pad wear is generated as a
// fraction, matching the trained feature space.
var (
	BatteryVoltageRange     = Range{Min: 380, Max: 420}
	BatteryCurrentRange     = Range{Min: -50, Max: 50}
	BatteryTemperatureRange = Range{Min: 25, Max: 40}
	MotorTemperatureRange   = Range{Min: 50, Max: 90}
	MotorVibrationRange     = Range{Min: 0.1, Max: 2.0}
	BrakePadWearRange       = Range{Min: 0.1, Max: 0.9}
	TirePressureRange       = Range{Min: 28, Max: 36}
	AmbientTemperatureRange = Range{Min: 20, Max: 35}
)

// Generator draws live samples with each field uniform over its range.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed makes the generator deterministic, for tests.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // simulation, not crypto
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator creates a sample generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // simulation, not crypto
		now: time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *Generator) uniform(r Range) float64 {
	return r.Min + g.rng.Float64()*(r.Max-r.Min)
}

// Generate draws one sample with every field inside its documented range.
func (g *Generator) Generate() model.LiveSample {
	g.mu.Lock()
	defer g.mu.Unlock()

	return model.LiveSample{
		Timestamp:          g.now().UTC(),
		BatteryVoltage:     g.uniform(BatteryVoltageRange),
		BatteryCurrent:     g.uniform(BatteryCurrentRange),
		BatteryTemperature: g.uniform(BatteryTemperatureRange),
		MotorTemperature:   g.uniform(MotorTemperatureRange),
		MotorVibration:     g.uniform(MotorVibrationRange),
		BrakePadWear:       g.uniform(BrakePadWearRange),
		TirePressure:       g.uniform(TirePressureRange),
		AmbientTemperature: g.uniform(AmbientTemperatureRange),
	}
}
