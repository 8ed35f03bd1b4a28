package sensor

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/couchcryptid/flood-node/internal/domain"
)

// SimulatedEcho is an EchoPulser backed by a configurable distance instead of
// hardware. It stands in for the GPIO-driven ranger on development hosts and
// in tests.
type SimulatedEcho struct {
	mu         sync.Mutex
	distanceCM float64
	jitterCM   float64
	noEcho     bool
}

// NewSimulatedEcho creates a simulated ranger that reports the given distance
// with up to ±jitterCM of uniform noise per pulse.
func NewSimulatedEcho(distanceCM, jitterCM float64) *SimulatedEcho {
	return &SimulatedEcho{distanceCM: distanceCM, jitterCM: jitterCM}
}

// SetDistance changes the simulated distance.
func (s *SimulatedEcho) SetDistance(cm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distanceCM = cm
}

// SetNoEcho makes subsequent pulses time out, as when the water surface is
// out of range.
func (s *SimulatedEcho) SetNoEcho(noEcho bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noEcho = noEcho
}

// Pulse reports the round-trip time an HC-SR04 would measure for the
// simulated distance, or ErrNoEcho when out of range.
func (s *SimulatedEcho) Pulse(ctx context.Context, timeout time.Duration) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	cm := s.distanceCM
	if s.jitterCM > 0 {
		cm += (rand.Float64()*2 - 1) * s.jitterCM
	}
	noEcho := s.noEcho
	s.mu.Unlock()

	if noEcho || cm < 0 {
		return 0, ErrNoEcho
	}

	roundTripUs := cm * 2 / SpeedOfSoundCmPerUs
	elapsed := time.Duration(roundTripUs * float64(time.Microsecond))
	if elapsed > timeout {
		return 0, ErrNoEcho
	}
	return elapsed, nil
}

// SimulatedAnalog is an AnalogSource that random-walks around a baseline,
// standing in for the rain board's ADC pin.
type SimulatedAnalog struct {
	mu    sync.Mutex
	value int
	step  int
}

// NewSimulatedAnalog creates a simulated ADC starting at baseline, moving up
// to ±step per read within the ADC range.
func NewSimulatedAnalog(baseline, step int) *SimulatedAnalog {
	return &SimulatedAnalog{value: baseline, step: step}
}

// Set pins the current value.
func (s *SimulatedAnalog) Set(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
}

// ReadRaw returns the next reading in the walk.
func (s *SimulatedAnalog) ReadRaw(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step > 0 {
		s.value += rand.IntN(2*s.step+1) - s.step
	}
	if s.value < domain.ADCMin {
		s.value = domain.ADCMin
	}
	if s.value > domain.ADCMax {
		s.value = domain.ADCMax
	}
	return s.value
}
