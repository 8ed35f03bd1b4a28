package sensor

import (
	"context"

	"github.com/couchcryptid/flood-node/internal/domain"
)

// AnalogSource reads a raw value from an analog input. Reads have no failure
// mode; the source always yields a value.
type AnalogSource interface {
	ReadRaw(ctx context.Context) int
}

// Rain reads the rain board's analog output.
type Rain struct {
	source AnalogSource
}

// NewRain creates a rain sampler over the given analog source.
func NewRain(source AnalogSource) *Rain {
	return &Rain{source: source}
}

// ReadRaw returns the current raw reading, clamped to the ADC range.
func (r *Rain) ReadRaw(ctx context.Context) int {
	v := r.source.ReadRaw(ctx)
	if v < domain.ADCMin {
		return domain.ADCMin
	}
	if v > domain.ADCMax {
		return domain.ADCMax
	}
	return v
}
