package domain

// ADC range of the rain sensor input (12-bit).
const (
	ADCMin = 0
	ADCMax = 4095
)

// RawSample holds one cycle's sensor readings. It is created once per cycle
// by the samplers and discarded when the cycle ends; nothing is persisted.
type RawSample struct {
	RainRaw    int     `json:"rain_raw"`
	DistanceCM float64 `json:"distance_cm"`
}

// RainIntensity is the categorical reading of the analog rain sensor,
// independent of water distance.
type RainIntensity int

const (
	NoRain RainIntensity = iota
	LightRain
	ModerateRain
	HeavyRain
	TorrentialRain
)

// String returns the device wire label for the intensity.
func (r RainIntensity) String() string {
	switch r {
	case NoRain:
		return "NO RAIN"
	case LightRain:
		return "LIGHT RAIN"
	case ModerateRain:
		return "MODERATE RAIN"
	case HeavyRain:
		return "HEAVY RAIN"
	case TorrentialRain:
		return "TORRENTIAL RAIN"
	default:
		return "UNKNOWN"
	}
}

// FloodStatus is the escalation level combining rain intensity and water
// proximity.
type FloodStatus int

const (
	Normal FloodStatus = iota
	RainAlert
	FloodRisk
	CriticalFlood
)

// String returns the device wire label for the status.
func (s FloodStatus) String() string {
	switch s {
	case Normal:
		return "NORMAL"
	case RainAlert:
		return "RAIN ALERT"
	case FloodRisk:
		return "FLOOD RISK"
	case CriticalFlood:
		return "CRITICAL FLOOD"
	default:
		return "UNKNOWN"
	}
}

// Classification is the derived categorical view of a RawSample. Exactly one
// Classification is derivable from any sample; see Classify.
type Classification struct {
	RainIntensity RainIntensity
	FloodStatus   FloodStatus
}
