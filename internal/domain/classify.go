package domain

// Rain intensity thresholds, calibrated for the YL-83's inverted output.
// Comparisons are strict: a raw value exactly on a boundary falls into the
// wetter band below it.
const (
	noRainAbove     = 3600
	lightRainAbove  = 3000
	moderateAbove   = 2400
	heavyRainAbove  = 1800
	rainingBelow    = 2400 // flood ladder only engages under this
	criticalWithin  = 10.0 // cm
	floodRiskWithin = 20.0 // cm
)

// Classify maps a raw rain reading and a water distance to a Classification.
// It is a total function: every input matches exactly one band in each
// ladder, with the lowest-priority branch as the default.
func Classify(rainRaw int, distanceCM float64) Classification {
	return Classification{
		RainIntensity: classifyRain(rainRaw),
		FloodStatus:   classifyFlood(rainRaw, distanceCM),
	}
}

func classifyRain(rainRaw int) RainIntensity {
	switch {
	case rainRaw > noRainAbove:
		return NoRain
	case rainRaw > lightRainAbove:
		return LightRain
	case rainRaw > moderateAbove:
		return ModerateRain
	case rainRaw > heavyRainAbove:
		return HeavyRain
	default:
		return TorrentialRain
	}
}

// classifyFlood evaluates the flood rules in priority order. Distance only
// escalates severity once rain is below the moderate threshold, so a close
// obstruction in dry conditions never raises an alert.
func classifyFlood(rainRaw int, distanceCM float64) FloodStatus {
	raining := rainRaw < rainingBelow
	switch {
	case raining && distanceCM < criticalWithin:
		return CriticalFlood
	case raining && distanceCM < floodRiskWithin:
		return FloodRisk
	case raining:
		return RainAlert
	default:
		return Normal
	}
}
