// Package domain models the readings and classifications produced by a
// smart urban flood node.
//
// # Hardware conventions
//
// Rain is read from a YL-83 resistive rain board through a 12-bit ADC
// (0–4095). The board's output is inverted: a dry plate reads near the top of
// the range and heavier rain drives the value down. The intensity ladder is
// calibrated for that inversion, so every comparison is "raw above threshold
// means less rain":
//
//	> 3600  NO RAIN
//	> 3000  LIGHT RAIN
//	> 2400  MODERATE RAIN
//	> 1800  HEAVY RAIN
//	else    TORRENTIAL RAIN
//
// Water level is measured as the distance from an HC-SR04 ultrasonic ranger
// to the water surface, in centimeters. Rising water means a shrinking
// distance. When the ranger sees no echo within its timeout the sampler
// substitutes a 400 cm saturation value ("nothing in range"), which the flood
// ladder treats the same as any other far reading.
//
// # Flood classification
//
// Flood status combines both sensors and is evaluated in strict priority
// order; the first matching rule wins:
//
//	rain < 2400 and distance < 10  CRITICAL FLOOD
//	rain < 2400 and distance < 20  FLOOD RISK
//	rain < 2400                    RAIN ALERT
//	otherwise                      NORMAL
//
// Distance only escalates severity when rain is already below the moderate
// threshold. A close obstruction during dry conditions (debris, a parked car)
// therefore never raises a flood alert.
//
// # Wire format
//
// Reports are flat JSON records keyed by node ID. The enum labels on the wire
// are the historical device strings ("HEAVY RAIN", "CRITICAL FLOOD"), kept
// stable because the deployed collector parses them verbatim. See [Report].
package domain
