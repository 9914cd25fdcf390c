// Package sensor contains the I²C drivers for the badge's ambient light
// sensor and supply monitors.
package sensor

import "periph.io/x/conn/v3/physic"

// Volts converts a periph potential to volts.
func Volts(v physic.ElectricPotential) float64 {
	return float64(v) / float64(physic.Volt)
}
