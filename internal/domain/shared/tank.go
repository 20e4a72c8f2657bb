package shared

import "fmt"

// Tank represents an immutable gas cylinder: a water volume in litres and a
// fill pressure in bar. Capacity is the free-gas content at fill pressure.
type Tank struct {
	Volume       float64
	FillPressure float64
}

// NewTank creates a new tank value object with validation
func NewTank(volume, fillPressure float64) (*Tank, error) {
	if volume < 0 {
		return nil, fmt.Errorf("tank volume cannot be negative")
	}
	if fillPressure < 0 {
		return nil, fmt.Errorf("fill pressure cannot be negative")
	}

	return &Tank{
		Volume:       volume,
		FillPressure: fillPressure,
	}, nil
}

// Capacity returns the free-gas content at fill pressure in litres
func (t *Tank) Capacity() float64 {
	return t.Volume * t.FillPressure
}

// PressureFor converts a gas volume in litres to the equivalent pressure in
// this tank. Returns 0 for a zero-volume tank rather than dividing by zero.
func (t *Tank) PressureFor(volume float64) float64 {
	if t.Volume <= 0 {
		return 0
	}
	return volume / t.Volume
}

// VolumeFor converts a pressure in bar to the gas volume it represents in
// this tank.
func (t *Tank) VolumeFor(pressure float64) float64 {
	return pressure * t.Volume
}

func (t *Tank) String() string {
	return fmt.Sprintf("Tank(%.1fL@%.0fbar)", t.Volume, t.FillPressure)
}
