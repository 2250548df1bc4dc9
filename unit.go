package georuler

import "fmt"

// Unit is a distance unit used by a Ruler. The set is closed: every unit
// carries a fixed multiplier relative to kilometers.
type Unit int

const (
	Kilometers Unit = iota
	Miles
	NauticalMiles
	Meters
	Yards
	Feet
	Inches
)

var unitMultipliers = [...]float64{
	Kilometers:    1.0,
	Miles:         1000.0 / 1609.344,
	NauticalMiles: 1000.0 / 1852.0,
	Meters:        1000.0,
	Yards:         1000.0 / 0.9144,
	Feet:          1000.0 / 0.3048,
	Inches:        1000.0 / 0.0254,
}

var unitNames = [...]string{
	Kilometers:    "kilometers",
	Miles:         "miles",
	NauticalMiles: "nauticalmiles",
	Meters:        "meters",
	Yards:         "yards",
	Feet:          "feet",
	Inches:        "inches",
}

// Multiplier returns the conversion factor from kilometers to the unit.
func (u Unit) Multiplier() float64 {
	if u < 0 || int(u) >= len(unitMultipliers) {
		return unitMultipliers[Kilometers]
	}
	return unitMultipliers[u]
}

// String returns the lowercase name of the unit.
func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return "unknown"
	}
	return unitNames[u]
}

// ParseUnit resolves a unit from its name as used in configuration files and
// CLI flags. Common aliases and spelling variants are accepted.
func ParseUnit(name string) (Unit, error) {
	switch name {
	case "kilometers", "kilometres", "km":
		return Kilometers, nil
	case "miles", "mi":
		return Miles, nil
	case "nauticalmiles", "nmi":
		return NauticalMiles, nil
	case "meters", "metres", "m":
		return Meters, nil
	case "yards", "yd":
		return Yards, nil
	case "feet", "ft":
		return Feet, nil
	case "inches", "in":
		return Inches, nil
	}
	return Kilometers, fmt.Errorf("unknown distance unit %q", name)
}
