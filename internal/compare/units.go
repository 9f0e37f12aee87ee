package compare

import "strings"

// unitAliases maps spellings to a canonical unit token. This is a lookup
// table, not unit algebra: a derived unit missing here only equals itself.
var unitAliases = map[string]string{
	// force
	"n": "N", "newton": "N", "newtons": "N",
	"kn": "kN", "kilonewton": "kN", "kilonewtons": "kN",
	// moment
	"n·m": "N·m", "n.m": "N·m", "nm": "N·m", "n*m": "N·m", "n-m": "N·m", "newton-metre": "N·m", "newton-meter": "N·m",
	"kn·m": "kN·m", "kn.m": "kN·m", "knm": "kN·m", "kn*m": "kN·m", "kn-m": "kN·m",
	// length
	"m": "m", "meter": "m", "meters": "m", "metre": "m", "metres": "m", "mètre": "m", "mètres": "m",
	"mm": "mm", "millimeter": "mm", "millimeters": "mm", "millimètre": "mm", "millimètres": "mm",
	"cm": "cm", "centimeter": "cm", "centimeters": "cm", "centimètre": "cm", "centimètres": "cm",
	"km": "km", "kilometer": "km", "kilometers": "km", "kilomètre": "km", "kilomètres": "km",
	// stress / pressure
	"pa": "Pa", "pascal": "Pa", "pascals": "Pa",
	"kpa": "kPa", "mpa": "MPa", "gpa": "GPa", "n/mm²": "MPa", "n/mm2": "MPa",
	// kinematics
	"m/s": "m/s", "m.s-1": "m/s", "m·s⁻¹": "m/s",
	"m/s²": "m/s²", "m/s2": "m/s²", "m/s^2": "m/s²", "m.s-2": "m/s²", "m·s⁻²": "m/s²",
	"km/h": "km/h", "kmh": "km/h",
	"s": "s", "sec": "s", "second": "s", "seconds": "s", "seconde": "s", "secondes": "s",
	// mass
	"kg": "kg", "kilogram": "kg", "kilograms": "kg", "kilogramme": "kg", "kilogrammes": "kg",
	"g": "g", "gram": "g", "grams": "g", "gramme": "g", "grammes": "g",
	// angles
	"°": "deg", "deg": "deg", "degree": "deg", "degrees": "deg", "degré": "deg", "degrés": "deg",
	"rad": "rad", "radian": "rad", "radians": "rad",
	// waves
	"hz": "Hz", "hertz": "Hz", "khz": "kHz",
	// energy / power
	"j": "J", "joule": "J", "joules": "J",
	"w": "W", "watt": "W", "watts": "W",
}

// NormalizeUnit canonicalizes a unit spelling. Case and whitespace are
// ignored; spellings absent from the table are returned lowercased with
// whitespace removed.
func NormalizeUnit(unit string) string {
	key := strings.ToLower(strings.Join(strings.Fields(unit), ""))
	if canon, ok := unitAliases[key]; ok {
		return canon
	}
	return key
}

// UnitsEquivalent reports whether a and b name the same unit.
func UnitsEquivalent(a, b string) bool {
	return NormalizeUnit(a) == NormalizeUnit(b)
}
