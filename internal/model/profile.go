package model

import "math"

// Gender is used for body profile adjustments.
type Gender string

// Genders.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Profile is the user's body profile.
type Profile struct {
	WeightKg float64
	HeightCm float64
	AgeYears float64
	Gender   Gender
}

// DefaultProfile substitutes for missing or invalid profile fields.
var DefaultProfile = Profile{
	WeightKg: 65,
	HeightCm: 165,
	AgeYears: 30,
	Gender:   GenderOther,
}

// Valid reports whether every field is usable as-is.
func (p Profile) Valid() bool {
	return positive(p.WeightKg) && positive(p.HeightCm) && positive(p.AgeYears) && p.Gender.Valid()
}

// Resolved returns p with every invalid field replaced by DefaultProfile's.
func (p Profile) Resolved() Profile {
	out := p
	if !positive(out.WeightKg) {
		out.WeightKg = DefaultProfile.WeightKg
	}
	if !positive(out.HeightCm) {
		out.HeightCm = DefaultProfile.HeightCm
	}
	if !positive(out.AgeYears) {
		out.AgeYears = DefaultProfile.AgeYears
	}
	if !out.Gender.Valid() {
		out.Gender = DefaultProfile.Gender
	}
	return out
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Mode selects which of the two configured drink styles drives the tank.
type Mode string

// Modes.
const (
	Mode1 Mode = "mode1"
	Mode2 Mode = "mode2"
)

// ModeSettings holds the style keys bound to each mode.
type ModeSettings struct {
	Mode1 string
	Mode2 string
}

// StyleFor returns the style key configured for mode. Anything other than
// Mode2 selects Mode1.
func (m ModeSettings) StyleFor(mode Mode) string {
	if mode == Mode2 {
		return m.Mode2
	}
	return m.Mode1
}
