package catalog

import "sort"

// SizeKey identifies a serving size.
type SizeKey string

// Serving sizes.
const (
	Can350   SizeKey = "can350"
	Can500   SizeKey = "can500"
	Bottle   SizeKey = "bottle330"
	Pint     SizeKey = "pint"
	HalfPint SizeKey = "half_pint"
	Glass    SizeKey = "glass"
)

// DefaultSize is used when a drink is logged without a known size.
const DefaultSize = Can350

// Size is a serving size in milliliters.
type Size struct {
	Key   SizeKey
	Label string
	ML    float64
}

// Sizes maps size keys to their definitions.
var Sizes = map[SizeKey]Size{
	Can350:   {Key: Can350, Label: "Can (350ml)", ML: 350},
	Can500:   {Key: Can500, Label: "Tall can (500ml)", ML: 500},
	Bottle:   {Key: Bottle, Label: "Bottle (330ml)", ML: 330},
	Pint:     {Key: Pint, Label: "Pint (473ml)", ML: 473},
	HalfPint: {Key: HalfPint, Label: "Half pint (284ml)", ML: 284},
	Glass:    {Key: Glass, Label: "Glass (200ml)", ML: 200},
}

// ParseSizeKey validates a free-form size key.
func ParseSizeKey(raw string) (SizeKey, bool) {
	key := SizeKey(normalizeKey(raw))
	if _, ok := Sizes[key]; ok {
		return key, true
	}
	return "", false
}

// ResolveSize returns the size for raw, or the default size.
func ResolveSize(raw string) Size {
	if key, ok := ParseSizeKey(raw); ok {
		return Sizes[key]
	}
	return Sizes[DefaultSize]
}

// SizeKeys returns all size keys, smallest serving first.
func SizeKeys() []SizeKey {
	keys := make([]SizeKey, 0, len(Sizes))
	for k := range Sizes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return Sizes[keys[i]].ML < Sizes[keys[j]].ML })
	return keys
}
