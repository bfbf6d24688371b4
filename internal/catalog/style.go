package catalog

import (
	"math"
	"sort"
)

// StyleKey identifies a drink style.
type StyleKey string

// Drink style keys.
const (
	Pilsner      StyleKey = "pilsner"
	Lager        StyleKey = "lager"
	PaleAle      StyleKey = "pale_ale"
	IPA          StyleKey = "ipa"
	HazyIPA      StyleKey = "hazy_ipa"
	DoubleIPA    StyleKey = "double_ipa"
	Weizen       StyleKey = "weizen"
	Witbier      StyleKey = "witbier"
	Stout        StyleKey = "stout"
	Sour         StyleKey = "sour"
	Belgian      StyleKey = "belgian_strong"
	Happoshu     StyleKey = "happoshu"
	Chuhai       StyleKey = "chuhai"
	Highball     StyleKey = "highball"
	Sake         StyleKey = "sake"
	RedWine      StyleKey = "red_wine"
	WhiteWine    StyleKey = "white_wine"
	NonAlcoholic StyleKey = "non_alcoholic"
)

// DefaultStyle is used whenever a style key is missing or unknown.
const DefaultStyle = Pilsner

const (
	// UnitML is the volume of one "can" on the tank.
	UnitML = 350.0
	// EthanolDensity is grams of ethanol per ml.
	EthanolDensity = 0.8
	// EthanolKcalPerGram is the energy of one gram of ethanol.
	EthanolKcalPerGram = 7.0
	// MinUnitKcal keeps can counts finite when a style yields no energy.
	MinUnitKcal = 1.0
)

// Style describes one drink style.
type Style struct {
	Key         StyleKey
	Label       string
	Icon        string
	ABV         float64 // percent
	LiquidColor string  // hex
	Hazy        bool    // unfiltered / cloudy
}

// Styles maps style keys to their definitions.
var Styles = map[StyleKey]Style{
	Pilsner:      {Key: Pilsner, Label: "Pilsner", Icon: "🍺", ABV: 5.0, LiquidColor: "#F4C430"},
	Lager:        {Key: Lager, Label: "Lager", Icon: "🍺", ABV: 4.5, LiquidColor: "#F6D55C"},
	PaleAle:      {Key: PaleAle, Label: "Pale Ale", Icon: "🍺", ABV: 5.5, LiquidColor: "#E8A33D"},
	IPA:          {Key: IPA, Label: "IPA", Icon: "🍺", ABV: 6.5, LiquidColor: "#E39B2B"},
	HazyIPA:      {Key: HazyIPA, Label: "Hazy IPA", Icon: "🍹", ABV: 7.0, LiquidColor: "#FFC94A", Hazy: true},
	DoubleIPA:    {Key: DoubleIPA, Label: "Double IPA", Icon: "🍺", ABV: 8.5, LiquidColor: "#D98C1E"},
	Weizen:       {Key: Weizen, Label: "Weizen", Icon: "🍺", ABV: 5.4, LiquidColor: "#F9D976", Hazy: true},
	Witbier:      {Key: Witbier, Label: "Witbier", Icon: "🍺", ABV: 5.0, LiquidColor: "#FBE7A1", Hazy: true},
	Stout:        {Key: Stout, Label: "Stout", Icon: "🍺", ABV: 6.0, LiquidColor: "#2B1B17"},
	Sour:         {Key: Sour, Label: "Sour", Icon: "🍺", ABV: 4.5, LiquidColor: "#F28C8C", Hazy: true},
	Belgian:      {Key: Belgian, Label: "Belgian Strong", Icon: "🍺", ABV: 9.0, LiquidColor: "#B5651D"},
	Happoshu:     {Key: Happoshu, Label: "Happoshu", Icon: "🍺", ABV: 5.5, LiquidColor: "#F7DC6F"},
	Chuhai:       {Key: Chuhai, Label: "Chuhai", Icon: "🍋", ABV: 7.0, LiquidColor: "#E8F8C1"},
	Highball:     {Key: Highball, Label: "Highball", Icon: "🥃", ABV: 7.0, LiquidColor: "#E0B872"},
	Sake:         {Key: Sake, Label: "Sake", Icon: "🍶", ABV: 15.0, LiquidColor: "#F5F5DC"},
	RedWine:      {Key: RedWine, Label: "Red Wine", Icon: "🍷", ABV: 13.0, LiquidColor: "#722F37"},
	WhiteWine:    {Key: WhiteWine, Label: "White Wine", Icon: "🥂", ABV: 12.0, LiquidColor: "#F3E5AB"},
	NonAlcoholic: {Key: NonAlcoholic, Label: "Non-alcoholic", Icon: "🧃", ABV: 0, LiquidColor: "#FFF4C2"},
}

// ParseStyleKey validates a free-form key against the style table.
func ParseStyleKey(raw string) (StyleKey, bool) {
	key := StyleKey(normalizeKey(raw))
	if _, ok := Styles[key]; ok {
		return key, true
	}
	return "", false
}

// ResolveStyle returns the style for raw, or the default style when raw is
// not in the table.
func ResolveStyle(raw string) Style {
	if key, ok := ParseStyleKey(raw); ok {
		return Styles[key]
	}
	return Styles[DefaultStyle]
}

// StyleKeys returns all style keys sorted alphabetically.
func StyleKeys() []StyleKey {
	keys := make([]StyleKey, 0, len(Styles))
	for k := range Styles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// DrinkKcal returns the ethanol energy of count servings of ml at abv percent.
// NaN, infinite and negative inputs contribute zero.
func DrinkKcal(ml, abv, count float64) float64 {
	ml, abv, count = nonNegative(ml), nonNegative(abv), nonNegative(count)
	return ml * abv / 100 * EthanolDensity * EthanolKcalPerGram * count
}

// UnitKcal returns the energy of one can of the style, never below MinUnitKcal.
func UnitKcal(s Style) float64 {
	k := DrinkKcal(UnitML, s.ABV, 1)
	if k < MinUnitKcal {
		return MinUnitKcal
	}
	return k
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
