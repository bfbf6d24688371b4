// Package catalog holds the static exercise, drink style and serving size tables.
package catalog

import (
	"sort"
	"strings"
)

// ExerciseKey identifies an entry in the exercise table.
type ExerciseKey string

// Exercise keys.
const (
	Stepper      ExerciseKey = "stepper"
	Walking      ExerciseKey = "walking"
	BriskWalking ExerciseKey = "brisk_walking"
	Running      ExerciseKey = "running"
	Cycling      ExerciseKey = "cycling"
	Swimming     ExerciseKey = "swimming"
	Strength     ExerciseKey = "strength"
	Yoga         ExerciseKey = "yoga"
	HIIT         ExerciseKey = "hiit"
)

// DefaultExercise is used whenever an exercise key is missing or unknown.
const DefaultExercise = Stepper

// Exercise describes one exercise type and its metabolic equivalent.
type Exercise struct {
	Key      ExerciseKey
	Label    string
	Icon     string
	METValue float64
}

// Exercises maps exercise keys to their definitions.
var Exercises = map[ExerciseKey]Exercise{
	Stepper:      {Key: Stepper, Label: "Stepper", Icon: "🏃‍♀️", METValue: 6.0},
	Walking:      {Key: Walking, Label: "Walking", Icon: "🚶", METValue: 3.5},
	BriskWalking: {Key: BriskWalking, Label: "Brisk walking", Icon: "🚶‍♂️", METValue: 4.3},
	Running:      {Key: Running, Label: "Running", Icon: "🏃", METValue: 7.0},
	Cycling:      {Key: Cycling, Label: "Cycling", Icon: "🚴", METValue: 6.8},
	Swimming:     {Key: Swimming, Label: "Swimming", Icon: "🏊", METValue: 6.0},
	Strength:     {Key: Strength, Label: "Strength training", Icon: "🏋️", METValue: 5.0},
	Yoga:         {Key: Yoga, Label: "Yoga", Icon: "🧘", METValue: 2.5},
	HIIT:         {Key: HIIT, Label: "HIIT", Icon: "🔥", METValue: 8.0},
}

// ParseExerciseKey validates a free-form key against the exercise table.
// Keys are matched case-insensitively; "-" and " " are treated as "_".
func ParseExerciseKey(raw string) (ExerciseKey, bool) {
	key := ExerciseKey(normalizeKey(raw))
	if _, ok := Exercises[key]; ok {
		return key, true
	}
	return "", false
}

// ResolveExercise returns the exercise for raw, or the default exercise
// when raw is not in the table.
func ResolveExercise(raw string) Exercise {
	if key, ok := ParseExerciseKey(raw); ok {
		return Exercises[key]
	}
	return Exercises[DefaultExercise]
}

// ExerciseKeys returns all exercise keys sorted by MET value, then key.
func ExerciseKeys() []ExerciseKey {
	keys := make([]ExerciseKey, 0, len(Exercises))
	for k := range Exercises {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := Exercises[keys[i]], Exercises[keys[j]]
		if a.METValue != b.METValue {
			return a.METValue < b.METValue
		}
		return a.Key < b.Key
	})
	return keys
}

func normalizeKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}
