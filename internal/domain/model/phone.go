// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// OperatingSystem is a normalized (uppercase) phone operating system.
type OperatingSystem string

// Supported operating systems.
const (
	Android OperatingSystem = "ANDROID"
	IOS     OperatingSystem = "IOS"
)

// ParseOperatingSystem normalizes raw user input and validates it against
// the supported set. Matching is case-insensitive; surrounding whitespace
// is ignored.
func ParseOperatingSystem(raw string) (OperatingSystem, error) {
	os := OperatingSystem(strings.ToUpper(strings.TrimSpace(raw)))
	switch os {
	case Android, IOS:
		return os, nil
	default:
		return "", fmt.Errorf("unsupported operating system %q (expected ANDROID or IOS)", raw)
	}
}

// Smartphone is a single catalog record. Duplicate device names are legal
// and act as repeated training examples.
type Smartphone struct {
	DeviceName          string
	ChargingTimeMinutes int
	OperatingSystem     string // free-form at load time
}

// PreferenceQuery holds one round of validated user preferences.
type PreferenceQuery struct {
	OperatingSystem        OperatingSystem
	MaxChargingTimeMinutes float64
}

// PreferenceKey identifies a distinct preference combination. Two queries
// with equal normalized fields derive equal keys; this is the invariant the
// recommendation history relies on.
type PreferenceKey string

// Key derives the history key for this query. The numeric part uses the
// shortest exact rendering so 90 and 90.0 map to the same key.
func (q PreferenceQuery) Key() PreferenceKey {
	return PreferenceKey(string(q.OperatingSystem) + "|" + strconv.FormatFloat(q.MaxChargingTimeMinutes, 'g', -1, 64))
}

// Features encodes the query for the classifier: one-hot operating system
// followed by the charging-time bound in minutes.
func (q PreferenceQuery) Features() []float64 {
	return encodeFeatures(string(q.OperatingSystem), q.MaxChargingTimeMinutes)
}

// Features encodes a catalog record the same way PreferenceQuery.Features
// encodes a query, so training and prediction share one feature space.
func (p Smartphone) Features() []float64 {
	os := strings.ToUpper(strings.TrimSpace(p.OperatingSystem))
	return encodeFeatures(os, float64(p.ChargingTimeMinutes))
}

func encodeFeatures(os string, minutes float64) []float64 {
	var android, ios float64
	switch OperatingSystem(os) {
	case Android:
		android = 1
	case IOS:
		ios = 1
	}
	return []float64{android, ios, minutes}
}

// FeatureCount is the width of the encoded feature vector.
const FeatureCount = 3
