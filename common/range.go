// Package common holds value types shared by the calculators.
package common

// RangeValue is a closed interval, typically a confidence interval around an estimate.
type RangeValue struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the interval, bounds included.
func (r RangeValue) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Scale returns the interval with both bounds multiplied by f.
func (r RangeValue) Scale(f float64) RangeValue {
	return RangeValue{Min: r.Min * f, Max: r.Max * f}
}
