// Package easing maps normalised progress in [0,1] to an eased value.
//
// Every curve starts at 0 and ends at 1. Curves are defined on the closed
// interval [0,1] only; Sample refuses anything outside it.
package easing

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects a curve shape.
type Kind int

const (
	Linear Kind = iota
	QuadraticIn
	QuadraticOut
	QuadraticInOut
	CubicIn
	CubicOut
	CubicInOut
	QuarticIn
	QuarticOut
	QuarticInOut
	QuinticIn
	QuinticOut
	QuinticInOut
	CircularIn
	CircularOut
	CircularInOut
	ExponentialIn
	ExponentialOut
	ExponentialInOut
	BounceIn
	BounceOut
	BounceInOut

	kindCount
)

var names = [kindCount]string{
	Linear:           "linear",
	QuadraticIn:      "quadratic_in",
	QuadraticOut:     "quadratic_out",
	QuadraticInOut:   "quadratic_in_out",
	CubicIn:          "cubic_in",
	CubicOut:         "cubic_out",
	CubicInOut:       "cubic_in_out",
	QuarticIn:        "quartic_in",
	QuarticOut:       "quartic_out",
	QuarticInOut:     "quartic_in_out",
	QuinticIn:        "quintic_in",
	QuinticOut:       "quintic_out",
	QuinticInOut:     "quintic_in_out",
	CircularIn:       "circular_in",
	CircularOut:      "circular_out",
	CircularInOut:    "circular_in_out",
	ExponentialIn:    "exponential_in",
	ExponentialOut:   "exponential_out",
	ExponentialInOut: "exponential_in_out",
	BounceIn:         "bounce_in",
	BounceOut:        "bounce_out",
	BounceInOut:      "bounce_in_out",
}

var curves = [kindCount]func(float64) float64{
	Linear:           func(t float64) float64 { return t },
	QuadraticIn:      powIn(2),
	QuadraticOut:     powOut(2),
	QuadraticInOut:   powInOut(2),
	CubicIn:          powIn(3),
	CubicOut:         powOut(3),
	CubicInOut:       powInOut(3),
	QuarticIn:        powIn(4),
	QuarticOut:       powOut(4),
	QuarticInOut:     powInOut(4),
	QuinticIn:        powIn(5),
	QuinticOut:       powOut(5),
	QuinticInOut:     powInOut(5),
	CircularIn:       circularIn,
	CircularOut:      circularOut,
	CircularInOut:    circularInOut,
	ExponentialIn:    exponentialIn,
	ExponentialOut:   exponentialOut,
	ExponentialInOut: exponentialInOut,
	BounceIn:         bounceIn,
	BounceOut:        bounceOut,
	BounceInOut:      bounceInOut,
}

// Kinds returns every curve in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Linear; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Count is the number of curves.
func Count() int { return int(kindCount) }

// Valid reports whether k names a curve.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return names[k]
}

// Parse accepts a curve name in snake_case, kebab-case or CamelCase, e.g.
// "quartic_in", "quartic-in" or "QuarticIn".
func Parse(s string) (Kind, error) {
	want := squash(s)
	for k := Linear; k < kindCount; k++ {
		if squash(names[k]) == want {
			return k, nil
		}
	}
	return Linear, fmt.Errorf("easing: unknown curve %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("easing: invalid kind %d", int(k))
	}
	return []byte(names[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func squash(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// Sample evaluates curve k at t. It reports false when k is unknown or t lies
// outside [0,1] (including NaN); callers keep their previous value then.
func Sample(k Kind, t float32) (float32, bool) {
	if !k.Valid() {
		return 0, false
	}
	if !(t >= 0 && t <= 1) {
		return 0, false
	}
	return float32(curves[k](float64(t))), true
}

// Eval is Sample with t clamped into [0,1] first.
func Eval(k Kind, t float64) float64 {
	if !k.Valid() {
		return t
	}
	if t != t || t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return curves[k](t)
}

func powIn(n float64) func(float64) float64 {
	return func(t float64) float64 { return math.Pow(t, n) }
}

func powOut(n float64) func(float64) float64 {
	return func(t float64) float64 { return 1 - math.Pow(1-t, n) }
}

func powInOut(n float64) func(float64) float64 {
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2, n-1) * math.Pow(t, n)
		}
		return 1 - math.Pow(-2*t+2, n)/2
	}
}

func circularIn(t float64) float64 {
	return 1 - math.Sqrt(1-t*t)
}

func circularOut(t float64) float64 {
	return math.Sqrt(1 - (t-1)*(t-1))
}

func circularInOut(t float64) float64 {
	if t < 0.5 {
		return (1 - math.Sqrt(1-4*t*t)) / 2
	}
	u := -2*t + 2
	return (math.Sqrt(1-u*u) + 1) / 2
}

func exponentialIn(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

func exponentialOut(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func exponentialInOut(t float64) float64 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

func bounceOut(t float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

func bounceIn(t float64) float64 {
	return 1 - bounceOut(1-t)
}

func bounceInOut(t float64) float64 {
	if t < 0.5 {
		return (1 - bounceOut(1-2*t)) / 2
	}
	return (1 + bounceOut(2*t-1)) / 2
}
