package component

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/shapetransition/easing"
)

var ErrInvalidRequest = errors.New("transition: invalid request")

// RequestMode selects how a request treats the colour currently on screen.
type RequestMode int

const (
	// RequestContinue rolls the current target into the baseline and wipes
	// towards Color.
	RequestContinue RequestMode = iota
	// RequestReset replaces both baseline (From) and target (Color).
	RequestReset
)

func (m RequestMode) String() string {
	switch m {
	case RequestContinue:
		return "continue"
	case RequestReset:
		return "reset"
	default:
		return fmt.Sprintf("RequestMode(%d)", int(m))
	}
}

// TransitionRequest asks the transition systems to start a new wipe. It is
// consumed within one tick.
type TransitionRequest struct {
	Mode RequestMode
	// Angle is the wipe direction in degrees, [0, 360).
	Angle float32
	// Color is the target colour.
	Color Color
	// From is the explicit baseline. Only read in RequestReset mode.
	From Color
	// Duration is in seconds and must be positive.
	Duration float32
	Easing   easing.Kind
}

// ContinueRequest wipes from whatever is currently the target to color.
func ContinueRequest(angle float32, color Color, duration float32, kind easing.Kind) TransitionRequest {
	return TransitionRequest{
		Mode:     RequestContinue,
		Angle:    angle,
		Color:    color,
		Duration: duration,
		Easing:   kind,
	}
}

// ResetRequest wipes from `from` to `to`, ignoring the current colours.
func ResetRequest(angle float32, from, to Color, duration float32, kind easing.Kind) TransitionRequest {
	return TransitionRequest{
		Mode:     RequestReset,
		Angle:    angle,
		Color:    to,
		From:     from,
		Duration: duration,
		Easing:   kind,
	}
}

// Validate reports ErrInvalidRequest for requests the systems must reject.
func (r TransitionRequest) Validate() error {
	d := float64(r.Duration)
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return fmt.Errorf("%w: duration must be > 0, got %v", ErrInvalidRequest, r.Duration)
	}
	if !r.Easing.Valid() {
		return fmt.Errorf("%w: unknown easing %v", ErrInvalidRequest, r.Easing)
	}
	if r.Mode != RequestContinue && r.Mode != RequestReset {
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidRequest, r.Mode)
	}
	if a := float64(r.Angle); math.IsNaN(a) || math.IsInf(a, 0) {
		return fmt.Errorf("%w: angle must be finite", ErrInvalidRequest)
	}
	return nil
}

// NormalizedAngle folds Angle into [0, 360).
func (r TransitionRequest) NormalizedAngle() float32 {
	a := math.Mod(float64(r.Angle), 360)
	if a < 0 {
		a += 360
	}
	return float32(a)
}
