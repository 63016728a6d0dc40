package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Turntable eases a spin angle towards a target with a damped spring, one
// animation frame at a time.
type Turntable struct {
	spring   harmonica.Spring
	angle    float64
	velocity float64
	target   float64
}

// NewTurntable creates a turntable stepping at fps frames per second.
// frequency is the spring's angular frequency and damping its ratio; a
// ratio of 1 is critically damped.
func NewTurntable(fps int, frequency, damping float64) *Turntable {
	return &Turntable{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// SetTarget sets the angle the spring pulls towards (radians).
func (t *Turntable) SetTarget(angle float64) {
	t.target = angle
}

// Angle returns the current angle.
func (t *Turntable) Angle() float64 {
	return t.angle
}

// Step advances one frame and returns the new angle.
func (t *Turntable) Step() float64 {
	t.angle, t.velocity = t.spring.Update(t.angle, t.velocity, t.target)
	return t.angle
}

// Settled reports whether the angle and velocity are within eps of rest.
func (t *Turntable) Settled(eps float64) bool {
	return math.Abs(t.angle-t.target) < eps && math.Abs(t.velocity) < eps
}

// Frames steps n times and returns the angle after each step.
func (t *Turntable) Frames(n int) []float64 {
	angles := make([]float64, n)
	for i := range angles {
		angles[i] = t.Step()
	}
	return angles
}
