package physics

import "github.com/charmbracelet/harmonica"

// Spring2 smooths a 2D target with a damped harmonica spring.
type Spring2 struct {
	spring harmonica.Spring
	Pos    Vec2
	vel    Vec2
}

// NewSpring2 creates a spring tuned for fps updates per second.
func NewSpring2(fps int, frequency, damping float64) *Spring2 {
	if fps < 1 {
		fps = 1
	}
	return &Spring2{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Snap places the spring at p with no velocity.
func (s *Spring2) Snap(p Vec2) {
	s.Pos = p
	s.vel = Vec2{}
}

// Step moves one tick toward target and returns the new position.
func (s *Spring2) Step(target Vec2) Vec2 {
	s.Pos.X, s.vel.X = s.spring.Update(s.Pos.X, s.vel.X, target.X)
	s.Pos.Y, s.vel.Y = s.spring.Update(s.Pos.Y, s.vel.Y, target.Y)
	return s.Pos
}
