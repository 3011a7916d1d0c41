// Package physics provides the small amount of kinematics the particle
// patterns share: 2D vectors, particle integration, boundary handling and
// critically damped springs for smoothing pointer input.
//
// Integration steps are explicit and allocation-free so a pattern can
// advance thousands of particles per frame:
//
//	p.Vel = p.Vel.Add(gravity.Scale(dt))
//	physics.Euler(&p, dt)
//	physics.Bounce(&p, bounds, 0.6)
package physics
