package physics

// Particle is a point mass with a finite lifetime.
type Particle struct {
	Pos, Vel, Acc Vec2
	Life, MaxLife float64
	Kind          int
}

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool { return p.Life > 0 }

// Age returns the fraction of life consumed in [0,1].
func (p *Particle) Age() float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	a := 1 - p.Life/p.MaxLife
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Euler advances one semi-implicit Euler step and decays life.
func Euler(p *Particle, dt float64) {
	p.Vel = p.Vel.Add(p.Acc.Scale(dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Life -= dt
}

// Verlet advances one velocity-Verlet step where accel returns the
// acceleration at a position.
func Verlet(p *Particle, dt float64, accel func(Vec2) Vec2) {
	a0 := p.Acc
	p.Pos = p.Pos.Add(p.Vel.Scale(dt)).Add(a0.Scale(0.5 * dt * dt))
	a1 := accel(p.Pos)
	p.Vel = p.Vel.Add(a0.Add(a1).Scale(0.5 * dt))
	p.Acc = a1
	p.Life -= dt
}

// Drag scales velocity by (1-k*dt).
func Drag(p *Particle, k, dt float64) {
	f := 1 - k*dt
	if f < 0 {
		f = 0
	}
	p.Vel = p.Vel.Scale(f)
}

// Bounds is an axis-aligned box in cell units, [MinX,MaxX)x[MinY,MaxY).
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Screen returns bounds covering a width x height grid.
func Screen(width, height int) Bounds {
	return Bounds{MaxX: float64(width), MaxY: float64(height)}
}

// Contains reports whether v lies inside b.
func (b Bounds) Contains(v Vec2) bool {
	return v.X >= b.MinX && v.X < b.MaxX && v.Y >= b.MinY && v.Y < b.MaxY
}

// Bounce reflects the particle off the box edges, keeping restitution of
// its normal velocity. It reports whether a collision happened.
func Bounce(p *Particle, b Bounds, restitution float64) bool {
	hit := false
	if p.Pos.X < b.MinX {
		p.Pos.X = b.MinX
		p.Vel.X = -p.Vel.X * restitution
		hit = true
	} else if p.Pos.X >= b.MaxX {
		p.Pos.X = b.MaxX - 1e-6
		p.Vel.X = -p.Vel.X * restitution
		hit = true
	}
	if p.Pos.Y < b.MinY {
		p.Pos.Y = b.MinY
		p.Vel.Y = -p.Vel.Y * restitution
		hit = true
	} else if p.Pos.Y >= b.MaxY {
		p.Pos.Y = b.MaxY - 1e-6
		p.Vel.Y = -p.Vel.Y * restitution
		hit = true
	}
	return hit
}

// Wrap teleports the particle to the opposite edge when it leaves b.
func Wrap(p *Particle, b Bounds) {
	w, h := b.MaxX-b.MinX, b.MaxY-b.MinY
	if w <= 0 || h <= 0 {
		return
	}
	for p.Pos.X < b.MinX {
		p.Pos.X += w
	}
	for p.Pos.X >= b.MaxX {
		p.Pos.X -= w
	}
	for p.Pos.Y < b.MinY {
		p.Pos.Y += h
	}
	for p.Pos.Y >= b.MaxY {
		p.Pos.Y -= h
	}
}

// Compact removes dead particles in place and returns the live prefix.
func Compact(ps []Particle) []Particle {
	n := 0
	for i := range ps {
		if ps[i].Alive() {
			ps[n] = ps[i]
			n++
		}
	}
	return ps[:n]
}
