// Package noise wraps gradient noise for the organic patterns.
package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	defaultAlpha = 2.0
	defaultBeta  = 2.0
	defaultN     = 3
)

// Field is a seeded Perlin noise source.
type Field struct {
	p *perlin.Perlin
}

// New creates a noise field. The same seed always yields the same field.
func New(seed int64) *Field {
	return &Field{p: perlin.NewPerlin(defaultAlpha, defaultBeta, defaultN, seed)}
}

// At2 samples 2D noise in roughly [-1,1].
func (f *Field) At2(x, y float64) float64 {
	return f.p.Noise2D(x, y)
}

// At3 samples 3D noise; the third axis is normally time.
func (f *Field) At3(x, y, z float64) float64 {
	return f.p.Noise3D(x, y, z)
}

// Unit3 samples 3D noise remapped to [0,1].
func (f *Field) Unit3(x, y, z float64) float64 {
	return clamp01(f.p.Noise3D(x, y, z)*0.5 + 0.5)
}

// FBM sums octaves of 3D noise with halving amplitude, normalized to [0,1].
func (f *Field) FBM(x, y, z float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}
	sum, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		sum += amp * f.p.Noise3D(x*freq, y*freq, z*freq)
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return clamp01(sum/norm*0.5 + 0.5)
}

// Value is a cheap hash-based value noise in [0,1], smooth in x and y.
func Value(x, y float64, seed int64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := smooth(x-x0), smooth(y-y0)
	ix, iy := int64(x0), int64(y0)

	v00 := hash(ix, iy, seed)
	v10 := hash(ix+1, iy, seed)
	v01 := hash(ix, iy+1, seed)
	v11 := hash(ix+1, iy+1, seed)

	top := v00 + (v10-v00)*fx
	bot := v01 + (v11-v01)*fx
	return top + (bot-top)*fy
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

func hash(x, y, seed int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F ^ uint64(seed)*0x165667B19E3779F9
	h ^= h >> 31
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 29
	return float64(h>>11) / float64(1<<53)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
