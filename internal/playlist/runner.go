package playlist

import (
	"math/rand"
	"time"
)

// Runner walks a validated playlist in wall-clock time.
type Runner struct {
	pl      *Playlist
	rng     *rand.Rand
	order   []int
	pos     int
	elapsed time.Duration
	done    bool
}

func NewRunner(pl *Playlist) *Runner {
	r := &Runner{
		pl:    pl,
		rng:   rand.New(rand.NewSource(pl.Seed)),
		order: make([]int, len(pl.Steps)),
	}
	r.shuffle()
	return r
}

func (r *Runner) shuffle() {
	for i := range r.order {
		r.order[i] = i
	}
	if r.pl.Shuffle {
		r.rng.Shuffle(len(r.order), func(i, j int) {
			r.order[i], r.order[j] = r.order[j], r.order[i]
		})
	}
}

// Current is the step that should be showing now.
func (r *Runner) Current() Step {
	if len(r.order) == 0 {
		return Step{}
	}
	return r.pl.Steps[r.order[r.pos]]
}

// Position returns the index into the play order and its length.
func (r *Runner) Position() (int, int) { return r.pos, len(r.order) }

func (r *Runner) Done() bool { return r.done || len(r.order) == 0 }

// Remaining is the time left on the current step.
func (r *Runner) Remaining() time.Duration {
	if r.Done() {
		return 0
	}
	return max(r.Current().Duration-r.elapsed, 0)
}

// Advance adds elapsed wall time. When the current step runs out it returns
// the step to switch to and true. A finished non-looping playlist stays on
// its last step and never reports a switch again.
func (r *Runner) Advance(elapsed time.Duration) (Step, bool) {
	if r.Done() || elapsed <= 0 {
		return Step{}, false
	}
	r.elapsed += elapsed
	if r.elapsed < r.Current().Duration {
		return Step{}, false
	}
	r.elapsed = 0
	return r.Skip()
}

// Skip moves to the next step immediately.
func (r *Runner) Skip() (Step, bool) {
	if r.Done() {
		return Step{}, false
	}
	r.elapsed = 0
	if r.pos+1 < len(r.order) {
		r.pos++
		return r.Current(), true
	}
	if !r.pl.Loop {
		r.done = true
		return Step{}, false
	}
	r.pos = 0
	r.shuffle()
	return r.Current(), true
}
