package runner

import (
	"math/rand"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// PathSegment is a fixed-length slab of track. Z is the segment's position
// on the scroll axis; it grows as the segment approaches the camera.
type PathSegment struct {
	ID int
	Z  float64
}

// Decorator places themed side decorations when the track grows.
type Decorator interface {
	Decorate(kind DecorationKind, x, z float64)
}

// Track keeps a rolling window of contiguous path segments, oldest first.
type Track struct {
	cfg       config.TrackConfig
	rng       *rand.Rand
	decor     Decorator
	theme     string
	segments  []PathSegment
	nextID    int
	generated int
}

// NewTrack seeds the window with contiguous segments ahead of the player.
func NewTrack(cfg config.TrackConfig, theme string, rng *rand.Rand, decor Decorator) *Track {
	t := &Track{
		cfg:      cfg,
		rng:      rng,
		decor:    decor,
		theme:    theme,
		segments: make([]PathSegment, 0, cfg.Window+1),
	}
	for i := 1; i <= cfg.Window; i++ {
		t.append(-float64(i) * cfg.SegmentLength)
	}
	return t
}

func (t *Track) append(z float64) {
	t.nextID++
	t.generated++
	t.segments = append(t.segments, PathSegment{ID: t.nextID, Z: z})
}

// Transport moves every segment toward the camera.
func (t *Track) Transport(speed float64) {
	for i := range t.segments {
		t.segments[i].Z += speed
	}
}

// AdvanceIfNeeded appends a segment behind the newest one once the newest
// has crossed the spawn threshold, then evicts the oldest segment while the
// window is over capacity. Returns true when a segment was added.
func (t *Track) AdvanceIfNeeded() bool {
	if len(t.segments) == 0 {
		t.append(-t.cfg.SegmentLength)
		return true
	}
	newest := t.segments[len(t.segments)-1]
	if newest.Z <= t.cfg.SpawnThreshold {
		return false
	}

	z := newest.Z - t.cfg.SegmentLength
	t.append(z)
	for len(t.segments) > t.cfg.Window {
		t.segments = append(t.segments[:0], t.segments[1:]...)
	}

	if t.decor != nil && t.rng.Float64() < t.cfg.DecorationChance {
		spread := t.cfg.DecorationSpread
		x := t.rng.Float64()*2*spread - spread
		t.decor.Decorate(ThemeDecoration(t.theme), x, z)
	}
	return true
}

// Segments returns a copy of the live segments, oldest first.
func (t *Track) Segments() []PathSegment {
	out := make([]PathSegment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Len returns the number of live segments.
func (t *Track) Len() int {
	return len(t.segments)
}

// Generated returns how many segments have been created in total.
func (t *Track) Generated() int {
	return t.generated
}

// Clear drops every segment.
func (t *Track) Clear() {
	t.segments = t.segments[:0]
}
