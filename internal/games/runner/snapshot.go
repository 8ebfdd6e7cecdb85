package runner

import "math"

// Snapshot is a flat digest of a session used to compare runs.
// Entity data is flattened to float64s in a fixed order.
type Snapshot struct {
	Frames    int
	Score     int
	Coins     int
	Distance  float64
	Speed     float64
	Lane      int
	PlayerY   float64
	Weather   int
	TimeOfDay float64
	GameOver  bool

	// Each obstacle is 4 values: Variant, X, Y, Z
	ObstacleData []float64
	// Each coin is 3 values: X, Y, Z
	CoinData []float64
	// Each power-up is 4 values: Kind, X, Y, Z
	PowerUpData []float64
	// Each effect is 2 values: Kind, ExpiresAt in nanoseconds
	EffectData []float64
	// Z of each live segment, oldest first
	SegmentData []float64
}

// Snapshot returns the current session state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	w := s.world

	obstacles := make([]float64, 0, len(w.Obstacles)*4)
	for _, o := range w.Obstacles {
		obstacles = append(obstacles, float64(o.Variant), o.Pos.X(), o.Pos.Y(), o.Pos.Z())
	}
	coins := make([]float64, 0, len(w.Coins)*3)
	for _, c := range w.Coins {
		coins = append(coins, c.Pos.X(), c.Pos.Y(), c.Pos.Z())
	}
	powerUps := make([]float64, 0, len(w.PowerUps)*4)
	for _, p := range w.PowerUps {
		powerUps = append(powerUps, float64(p.Kind), p.Pos.X(), p.Pos.Y(), p.Pos.Z())
	}
	effects := make([]float64, 0, len(s.powerups.effects)*2)
	for _, e := range s.powerups.effects {
		effects = append(effects, float64(e.Kind), float64(e.ExpiresAt))
	}
	segments := make([]float64, 0, s.track.Len())
	for _, seg := range s.track.segments {
		segments = append(segments, seg.Z)
	}

	snap := Snapshot{
		Frames:       s.frames,
		Score:        s.score,
		Coins:        s.coins,
		Distance:     s.distance,
		Speed:        s.params.Speed,
		Weather:      int(s.weather.Mode()),
		TimeOfDay:    s.weather.TimeOfDay(),
		GameOver:     s.gameOver,
		ObstacleData: obstacles,
		CoinData:     coins,
		PowerUpData:  powerUps,
		EffectData:   effects,
		SegmentData:  segments,
	}
	if s.player != nil {
		snap.Lane = s.player.Lane
		snap.PlayerY = s.player.Pos.Y()
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Frames)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Coins)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lane+1)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Weather) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Distance)
	h = h*31 + math.Float64bits(snap.Speed)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + math.Float64bits(snap.TimeOfDay)
	if snap.GameOver {
		h = h*31 + 1
	}

	for _, data := range [][]float64{
		snap.ObstacleData,
		snap.CoinData,
		snap.PowerUpData,
		snap.EffectData,
		snap.SegmentData,
	} {
		h = h*31 + uint64(len(data)) //#nosec G115 -- hash computation
		for _, v := range data {
			h = h*31 + math.Float64bits(v)
		}
	}

	return h
}
