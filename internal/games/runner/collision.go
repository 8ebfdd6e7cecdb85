package runner

import "github.com/vovakirdan/lane-runner/internal/core"

// Outcome lists what the player touched during one frame.
type Outcome struct {
	Coins    []core.Vec3   // Positions of collected coins
	PowerUps []PowerUpKind // Kinds picked up, in collection order
	Crashed  bool          // An obstacle was hit while unprotected
}

// Detect tests the player box against every live entity. Collected coins
// and power-ups are removed from the world; obstacles never are. The
// obstacle test is skipped entirely while protected.
func Detect(player core.Box, w *World, protected bool) Outcome {
	var out Outcome

	for i := 0; i < len(w.Coins); {
		c := w.Coins[i]
		if player.Intersects(c.Box()) {
			out.Coins = append(out.Coins, c.Pos)
			w.RemoveCoin(i)
			continue
		}
		i++
	}

	if !protected {
		for _, o := range w.Obstacles {
			if player.Intersects(o.Box()) {
				out.Crashed = true
				break
			}
		}
	}

	for i := 0; i < len(w.PowerUps); {
		p := w.PowerUps[i]
		if player.Intersects(p.Box()) {
			out.PowerUps = append(out.PowerUps, p.Kind)
			w.RemovePowerUp(i)
			continue
		}
		i++
	}

	return out
}
