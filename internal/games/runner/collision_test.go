package runner

import (
	"testing"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

func TestDetect(t *testing.T) {
	player := core.BoxFromBase(core.V3(0, 1, 0), core.V3(0.5, 1.3, 0.4))

	tests := []struct {
		name         string
		obstacles    []Obstacle
		coins        []Coin
		powerUps     []PowerUp
		protected    bool
		wantCrash    bool
		wantCoins    int
		wantPowerUps int
		coinsLeft    int
		obstLeft     int
	}{
		{
			name:      "coin in reach",
			coins:     []Coin{{ID: 1, Pos: core.V3(0, 2, 0)}},
			wantCoins: 1,
		},
		{
			name:      "coin in another lane",
			coins:     []Coin{{ID: 1, Pos: core.V3(2, 2, 0)}},
			coinsLeft: 1,
		},
		{
			name:         "power-up in reach",
			powerUps:     []PowerUp{{ID: 1, Kind: PowerUpMagnet, Pos: core.V3(0, 2, 0)}},
			wantPowerUps: 1,
		},
		{
			name:      "obstacle hit",
			obstacles: []Obstacle{{ID: 1, Variant: VariantBox, Pos: core.V3(0, 1, 0)}},
			wantCrash: true,
			obstLeft:  1,
		},
		{
			name:      "obstacle ignored while protected",
			obstacles: []Obstacle{{ID: 1, Variant: VariantBox, Pos: core.V3(0, 1, 0)}},
			protected: true,
			obstLeft:  1,
		},
		{
			name:      "obstacle ahead",
			obstacles: []Obstacle{{ID: 1, Variant: VariantSpike, Pos: core.V3(0, 1, -5)}},
			obstLeft:  1,
		},
		{
			name:      "floating obstacle over a grounded player",
			obstacles: []Obstacle{{ID: 1, Variant: VariantFloating, Pos: core.V3(0, 3.1, 0)}},
			obstLeft:  1,
		},
		{
			name:      "everything at once",
			obstacles: []Obstacle{{ID: 1, Variant: VariantBox, Pos: core.V3(0, 1, 0)}},
			coins: []Coin{
				{ID: 2, Pos: core.V3(0, 2, 0.1)},
				{ID: 3, Pos: core.V3(0.1, 2, -0.1)},
			},
			powerUps:     []PowerUp{{ID: 4, Kind: PowerUpShield, Pos: core.V3(0, 2, 0)}},
			wantCrash:    true,
			wantCoins:    2,
			wantPowerUps: 1,
			obstLeft:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(config.DefaultRunnerConfig().Spawn)
			w.Obstacles = append(w.Obstacles, tt.obstacles...)
			w.Coins = append(w.Coins, tt.coins...)
			w.PowerUps = append(w.PowerUps, tt.powerUps...)

			out := Detect(player, w, tt.protected)

			if out.Crashed != tt.wantCrash {
				t.Errorf("Crashed = %v, want %v", out.Crashed, tt.wantCrash)
			}
			if len(out.Coins) != tt.wantCoins {
				t.Errorf("Collected %d coins, want %d", len(out.Coins), tt.wantCoins)
			}
			if len(out.PowerUps) != tt.wantPowerUps {
				t.Errorf("Collected %d power-ups, want %d", len(out.PowerUps), tt.wantPowerUps)
			}
			if len(w.Coins) != tt.coinsLeft {
				t.Errorf("%d coins left, want %d", len(w.Coins), tt.coinsLeft)
			}
			if len(w.PowerUps) != 0 && tt.wantPowerUps > 0 {
				t.Errorf("Collected power-ups should be removed")
			}
			if len(w.Obstacles) != tt.obstLeft {
				t.Errorf("%d obstacles left, want %d", len(w.Obstacles), tt.obstLeft)
			}
		})
	}
}
