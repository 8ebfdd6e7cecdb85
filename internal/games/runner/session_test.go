package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// quietConfig disables random power-up spawns so tests control every pickup.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.PowerUpChance = 0
	return cfg
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func hasEvent(f Frame, kind EventKind) (Event, bool) {
	for _, e := range f.Events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

// coinOnPlayer places a coin inside the player's reach.
func coinOnPlayer(s *Session) {
	p := s.Player().Pos
	s.World().Coins = append(s.World().Coins, Coin{ID: 999, Pos: core.V3(p.X(), 2, p.Z())})
}

// obstacleOnPlayer places a box obstacle on top of the player.
func obstacleOnPlayer(s *Session) {
	p := s.Player().Pos
	s.World().Obstacles = append(s.World().Obstacles, Obstacle{ID: 998, Variant: VariantBox, Pos: core.V3(p.X(), 1, p.Z())})
}

func TestSessionCoinPoints(t *testing.T) {
	s := NewSession(quietConfig(), 1, testFrame)
	s.Step(input())

	coinOnPlayer(s)
	before := s.State().Score
	f := s.Step(input())
	e, ok := hasEvent(f, EventCoin)
	if !ok || e.Points != 100 {
		t.Fatalf("Expected a 100-point coin event, got %+v", f.Events)
	}
	if got := f.State.Score - before; got != 101 {
		t.Errorf("Score grew by %d, want 100 + 1", got)
	}

	s.powerups.Activate(PowerUpMultiplier, s.Now(), &s.params)
	coinOnPlayer(s)
	f = s.Step(input())
	if e, ok := hasEvent(f, EventCoin); !ok || e.Points != 200 {
		t.Fatalf("Expected a 200-point coin with the multiplier, got %+v", f.Events)
	}

	// Run past the multiplier's expiry.
	for i := 0; i < 5*60+5; i++ {
		s.Step(input())
	}
	if s.State().CoinMultiplier != 1 {
		t.Fatalf("Multiplier should have expired, got %d", s.State().CoinMultiplier)
	}
	coins := s.State().Coins
	coinOnPlayer(s)
	f = s.Step(input())
	if e, ok := hasEvent(f, EventCoin); !ok || e.Points != 100 {
		t.Errorf("Expected 100 points after the multiplier expired, got %+v", f.Events)
	}
	if f.State.Coins < coins+1 {
		t.Errorf("Coins = %d, want at least %d", f.State.Coins, coins+1)
	}
}

func TestSessionObstacleEndsRun(t *testing.T) {
	s := NewSession(quietConfig(), 1, testFrame)
	s.Step(input())

	obstacleOnPlayer(s)
	f := s.Step(input())
	if !f.State.IsGameOver {
		t.Fatal("Obstacle hit should end the run")
	}
	if _, ok := hasEvent(f, EventGameOver); !ok {
		t.Error("Expected a game over event")
	}

	// Terminal: nothing moves any more.
	final := f.State
	for i := 0; i < 10; i++ {
		f = s.Step(input(core.ActionLeft, core.ActionJump))
	}
	if f.State != final {
		t.Errorf("State changed after game over: %+v -> %+v", final, f.State)
	}
	if len(f.Events) != 0 {
		t.Errorf("No events expected after game over, got %+v", f.Events)
	}
}

func TestSessionProtectionPreventsGameOver(t *testing.T) {
	for _, kind := range []PowerUpKind{PowerUpShield, PowerUpInvincible} {
		t.Run(kind.String(), func(t *testing.T) {
			s := NewSession(quietConfig(), 1, testFrame)
			s.Step(input())
			s.powerups.Activate(kind, s.Now(), &s.params)

			obstacleOnPlayer(s)
			for i := 0; i < 10; i++ {
				if f := s.Step(input()); f.State.IsGameOver {
					t.Fatalf("Frame %d: %v should absorb the hit", i, kind)
				}
			}
			found := false
			for _, o := range s.World().Obstacles {
				if o.ID == 998 {
					found = true
				}
			}
			if !found {
				t.Error("Absorbed obstacles must not be removed")
			}
		})
	}
}

func TestSessionPowerUpPickup(t *testing.T) {
	s := NewSession(quietConfig(), 1, testFrame)
	s.Step(input())

	p := s.Player().Pos
	s.World().PowerUps = append(s.World().PowerUps, PowerUp{ID: 997, Kind: PowerUpDoubleJump, Pos: core.V3(p.X(), 2, p.Z())})
	f := s.Step(input())

	if e, ok := hasEvent(f, EventPowerUp); !ok || e.PowerUp != PowerUpDoubleJump {
		t.Fatalf("Expected double jump pickup, got %+v", f.Events)
	}
	if len(f.Active) != 1 || f.Active[0] != PowerUpDoubleJump {
		t.Errorf("Active = %v", f.Active)
	}
	rings := 0
	for _, tr := range s.Effects().Transients() {
		if tr.Kind == TransientRing {
			rings++
		}
	}
	if rings != 1 {
		t.Errorf("Expected one pickup ring, got %d", rings)
	}

	s.Step(input(core.ActionJump))
	f = s.Step(input(core.ActionJump))
	if _, ok := hasEvent(f, EventDoubleJump); !ok {
		t.Errorf("Double jump should be granted, events %+v", f.Events)
	}
}

func TestSessionMonotonicScore(t *testing.T) {
	s := NewSession(config.DefaultRunnerConfig(), 77, testFrame)
	prev := s.State()
	for i := 0; i < 3000; i++ {
		st := s.Step(input()).State
		if st.IsGameOver {
			t.Fatalf("Centre lane should be safe, run ended at frame %d", i)
		}
		if st.Score <= prev.Score || st.Distance <= prev.Distance {
			t.Fatalf("Frame %d: score/distance did not grow: %+v -> %+v", i, prev, st)
		}
		prev = st
	}
}

func TestSessionPauseFreezes(t *testing.T) {
	s := NewSession(quietConfig(), 3, testFrame)
	for i := 0; i < 120; i++ {
		s.Step(input())
	}

	f := s.Step(input(core.ActionPause))
	if !f.State.IsPaused {
		t.Fatal("Expected paused")
	}
	if _, ok := hasEvent(f, EventPaused); !ok {
		t.Error("Expected a pause event")
	}

	frozen := s.Snapshot()
	now := s.Now()
	for i := 0; i < 600; i++ {
		f = s.Step(input(core.ActionLeft, core.ActionJump))
	}
	after := s.Snapshot()
	if frozen.Hash() != after.Hash() {
		t.Error("Paused session changed state")
	}
	if s.Now() != now {
		t.Errorf("Clock advanced while paused: %v -> %v", now, s.Now())
	}
	if s.Player().Lane != 0 {
		t.Error("Lane change accepted while paused")
	}

	f = s.Step(input(core.ActionPause))
	if f.State.IsPaused {
		t.Fatal("Expected resumed")
	}
	if f.State.Score <= frozen.Score {
		t.Error("Simulation should resume on the unpausing frame")
	}
}

func TestSessionPausePreservesRemainingTime(t *testing.T) {
	s := NewSession(quietConfig(), 3, testFrame)
	s.Step(input())
	s.powerups.Activate(PowerUpShield, s.Now(), &s.params)

	for i := 0; i < 60; i++ {
		s.Step(input())
	}
	remaining := s.PowerUps().Remaining(PowerUpShield, s.Now())
	if remaining <= 0 || remaining >= 5*time.Second {
		t.Fatalf("Unexpected remaining time %v", remaining)
	}

	s.Step(input(core.ActionPause))
	// The pausing frame does not tick the clock.
	if got := s.PowerUps().Remaining(PowerUpShield, s.Now()); got != remaining {
		t.Fatalf("Remaining changed on pause: %v -> %v", remaining, got)
	}
	for i := 0; i < 1000; i++ {
		s.Step(input())
	}
	if got := s.PowerUps().Remaining(PowerUpShield, s.Now()); got != remaining {
		t.Errorf("Remaining changed while paused: %v -> %v", remaining, got)
	}
	if !s.Params().Shielded {
		t.Fatal("Shield expired during pause")
	}

	s.Step(input(core.ActionPause))
	frames := 0
	for s.Params().Shielded && frames < 1000 {
		s.Step(input())
		frames++
	}
	// Resuming frame plus the frames stepped here cover exactly the remainder.
	elapsed := time.Duration(frames+1) * testFrame
	if elapsed < remaining || elapsed-remaining >= testFrame {
		t.Errorf("Shield lasted %v after resume, want %v", elapsed, remaining)
	}
}

func TestSessionSpeedProgression(t *testing.T) {
	cfg := quietConfig()
	cfg.Speed.MilestoneBonus = 0
	s := NewSession(cfg, 5, testFrame)

	for i := 0; i < 10000; i++ {
		s.Step(input())
	}
	speed := s.State().Speed
	if !almostEqual(speed, 0.3) {
		t.Errorf("Speed after 10000 frames = %f, want 0.3", speed)
	}
	if speed >= cfg.Speed.Max {
		t.Errorf("Speed %f should still be below max", speed)
	}
}

func TestSessionSpeedNeverExceedsMax(t *testing.T) {
	cfg := quietConfig()
	cfg.Speed.Acceleration = 0.001
	s := NewSession(cfg, 5, testFrame)

	for i := 0; i < 2000; i++ {
		st := s.Step(input()).State
		if st.Speed > cfg.Speed.Max || st.Speed < cfg.Speed.Initial {
			t.Fatalf("Frame %d: speed %f outside [%f, %f]", i, st.Speed, cfg.Speed.Initial, cfg.Speed.Max)
		}
	}
	if s.State().Speed != cfg.Speed.Max {
		t.Errorf("Speed should settle at max, got %f", s.State().Speed)
	}
}

func TestSessionMilestoneSpawns(t *testing.T) {
	s := NewSession(quietConfig(), 5, testFrame)

	s.Step(input())
	if len(s.World().Obstacles) != 1 || len(s.World().Coins) != 1 {
		t.Fatalf("Score 0 should spawn one obstacle and one coin, got %d/%d",
			len(s.World().Obstacles), len(s.World().Coins))
	}
	if !almostEqual(s.State().Speed, 0.2+0.00001+0.01) {
		t.Errorf("Speed after first frame = %f", s.State().Speed)
	}
}

func TestSessionLaneEvents(t *testing.T) {
	s := NewSession(quietConfig(), 5, testFrame)

	f := s.Step(input(core.ActionRight, core.ActionRight))
	changes := 0
	for _, e := range f.Events {
		if e.Kind == EventLaneChange {
			changes++
			if e.Lane != 1 {
				t.Errorf("Lane event reports %d, want 1", e.Lane)
			}
		}
	}
	if changes != 1 {
		t.Errorf("Expected one lane change, got %d", changes)
	}
	if s.Player().Lane != 1 {
		t.Errorf("Lane = %d, want 1", s.Player().Lane)
	}
}

func TestSessionTrackWindow(t *testing.T) {
	s := NewSession(config.DefaultRunnerConfig(), 8, testFrame)
	for i := 0; i < 5000; i++ {
		s.Step(input())
		checkTrack(t, s.Track().Segments(), 50)
	}
}

func TestSessionClose(t *testing.T) {
	s := NewSession(quietConfig(), 9, testFrame)
	for i := 0; i < 30; i++ {
		s.Step(input())
	}
	s.powerups.Activate(PowerUpMagnet, s.Now(), &s.params)

	s.Close()

	if !s.Closed() {
		t.Fatal("Expected closed")
	}
	if len(s.PowerUps().Active()) != 0 {
		t.Error("Close should cancel pending power-up timers")
	}
	if s.Weather().NextChange(s.Now()) != 0 {
		t.Error("Close should cancel the weather deadline")
	}
	if s.World().Count() != 0 || s.Track().Len() != 0 || len(s.Scenery().Props()) != 0 {
		t.Error("Close should drop every collection")
	}
	if s.Player() != nil {
		t.Error("Close should release the player")
	}

	before := s.State()
	f := s.Step(input(core.ActionJump, core.ActionPause))
	if f.State != before || len(f.Events) != 0 {
		t.Errorf("Stepping a closed session must be a no-op: %+v", f)
	}
	s.Close()
}

func TestSessionDeterminism(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.PowerUpChance = 0.01
	cfg.Weather.Volatility = 0.01

	inputs := make([]core.InputFrame, 3000)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%97 == 0:
			inputs[i].Set(core.ActionRight)
		case i%89 == 0:
			inputs[i].Set(core.ActionLeft)
		case i%31 == 0:
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() Snapshot {
		s := NewSession(cfg, 424242, testFrame)
		for _, in := range inputs {
			if s.Step(in).State.IsGameOver {
				break
			}
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Score != b.Score || a.Frames != b.Frames {
		t.Errorf("Determinism failed: %d/%d vs %d/%d", a.Score, a.Frames, b.Score, b.Frames)
	}
}

func TestSessionFogPulseWhileBoosted(t *testing.T) {
	s := NewSession(quietConfig(), 1, testFrame)
	f := s.Step(input())
	if f.FogNear != 1 {
		t.Errorf("FogNear = %f without boost, want 1", f.FogNear)
	}

	s.powerups.Activate(PowerUpSpeed, s.Now(), &s.params)
	for i := 0; i < 10; i++ {
		f = s.Step(input())
		if f.FogNear < 0.5 || f.FogNear > 1.5 {
			t.Fatalf("FogNear %f outside the pulse range", f.FogNear)
		}
	}
}

func TestGameResetReplacesSession(t *testing.T) {
	g := New(config.ThemeSnow)
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	g.Reset(rt)
	first := g.Session()
	for i := 0; i < 10; i++ {
		g.Step(input())
	}

	g.Reset(rt)
	if !first.Closed() {
		t.Error("Reset should close the previous session")
	}
	if g.Session() == first {
		t.Fatal("Reset should build a new session")
	}
	if g.State().Score != 0 {
		t.Errorf("Fresh session score = %d", g.State().Score)
	}
	if g.Summary().Track != config.ThemeSnow {
		t.Errorf("Summary track = %q", g.Summary().Track)
	}
}

func TestGameIDs(t *testing.T) {
	for _, theme := range Themes() {
		g := New(theme)
		if g.ID() != theme {
			t.Errorf("ID = %q, want %q", g.ID(), theme)
		}
		if !strings.HasPrefix(g.Title(), "Lane Runner: ") {
			t.Errorf("Unexpected title %q", g.Title())
		}
	}
}

func TestGameTitleWithoutTheme(t *testing.T) {
	if got := New("").Title(); got != "Lane Runner" {
		t.Errorf("Title = %q", got)
	}
}

func TestLoadConfigPresetAndFallback(t *testing.T) {
	defer SetConfigPath("")
	defer SetDifficultyPreset("")

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	if err := os.WriteFile(good, []byte("theme: jungle\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(good)
	SetDifficultyPreset("hard")
	cfg := LoadConfig(config.ThemeSnow)
	if cfg.Theme != config.ThemeSnow || !almostEqual(cfg.Speed.Initial, 0.3) {
		t.Errorf("Expected hard snow config, got theme %q initial %f", cfg.Theme, cfg.Speed.Initial)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Preset config should validate: %v", err)
	}

	if err := LoadConfig("lava").Validate(); err != nil {
		t.Errorf("Unknown theme should fall back to a valid config: %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("speed:\n  initial: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(bad)
	cfg = LoadConfig(config.ThemeDesert)
	if cfg.Theme != config.ThemeDesert || cfg.Speed.Initial <= 0 {
		t.Errorf("Invalid file should fall back to defaults, got theme %q initial %f", cfg.Theme, cfg.Speed.Initial)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Fallback config should validate: %v", err)
	}
}

func TestGameRender(t *testing.T) {
	g := New(config.ThemeJungle)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 4})
	for i := 0; i < 30; i++ {
		g.Step(input())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score:") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(1), "next weather 15s") {
		t.Errorf("HUD missing weather countdown: %q", screen.Row(1))
	}
	if !strings.ContainsRune(screen.String(), PlayerChar) {
		t.Error("Player not drawn")
	}

	g.Step(input(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("Pause overlay missing")
	}
}

func TestViewCullsOutsideCamera(t *testing.T) {
	tests := []struct {
		name  string
		camX  float64
		pos   core.Vec3
		drawn bool
	}{
		{"centre", 0, core.V3(0, 1, 0), true},
		{"far lateral", 0, core.V3(30, 1, 0), false},
		{"camera follows", 20, core.V3(30, 1, 0), true},
		{"behind the camera", 0, core.V3(0, 1, viewNearZ+1), false},
		{"beyond spawn depth", 0, core.V3(0, 1, -60), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			screen := core.NewScreen(80, 24)
			v := newView(screen, -50, tc.camX)
			v.plot(screen, tc.pos, CoinChar, core.ColorYellow)
			if got := strings.ContainsRune(screen.String(), CoinChar); got != tc.drawn {
				t.Errorf("drawn = %v, want %v", got, tc.drawn)
			}
		})
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := New(config.ThemeJungle)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 4})

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("Expected the window-too-small message")
	}
}

func TestSessionJumpDust(t *testing.T) {
	s := NewSession(quietConfig(), 4, testFrame)
	f := s.Step(input(core.ActionJump))
	if _, ok := hasEvent(f, EventJump); !ok {
		t.Fatalf("Expected a jump, got %+v", f.Events)
	}

	dust := 0
	for _, tr := range s.Effects().Transients() {
		if tr.Kind == TransientDust {
			dust++
		}
	}
	if dust != dustParticles {
		t.Errorf("Expected %d dust particles, got %d", dustParticles, dust)
	}
}
