package runner

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// GameState is the snapshot collaborators poll once per frame.
type GameState struct {
	Score          int
	Distance       float64
	Speed          float64
	CoinMultiplier int
	Coins          int
	IsGameOver     bool
	IsPaused       bool
}

// Frame is the result of one Step.
type Frame struct {
	State     GameState
	Events    []Event
	Active    []PowerUpKind
	Weather   Weather
	TimeOfDay float64
	Lighting  Lighting
	Fog       float64
	FogNear   float64
	CameraX   float64
}

// Session is one run of the simulation. It owns every entity collection,
// the random source and the simulation clock. A session is single-threaded:
// Step must not be called concurrently.
type Session struct {
	id  uuid.UUID
	cfg config.RunnerConfig
	rng *rand.Rand

	clock    *Clock
	player   *Player
	track    *Track
	scenery  *Scenery
	world    *World
	spawner  *Spawner
	powerups *PowerUpMachine
	weather  *WeatherSim
	fx       *Effects

	params   Params
	score    int
	distance float64
	coins    int
	frames   int
	fogNear  float64
	cameraX  float64

	gameOver bool
	paused   bool
	closed   bool

	events []Event
}

// NewSession builds a session from a validated configuration. The same
// seed, configuration and inputs always produce the same run.
func NewSession(cfg config.RunnerConfig, seed int64, frame time.Duration) *Session {
	rng := rand.New(rand.NewSource(seed))
	clock := NewClock(frame)

	s := &Session{
		id:       uuid.New(),
		cfg:      cfg,
		rng:      rng,
		clock:    clock,
		player:   NewPlayer(cfg.Physics, cfg.Lanes, cfg.Player),
		world:    NewWorld(cfg.Spawn),
		spawner:  NewSpawner(cfg.Spawn, rng),
		powerups: NewPowerUpMachine(cfg.PowerUps),
		fx:       NewEffects(rng),
		fogNear:  1,
		events:   make([]Event, 0, 8),
	}
	s.scenery = NewScenery(cfg.Scenery, rng)
	s.track = NewTrack(cfg.Track, cfg.Theme, rng, s.scenery)
	s.weather = NewWeatherSim(cfg.Weather, cfg.Theme, rng, clock.Now())
	s.params = Params{
		Speed:          cfg.Speed.Initial,
		CoinMultiplier: 1,
	}
	return s
}

// Step applies the frame's input events and, unless paused, over or closed,
// advances the simulation by one frame.
func (s *Session) Step(in core.InputFrame) Frame {
	s.events = s.events[:0]
	if s.closed || s.gameOver {
		return s.frame()
	}

	for _, a := range in.Events() {
		s.handle(a)
	}

	if !s.paused {
		s.advance()
	}
	return s.frame()
}

func (s *Session) handle(a core.Action) {
	switch a {
	case core.ActionPause:
		s.paused = !s.paused
		if s.paused {
			s.emit(Event{Kind: EventPaused})
		} else {
			s.emit(Event{Kind: EventResumed})
		}
	case core.ActionLeft:
		if s.player.MoveLeft(s.paused) {
			s.emit(Event{Kind: EventLaneChange, Lane: s.player.Lane})
		}
	case core.ActionRight:
		if s.player.MoveRight(s.paused) {
			s.emit(Event{Kind: EventLaneChange, Lane: s.player.Lane})
		}
	case core.ActionJump:
		switch s.player.Jump(s.paused, s.params.DoubleJump) {
		case JumpSingle:
			s.dust()
			s.emit(Event{Kind: EventJump})
		case JumpDouble:
			s.dust()
			s.emit(Event{Kind: EventDoubleJump})
		}
	}
}

func (s *Session) dust() {
	feet := s.player.Pos.Sub(core.V3(0, 0.5, 0))
	s.fx.Puff(TransientDust, feet, dustParticles, s.clock.Now(), dustLifetime)
}

// advance runs one unpaused frame.
func (s *Session) advance() {
	now := s.clock.Tick()
	ms := s.clock.Millis()

	// Environment and timed effects.
	if s.weather.Step(now, s.player.Pos, s.fx) {
		s.emit(Event{Kind: EventWeatherChanged, Weather: s.weather.Mode()})
	}
	for _, kind := range s.powerups.Expire(now, &s.params) {
		s.emit(Event{Kind: EventPowerUpExpired, PowerUp: kind})
	}

	s.player.Animate(ms)

	if s.params.MagnetRadius > 0 {
		s.world.Attract(s.player.Pos, s.params.MagnetRadius, s.cfg.PowerUps.MagnetPull)
	}

	s.world.Animate(ms)

	if s.collide(now) {
		return
	}

	s.player.DampTilt()
	s.cameraX = s.player.CameraX()

	if s.params.Speed < s.cfg.Speed.Max {
		s.params.Speed = math.Min(s.params.Speed+s.cfg.Speed.Acceleration, s.cfg.Speed.Max)
	}

	speed := s.params.Speed
	s.track.Transport(speed)
	s.world.Transport(speed)
	s.scenery.Transport(speed)
	s.fx.Update(now)
	if s.params.SpeedBoost {
		s.fogNear = 1 - math.Sin(ms*0.01)*0.5
	} else {
		s.fogNear = 1
	}

	s.track.AdvanceIfNeeded()

	s.player.Integrate()

	if s.rng.Float64() < s.cfg.Spawn.PowerUpChance {
		s.world.PowerUps = append(s.world.PowerUps, s.spawner.SpawnPowerUp())
	}

	if s.score%s.cfg.Speed.MilestoneEvery == 0 {
		s.world.Obstacles = append(s.world.Obstacles, s.spawner.SpawnObstacle())
		s.world.Coins = append(s.world.Coins, s.spawner.SpawnCoin())
		if s.params.Speed < s.cfg.Speed.Max {
			s.params.Speed = math.Min(s.params.Speed+s.cfg.Speed.MilestoneBonus, s.cfg.Speed.Max)
		}
	}

	s.score++
	s.distance += s.params.Speed
	s.frames++
}

// collide resolves this frame's contacts. Returns true if the run ended.
func (s *Session) collide(now time.Duration) bool {
	out := Detect(s.player.Box(), s.world, s.params.ObstaclesIgnored())

	for _, pos := range out.Coins {
		points := s.cfg.PowerUps.CoinValue * s.params.CoinMultiplier
		s.score += points
		s.coins++
		s.fx.Burst(pos, coinBurstSize)
		s.emit(Event{Kind: EventCoin, Points: points})
	}

	if out.Crashed {
		s.gameOver = true
		s.emit(Event{Kind: EventGameOver, Score: s.score})
		return true
	}

	ring := time.Duration(s.cfg.PowerUps.RingMs) * time.Millisecond
	for _, kind := range out.PowerUps {
		s.powerups.Activate(kind, now, &s.params)
		s.fx.Spawn(TransientRing, s.player.Pos, now, ring)
		s.emit(Event{Kind: EventPowerUp, PowerUp: kind})
	}
	return false
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

func (s *Session) frame() Frame {
	events := make([]Event, len(s.events))
	copy(events, s.events)
	return Frame{
		State:     s.State(),
		Events:    events,
		Active:    s.powerups.Active(),
		Weather:   s.weather.Mode(),
		TimeOfDay: s.weather.TimeOfDay(),
		Lighting:  s.weather.Lighting(),
		Fog:       s.weather.Fog(),
		FogNear:   s.fogNear,
		CameraX:   s.cameraX,
	}
}

// State returns the current snapshot.
func (s *Session) State() GameState {
	return GameState{
		Score:          s.score,
		Distance:       s.distance,
		Speed:          s.params.Speed,
		CoinMultiplier: s.params.CoinMultiplier,
		Coins:          s.coins,
		IsGameOver:     s.gameOver,
		IsPaused:       s.paused,
	}
}

// Close tears the session down. Pending power-up deadlines and the weather
// deadline are cancelled and every collection is dropped. Stepping a closed
// session returns its final state without simulating.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.powerups.Cancel()
	s.weather.Cancel()
	s.world.Clear()
	s.track.Clear()
	s.scenery.Clear()
	s.fx.Clear()
	s.player = nil
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	return s.closed
}

// Summary describes the run for score storage.
func (s *Session) Summary() core.RunSummary {
	return core.RunSummary{
		RunID:    s.id.String(),
		Track:    s.cfg.Theme,
		Score:    s.score,
		Distance: s.distance,
		Coins:    s.coins,
		Weather:  s.weather.Mode().String(),
		Frames:   s.frames,
	}
}

// ID returns the run identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Now returns the simulation clock time.
func (s *Session) Now() time.Duration { return s.clock.Now() }

// Player returns the player, or nil after Close.
func (s *Session) Player() *Player { return s.player }

// World returns the scrolling entities.
func (s *Session) World() *World { return s.world }

// Track returns the path segments.
func (s *Session) Track() *Track { return s.track }

// Scenery returns the roadside props.
func (s *Session) Scenery() *Scenery { return s.scenery }

// Effects returns the transient visuals.
func (s *Session) Effects() *Effects { return s.fx }

// Weather returns the weather simulator.
func (s *Session) Weather() *WeatherSim { return s.weather }

// Params returns the current effect-driven parameters.
func (s *Session) Params() Params { return s.params }

// PowerUps returns the power-up state machine.
func (s *Session) PowerUps() *PowerUpMachine { return s.powerups }
