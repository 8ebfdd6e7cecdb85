package runner

import (
	"fmt"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// PowerUpKind identifies a timed effect and the pickup that grants it.
type PowerUpKind int

const (
	PowerUpSpeed        PowerUpKind = iota // Speed x1.5
	PowerUpInvincible                      // Ignore obstacles, highlighted
	PowerUpMagnet                          // Attract nearby coins
	PowerUpShield                          // Ignore obstacles, visible shell
	PowerUpTimeSlowdown                    // Halve speed
	PowerUpMultiplier                      // Coins worth double
	PowerUpDoubleJump                      // Allow one mid-air jump
	powerUpKindCount                       // Sentinel for counting kinds
)

// PowerUpKinds lists every kind in declaration order.
func PowerUpKinds() []PowerUpKind {
	kinds := make([]PowerUpKind, powerUpKindCount)
	for i := range kinds {
		kinds[i] = PowerUpKind(i)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k PowerUpKind) Valid() bool {
	return k >= 0 && k < powerUpKindCount
}

func (k PowerUpKind) mustValid() {
	if !k.Valid() {
		panic(fmt.Sprintf("runner: unknown power-up kind %d", int(k)))
	}
}

// String returns the name of the kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpSpeed:
		return "speed"
	case PowerUpInvincible:
		return "invincible"
	case PowerUpMagnet:
		return "magnet"
	case PowerUpShield:
		return "shield"
	case PowerUpTimeSlowdown:
		return "timeSlowdown"
	case PowerUpMultiplier:
		return "multiplier"
	case PowerUpDoubleJump:
		return "doubleJump"
	default:
		return "?"
	}
}

// Glyph returns the display character for a power-up pickup.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpSpeed:
		return '»'
	case PowerUpInvincible:
		return '★'
	case PowerUpMagnet:
		return 'U'
	case PowerUpShield:
		return 'O'
	case PowerUpTimeSlowdown:
		return '~'
	case PowerUpMultiplier:
		return 'x'
	case PowerUpDoubleJump:
		return '^'
	default:
		return '?'
	}
}

// Color returns the pickup color.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerUpSpeed:
		return core.ColorBrightGreen
	case PowerUpInvincible:
		return core.ColorBrightMagenta
	case PowerUpMagnet:
		return core.ColorBrightCyan
	case PowerUpShield:
		return core.ColorBrightBlue
	case PowerUpTimeSlowdown:
		return core.ColorMagenta
	case PowerUpMultiplier:
		return core.ColorOrange
	case PowerUpDoubleJump:
		return core.ColorBrightRed
	default:
		return core.ColorDefault
	}
}

// ActiveEffect is a live timed effect. At most one exists per kind.
type ActiveEffect struct {
	Kind      PowerUpKind
	ExpiresAt time.Duration // Simulation-clock time
}

// Params are the global simulation parameters the effects mutate and restore.
type Params struct {
	Speed           float64
	CoinMultiplier  int
	SpeedBoost      bool
	Invulnerable    bool
	Highlight       bool // Player drawn highlighted while invincible
	Shielded        bool
	ShieldShell     bool // Shell drawn around the player
	MagnetRadius    float64
	DoubleJump      bool
	Slowed          bool
	SlowdownRestore float64 // Speed to restore when the slowdown ends
}

// ObstaclesIgnored reports whether obstacle collisions are currently bypassed.
func (p *Params) ObstaclesIgnored() bool {
	return p.Invulnerable || p.Shielded
}

// PowerUpMachine tracks active effects and their expiry deadlines.
type PowerUpMachine struct {
	cfg      config.PowerUpsConfig
	duration time.Duration
	effects  []ActiveEffect
}

// NewPowerUpMachine creates an empty machine.
func NewPowerUpMachine(cfg config.PowerUpsConfig) *PowerUpMachine {
	return &PowerUpMachine{
		cfg:      cfg,
		duration: time.Duration(cfg.DurationMs) * time.Millisecond,
		effects:  make([]ActiveEffect, 0, powerUpKindCount),
	}
}

// Activate starts an effect at time now. A kind that is already active only
// has its expiry reset to now+duration: the immediate effect is not applied
// twice and no second timer is created. Returns true for a fresh activation.
func (m *PowerUpMachine) Activate(kind PowerUpKind, now time.Duration, p *Params) bool {
	kind.mustValid()

	for i := range m.effects {
		if m.effects[i].Kind == kind {
			m.effects[i].ExpiresAt = now + m.duration
			return false
		}
	}

	m.apply(kind, p)
	m.effects = append(m.effects, ActiveEffect{Kind: kind, ExpiresAt: now + m.duration})
	return true
}

// Expire restores and removes every effect whose deadline has been reached.
// Expired kinds are returned in activation order.
func (m *PowerUpMachine) Expire(now time.Duration, p *Params) []PowerUpKind {
	var expired []PowerUpKind
	active := m.effects[:0]
	for _, e := range m.effects {
		if now >= e.ExpiresAt {
			m.restore(e.Kind, p)
			expired = append(expired, e.Kind)
			continue
		}
		active = append(active, e)
	}
	m.effects = active
	return expired
}

// Cancel drops every pending effect without restoring anything. Used when
// the owning session is torn down.
func (m *PowerUpMachine) Cancel() {
	m.effects = m.effects[:0]
}

// apply performs the immediate effect of a fresh activation.
func (m *PowerUpMachine) apply(kind PowerUpKind, p *Params) {
	switch kind {
	case PowerUpSpeed:
		p.SpeedBoost = true
		p.Speed *= m.cfg.SpeedFactor
		if p.Slowed {
			p.SlowdownRestore *= m.cfg.SpeedFactor
		}
	case PowerUpInvincible:
		p.Invulnerable = true
		p.Highlight = true
	case PowerUpMagnet:
		p.MagnetRadius = m.cfg.MagnetRadius
	case PowerUpShield:
		p.Shielded = true
		p.ShieldShell = true
	case PowerUpTimeSlowdown:
		p.Slowed = true
		p.SlowdownRestore = p.Speed
		p.Speed *= m.cfg.SlowdownFactor
	case PowerUpMultiplier:
		p.CoinMultiplier = m.cfg.CoinMultiplier
	case PowerUpDoubleJump:
		p.DoubleJump = true
	default:
		kind.mustValid()
	}
}

// restore undoes an effect when its deadline passes.
func (m *PowerUpMachine) restore(kind PowerUpKind, p *Params) {
	switch kind {
	case PowerUpSpeed:
		p.SpeedBoost = false
		p.Speed /= m.cfg.SpeedFactor
		if p.Slowed {
			p.SlowdownRestore /= m.cfg.SpeedFactor
		}
	case PowerUpInvincible:
		p.Invulnerable = false
		p.Highlight = false
	case PowerUpMagnet:
		p.MagnetRadius = 0
	case PowerUpShield:
		p.Shielded = false
		p.ShieldShell = false
	case PowerUpTimeSlowdown:
		p.Slowed = false
		p.Speed = p.SlowdownRestore
		p.SlowdownRestore = 0
	case PowerUpMultiplier:
		p.CoinMultiplier = 1
	case PowerUpDoubleJump:
		p.DoubleJump = false
	default:
		kind.mustValid()
	}
}

// IsActive returns true if the given kind has a pending deadline.
func (m *PowerUpMachine) IsActive(kind PowerUpKind) bool {
	for _, e := range m.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Active returns the active kinds in activation order.
func (m *PowerUpMachine) Active() []PowerUpKind {
	kinds := make([]PowerUpKind, len(m.effects))
	for i, e := range m.effects {
		kinds[i] = e.Kind
	}
	return kinds
}

// Effects returns a copy of the active effect table.
func (m *PowerUpMachine) Effects() []ActiveEffect {
	out := make([]ActiveEffect, len(m.effects))
	copy(out, m.effects)
	return out
}

// Remaining returns the time left on an effect, or 0 if not active.
func (m *PowerUpMachine) Remaining(kind PowerUpKind, now time.Duration) time.Duration {
	for _, e := range m.effects {
		if e.Kind == kind && e.ExpiresAt > now {
			return e.ExpiresAt - now
		}
	}
	return 0
}
