package runner

import "fmt"

// EventKind identifies something that happened during a frame. Audio and
// HUD collaborators react to events; the simulation never calls them.
type EventKind int

const (
	EventLaneChange EventKind = iota
	EventJump
	EventDoubleJump
	EventCoin
	EventPowerUp
	EventPowerUpExpired
	EventWeatherChanged
	EventPaused
	EventResumed
	EventGameOver
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventLaneChange:
		return "lane_change"
	case EventJump:
		return "jump"
	case EventDoubleJump:
		return "double_jump"
	case EventCoin:
		return "coin"
	case EventPowerUp:
		return "powerup"
	case EventPowerUpExpired:
		return "powerup_expired"
	case EventWeatherChanged:
		return "weather"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a single frame notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Lane    int         // EventLaneChange
	PowerUp PowerUpKind // EventPowerUp, EventPowerUpExpired
	Weather Weather     // EventWeatherChanged
	Points  int         // EventCoin
	Score   int         // EventGameOver
}
