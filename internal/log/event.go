package log

// EventType enumerates all observable duel events.
type EventType int

const (
	EventStateChange EventType = iota
	EventNewTurn
	EventDraw
	EventPlayCard
	EventPass
	EventCollapse
	EventEntangle
	EventHPChange
	EventShield
	EventShieldBroken
	EventVulnerable
	EventTunnelingReady
	EventTunnel
	EventTunnelBlocked
	EventDamageOverTurn
	EventDamageOverTurnTick
	EventDamageOverTurnExpire
	EventWeatherStart
	EventWeatherEnd
	EventSnap
	EventPhaseBias
	EventAddToDeck
	EventFizzle
	EventRoundEnd
	EventWin
	EventDraw_Tie
)

func (e EventType) String() string {
	switch e {
	case EventStateChange:
		return "StateChange"
	case EventNewTurn:
		return "NewTurn"
	case EventDraw:
		return "Draw"
	case EventPlayCard:
		return "PlayCard"
	case EventPass:
		return "Pass"
	case EventCollapse:
		return "Collapse"
	case EventEntangle:
		return "Entangle"
	case EventHPChange:
		return "HPChange"
	case EventShield:
		return "Shield"
	case EventShieldBroken:
		return "ShieldBroken"
	case EventVulnerable:
		return "Vulnerable"
	case EventTunnelingReady:
		return "TunnelingReady"
	case EventTunnel:
		return "Tunnel"
	case EventTunnelBlocked:
		return "TunnelBlocked"
	case EventDamageOverTurn:
		return "DamageOverTurn"
	case EventDamageOverTurnTick:
		return "DamageOverTurnTick"
	case EventDamageOverTurnExpire:
		return "DamageOverTurnExpire"
	case EventWeatherStart:
		return "WeatherStart"
	case EventWeatherEnd:
		return "WeatherEnd"
	case EventSnap:
		return "Snap"
	case EventPhaseBias:
		return "PhaseBias"
	case EventAddToDeck:
		return "AddToDeck"
	case EventFizzle:
		return "Fizzle"
	case EventRoundEnd:
		return "RoundEnd"
	case EventWin:
		return "Win"
	case EventDraw_Tie:
		return "Draw(tie)"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a duel.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Round   int       // which round (1-based, one Mage turn + one Wizard turn)
	State   string    // turn state name (e.g. "Mage Turn")
	Player  int       // acting character (0 = Mage, 1 = Wizard)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
