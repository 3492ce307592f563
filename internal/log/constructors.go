package log

import "fmt"

// Clock carries the turn position that every event is stamped with.
type Clock struct {
	Turn  int
	Round int
	State string
}

func (c Clock) event(player int, t EventType, card, details string) GameEvent {
	return GameEvent{
		Turn:    c.Turn,
		Round:   c.Round,
		State:   c.State,
		Player:  player,
		Type:    t,
		Card:    card,
		Details: details,
	}
}

func NewStateChangeEvent(c Clock) GameEvent {
	return c.event(0, EventStateChange, "", fmt.Sprintf("State → %s", c.State))
}

func NewTurnEvent(c Clock, player int) GameEvent {
	return c.event(player, EventNewTurn, "", fmt.Sprintf("=== Turn %d (%s) ===", c.Turn, CharacterName(player)))
}

func NewDrawEvent(c Clock, player int, cardName string) GameEvent {
	return c.event(player, EventDraw, cardName, fmt.Sprintf("%s draws %s", CharacterName(player), cardName))
}

func NewPlayCardEvent(c Clock, player int, cardName string) GameEvent {
	return c.event(player, EventPlayCard, cardName, fmt.Sprintf("%s plays %s", CharacterName(player), cardName))
}

func NewPassEvent(c Clock, player int) GameEvent {
	return c.event(player, EventPass, "", fmt.Sprintf("%s passes", CharacterName(player)))
}

func NewCollapseEvent(c Clock, player int, cardName, label, outcome string) GameEvent {
	return c.event(player, EventCollapse, cardName, fmt.Sprintf("%s collapses to |%s⟩: %s", cardName, label, outcome))
}

func NewEntangleEvent(c Clock, player int, cardName, partnerName, label string) GameEvent {
	return c.event(player, EventEntangle, cardName, fmt.Sprintf("%s is entangled with %s, partner fixed to |%s⟩", cardName, partnerName, label))
}

func NewHPChangeEvent(c Clock, player int, oldHP, newHP int, reason string) GameEvent {
	return c.event(player, EventHPChange, "", fmt.Sprintf("%s HP: %d → %d (%s)", CharacterName(player), oldHP, newHP, reason))
}

func NewShieldEvent(c Clock, player int, cardName string) GameEvent {
	return c.event(player, EventShield, cardName, fmt.Sprintf("%s raises a barrier", CharacterName(player)))
}

func NewShieldBrokenEvent(c Clock, player int) GameEvent {
	return c.event(player, EventShieldBroken, "", fmt.Sprintf("%s's barrier absorbs the attack and breaks", CharacterName(player)))
}

func NewVulnerableEvent(c Clock, player int, multiplier int) GameEvent {
	return c.event(player, EventVulnerable, "", fmt.Sprintf("%s is vulnerable (x%d damage on the next hit)", CharacterName(player), multiplier))
}

func NewTunnelingReadyEvent(c Clock, player int, probability float64) GameEvent {
	return c.event(player, EventTunnelingReady, "", fmt.Sprintf("%s's next attack tunnels shields (%.0f%%)", CharacterName(player), probability*100))
}

func NewTunnelEvent(c Clock, player int) GameEvent {
	return c.event(player, EventTunnel, "", fmt.Sprintf("%s's attack tunnels through the barrier", CharacterName(player)))
}

func NewTunnelBlockedEvent(c Clock, player int) GameEvent {
	return c.event(player, EventTunnelBlocked, "", fmt.Sprintf("%s's tunneling attempt fails", CharacterName(player)))
}

func NewDamageOverTurnEvent(c Clock, player int, spell string, damage, turns int) GameEvent {
	return c.event(player, EventDamageOverTurn, spell, fmt.Sprintf("%s is afflicted by %s (%d per turn for %d turns)", CharacterName(player), spell, damage, turns))
}

func NewDamageOverTurnTickEvent(c Clock, player int, spell string, damage, remaining int) GameEvent {
	return c.event(player, EventDamageOverTurnTick, spell, fmt.Sprintf("%s burns %s for %d (%d turns left)", spell, CharacterName(player), damage, remaining))
}

func NewDamageOverTurnExpireEvent(c Clock, player int, spell string) GameEvent {
	return c.event(player, EventDamageOverTurnExpire, spell, fmt.Sprintf("%s wears off %s", spell, CharacterName(player)))
}

func NewWeatherStartEvent(c Clock, player int, weather string, duration int) GameEvent {
	return c.event(player, EventWeatherStart, weather, fmt.Sprintf("Weather → %s for %d rounds", weather, duration))
}

func NewWeatherEndEvent(c Clock, weather string) GameEvent {
	return c.event(0, EventWeatherEnd, weather, fmt.Sprintf("%s subsides", weather))
}

func NewSnapEvent(c Clock, player int, removed, remaining int) GameEvent {
	return c.event(player, EventSnap, "", fmt.Sprintf("Snap! %d cards vanish from %s's deck (%d left)", removed, CharacterName(player), remaining))
}

func NewPhaseBiasEvent(c Clock, player int, cardName, label string, strength float64) GameEvent {
	return c.event(player, EventPhaseBias, cardName, fmt.Sprintf("%s biases %s toward |%s⟩ (%.0f%%)", CharacterName(player), cardName, label, strength*100))
}

func NewAddToDeckEvent(c Clock, player int, cardName, reason string) GameEvent {
	return c.event(player, EventAddToDeck, cardName, fmt.Sprintf("%s is placed on top of %s's deck (%s)", cardName, CharacterName(player), reason))
}

func NewFizzleEvent(c Clock, player int, cardName, reason string) GameEvent {
	return c.event(player, EventFizzle, cardName, fmt.Sprintf("%s fizzles (%s)", cardName, reason))
}

func NewRoundEndEvent(c Clock) GameEvent {
	return c.event(0, EventRoundEnd, "", fmt.Sprintf("--- Round %d ends ---", c.Round))
}

func NewWinEvent(c Clock, winner int, reason string) GameEvent {
	return c.event(winner, EventWin, "", fmt.Sprintf("%s wins! (%s)", CharacterName(winner), reason))
}

func NewTieEvent(c Clock, reason string) GameEvent {
	return c.event(-1, EventDraw_Tie, "", fmt.Sprintf("Draw (%s)", reason))
}
