package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger receives every event a duel emits.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// MemoryLogger keeps the duel's event history. Tests assert against it and
// the other sinks embed it so a finished duel can always be replayed.
type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

// Log stamps the event with the next sequence number and stores it.
func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType filters the history by event type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var matched []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			matched = append(matched, e)
		}
	}
	return matched
}

// Count returns how many events of type t were logged.
func (l *MemoryLogger) Count(t EventType) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// LastEvent returns the most recent event, or a zero event before the duel starts.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// TextLogger prints the duel as a running commentary, one line per event.
type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// CharacterName returns "Mage" or "Wizard".
func CharacterName(p int) string {
	switch p {
	case 0:
		return "Mage"
	case 1:
		return "Wizard"
	default:
		return "?"
	}
}

// marker tags each line with the kind of thing that happened: measurements,
// weather, health, the result, or ordinary turn flow.
func marker(t EventType) string {
	switch t {
	case EventCollapse, EventEntangle, EventPhaseBias, EventTunnel, EventTunnelBlocked:
		return "ψ"
	case EventWeatherStart, EventWeatherEnd:
		return "~"
	case EventHPChange, EventDamageOverTurnTick:
		return "♥"
	case EventWin, EventDraw_Tie:
		return "★"
	default:
		return "·"
	}
}

// FormatEvent renders one event as "R<round> T<turn> <state> <marker> <details>".
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("R%-2d T%-3d %-11s %s %s", e.Round, e.Turn, e.State, marker(e.Type), e.Details)
}

// FormatAll renders a whole duel, one event per line.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}
