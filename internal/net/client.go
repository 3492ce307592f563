package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "Mage" or "Wizard"
	in         io.Reader
	out        io.Writer
}

// NewClient wraps a connection with a REPL on stdin/stdout.
func NewClient(conn net.Conn, playerName string) *Client {
	return &Client{conn: conn, playerName: playerName, in: os.Stdin, out: os.Stdout}
}

// Connect connects to a server, sends the pool choice, and runs the REPL.
func Connect(ctx context.Context, addr string, poolNumber int) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with pool choice
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", PoolNumber: poolNumber}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for the duel to start...")

	client := NewClient(conn, "Wizard")
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "choose_action":
			c.renderState(msg.State)
			c.renderActions(msg.Actions)
			idx := c.readChoice(reader, len(msg.Actions))
			if err := enc.Encode(ClientMessage{Type: "action", Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case "choose_cards":
			c.renderCardChoice(msg.Prompt, msg.Candidates, msg.Min, msg.Max)
			indices := c.readCardIndices(reader, len(msg.Candidates), msg.Min, msg.Max)
			if err := enc.Encode(ClientMessage{Type: "cards", Indices: indices}); err != nil {
				return fmt.Errorf("send cards: %w", err)
			}

		case "choose_option":
			fmt.Fprintf(c.out, "\n%s\n", msg.Prompt)
			for _, o := range msg.Options {
				fmt.Fprintf(c.out, "  %d) %s\n", o.Index+1, o.Label)
			}
			idx := c.readChoice(reader, len(msg.Options))
			if err := enc.Encode(ClientMessage{Type: "option", Index: idx}); err != nil {
				return fmt.Errorf("send option: %w", err)
			}

		case "game_over":
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	fmt.Fprintf(c.out, "R%-2d T%-3d %-11s | %s\n", ev.Round, ev.Turn, ev.State, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(c.out, "║  %s\n", formatCharacter(sv.Opponent))
	fmt.Fprintf(c.out, "║  Weather: %s\n", formatWeather(sv.Weather))
	fmt.Fprintf(c.out, "║  %s\n", formatCharacter(sv.You))
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | Round %d | %s", sv.Turn, sv.Round, sv.State)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(c.out, turnInfo)

	if len(sv.You.Hand) > 0 {
		fmt.Fprint(c.out, "\nHand: ")
		for _, cv := range sv.You.Hand {
			fmt.Fprintf(c.out, "[%d] %s  ", cv.Index+1, FormatCard(cv))
		}
		fmt.Fprintln(c.out)
	}
}

func formatCharacter(cv CharacterView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (HP: %d/%d)  Hand: %d  Deck: %d", cv.Name, cv.HP, cv.MaxHP, cv.HandCount, cv.DeckCount)
	if cv.Shield {
		b.WriteString("  [Barrier]")
	}
	if cv.DamageMultiplier > 1 {
		fmt.Fprintf(&b, "  [Vulnerable x%d]", cv.DamageMultiplier)
	}
	if cv.Tunneling {
		fmt.Fprintf(&b, "  [Tunneling %d%%]", cv.TunnelingPercent)
	}
	if a := cv.Affliction; a != nil {
		fmt.Fprintf(&b, "  [%s %d x%d]", a.Spell, a.Damage, a.TurnsRemaining)
	}
	return b.String()
}

func formatWeather(wv WeatherView) string {
	if wv.Duration == 0 {
		return wv.Type
	}
	return fmt.Sprintf("%s (since round %d, %d rounds)", wv.Type, wv.StartRound, wv.Duration)
}

// FormatCard renders a card with its quantum state.
func FormatCard(cv CardView) string {
	switch {
	case cv.Collapsed != "":
		return fmt.Sprintf("%s |%s⟩", cv.Name, cv.Collapsed)
	case cv.BiasLabel != "":
		return fmt.Sprintf("%s (%s, |%s⟩ %d%%)", cv.Name, cv.Quantum, cv.BiasLabel, cv.BiasPercent)
	case cv.Quantum != "":
		return fmt.Sprintf("%s (%s)", cv.Name, cv.Quantum)
	default:
		return cv.Name
	}
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

func (c *Client) readChoice(reader *bufio.Reader, count int) int {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= count {
			return n - 1 // convert to 0-indexed
		}
		if err != nil {
			return count - 1 // input closed: take the last choice
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
	}
}

func (c *Client) renderCardChoice(prompt string, candidates []CardView, min, max int) {
	fmt.Fprintf(c.out, "\n%s (select %d", prompt, min)
	if max != min {
		fmt.Fprintf(c.out, "-%d", max)
	}
	fmt.Fprintln(c.out, ")")
	for _, cv := range candidates {
		fmt.Fprintf(c.out, "  %d) %s\n", cv.Index+1, FormatCard(cv))
	}
}

func (c *Client) readCardIndices(reader *bufio.Reader, count, min, max int) []int {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		parts := strings.Fields(strings.TrimSpace(line))

		if len(parts) >= min && len(parts) <= max {
			var indices []int
			valid := true
			for _, p := range parts {
				n, convErr := strconv.Atoi(p)
				if convErr != nil || n < 1 || n > count {
					fmt.Fprintf(c.out, "Each number must be between 1 and %d\n", count)
					valid = false
					break
				}
				indices = append(indices, n-1) // convert to 0-indexed
			}
			if valid {
				return indices
			}
		} else {
			fmt.Fprintf(c.out, "Enter %d-%d numbers separated by spaces\n", min, max)
		}
		if err != nil {
			return nil
		}
	}
}
