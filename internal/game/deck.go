package game

import "github.com/qduelist/qduel/internal/quantum"

// Deck is an ordered pile with a fixed capacity. Cards are drawn from the front.
type Deck struct {
	Cards   []*CardInstance
	MaxSize int
}

func NewDeck(maxSize int) *Deck {
	return &Deck{MaxSize: maxSize}
}

func (d *Deck) Len() int {
	return len(d.Cards)
}

func (d *Deck) Empty() bool {
	return len(d.Cards) == 0
}

func (d *Deck) Full() bool {
	return len(d.Cards) >= d.MaxSize
}

// Draw removes and returns the front card, or nil if the deck is empty.
func (d *Deck) Draw() *CardInstance {
	if len(d.Cards) == 0 {
		return nil
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card
}

// Append adds a card at the bottom. Returns false if the deck is full.
func (d *Deck) Append(card *CardInstance) bool {
	if d.Full() {
		return false
	}
	d.Cards = append(d.Cards, card)
	return true
}

// PushTop places a card so that it is drawn next. Returns false if the deck is full.
func (d *Deck) PushTop(card *CardInstance) bool {
	if d.Full() {
		return false
	}
	d.Cards = append([]*CardInstance{card}, d.Cards...)
	return true
}

// Snap removes half of the deck (rounded down) at random and returns
// the number of cards removed.
func (d *Deck) Snap(s *quantum.Sampler) int {
	n := len(d.Cards) / 2
	for i := 0; i < n; i++ {
		idx := s.Intn(len(d.Cards))
		d.Cards = append(d.Cards[:idx], d.Cards[idx+1:]...)
	}
	return n
}

// Hand holds the cards a character may play.
type Hand struct {
	Cards    []*CardInstance
	Capacity int
}

func NewHand(capacity int) *Hand {
	return &Hand{Capacity: capacity}
}

func (h *Hand) Len() int {
	return len(h.Cards)
}

func (h *Hand) Full() bool {
	return len(h.Cards) >= h.Capacity
}

// Add puts a card in the hand. Returns false if the hand is full.
func (h *Hand) Add(card *CardInstance) bool {
	if h.Full() {
		return false
	}
	h.Cards = append(h.Cards, card)
	return true
}

// Index returns the position of a card by instance ID, or -1.
func (h *Hand) Index(card *CardInstance) int {
	if card == nil {
		return -1
	}
	for i, c := range h.Cards {
		if c.ID == card.ID {
			return i
		}
	}
	return -1
}

// RemoveAt removes and returns the card at position i.
func (h *Hand) RemoveAt(i int) *CardInstance {
	card := h.Cards[i]
	h.Cards = append(h.Cards[:i], h.Cards[i+1:]...)
	return card
}

// BiasCandidates returns the cards Phase Bias may target.
func (h *Hand) BiasCandidates() []*CardInstance {
	var result []*CardInstance
	for _, c := range h.Cards {
		if c.Biasable() {
			result = append(result, c)
		}
	}
	return result
}
