package quantum

// afflictionToWeather couples the elemental attack register to the weather
// register. It must stay a bijection.
var afflictionToWeather = map[string]string{
	"00": "00", // Earth Spike  -> Earthquake
	"01": "10", // Water Geyser -> Rain
	"11": "01", // Fireball     -> Heatwave
	"10": "11", // Wind Slash   -> Wind Tornado
}

var weatherToAffliction = invert(afflictionToWeather)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// WeatherFor returns the weather label correlated with an affliction label.
func WeatherFor(affliction string) (string, bool) {
	w, ok := afflictionToWeather[affliction]
	return w, ok
}

// AfflictionFor returns the affliction label correlated with a weather label.
func AfflictionFor(weather string) (string, bool) {
	a, ok := weatherToAffliction[weather]
	return a, ok
}

// Pair holds two four-state registers whose measurements are correlated.
// Measuring either side fixes the other through the lookup table.
type Pair struct {
	Affliction *Superposition
	Weather    *Superposition
}

// NewPair creates an uncollapsed entangled pair.
func NewPair() *Pair {
	p := &Pair{
		Affliction: NewSuperposition(FourState()...),
		Weather:    NewSuperposition(FourState()...),
	}
	p.Affliction.state = StateEntangled
	p.Weather.state = StateEntangled
	return p
}

// Collapsed reports whether the pair has been measured.
func (p *Pair) Collapsed() bool {
	return p.Affliction.state == StateCollapsed
}

// CollapseAffliction measures the affliction side and derives the weather.
func (p *Pair) CollapseAffliction(s *Sampler) (affliction, weather string) {
	if p.Collapsed() {
		return p.Affliction.collapsed, p.Weather.collapsed
	}
	affliction = s.MustChoose(uniform(p.Affliction.labels))
	weather = afflictionToWeather[affliction]
	p.fix(affliction, weather)
	return affliction, weather
}

// CollapseWeather measures the weather side and derives the affliction.
func (p *Pair) CollapseWeather(s *Sampler) (weather, affliction string) {
	if p.Collapsed() {
		return p.Weather.collapsed, p.Affliction.collapsed
	}
	weather = s.MustChoose(uniform(p.Weather.labels))
	affliction = weatherToAffliction[weather]
	p.fix(affliction, weather)
	return weather, affliction
}

func (p *Pair) fix(affliction, weather string) {
	p.Affliction.collapsed, p.Affliction.state = affliction, StateCollapsed
	p.Weather.collapsed, p.Weather.state = weather, StateCollapsed
}

func uniform(labels []string) []Weighted {
	dist := make([]Weighted, len(labels))
	for i, l := range labels {
		dist[i] = Weighted{Label: l, Weight: 1}
	}
	return dist
}
