package game

// WeatherManager tracks the single global weather.
type WeatherManager struct {
	Type       WeatherType
	StartRound int
	Duration   int
}

// Set replaces any current weather and returns the previous one.
func (w *WeatherManager) Set(t WeatherType, round, duration int) WeatherType {
	prev := w.Type
	w.Type = t
	w.StartRound = round
	w.Duration = duration
	return prev
}

func (w *WeatherManager) Active() bool {
	return w.Type != WeatherNone
}

// IsOver reports whether the weather has outlived its duration at round current.
func (w *WeatherManager) IsOver(current int) bool {
	return current > w.StartRound+w.Duration
}

// Tick clears the weather if it has expired and returns what ended.
func (w *WeatherManager) Tick(current int) (WeatherType, bool) {
	if !w.Active() || !w.IsOver(current) {
		return WeatherNone, false
	}
	ended := w.Type
	w.Clear()
	return ended, true
}

func (w *WeatherManager) Clear() {
	*w = WeatherManager{}
}
