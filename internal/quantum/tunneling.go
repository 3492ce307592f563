package quantum

// DefaultTunnelingProbability is the chance that an attack passes a shield.
const DefaultTunnelingProbability = 0.7

// Tunnel reports whether an attack tunnels through a barrier.
func Tunnel(s *Sampler, probability float64) bool {
	return s.Chance(probability)
}
