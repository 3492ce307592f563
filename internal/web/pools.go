package web

import (
	"github.com/qduelist/qduel/internal/game"
)

// PoolInfo is the JSON representation of a pool for the /api/pools endpoint.
type PoolInfo struct {
	Number int               `json:"number"`
	Name   string            `json:"name"`
	Cards  []game.PoolEntry  `json:"cards"`
	Odds   map[string]string `json:"odds"`
}

// loadPools reads the configured pool file, or the built-in pool when
// no file is configured.
func loadPools(path string) ([]game.Pool, error) {
	if path == "" {
		return []game.Pool{game.DefaultPool()}, nil
	}
	pf, err := game.ParsePoolFile(path)
	if err != nil {
		return nil, err
	}
	return pf.Pools, nil
}

func poolInfos(pools []game.Pool) []PoolInfo {
	infos := make([]PoolInfo, 0, len(pools))
	for i, p := range pools {
		total := 0.0
		for _, e := range p.Cards {
			total += e.Weight
		}
		odds := make(map[string]string, len(p.Cards))
		for _, e := range p.Cards {
			odds[e.Name] = percent(e.Weight / total)
		}
		infos = append(infos, PoolInfo{
			Number: i + 1,
			Name:   p.Name,
			Cards:  p.Cards,
			Odds:   odds,
		})
	}
	return infos
}
