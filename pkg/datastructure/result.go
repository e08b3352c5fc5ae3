package datastructure

import (
	"encoding/json"
	"time"
)

// SearchResult is the outcome of one path search. Produced fresh per query
// and never mutated after return. An unreachable goal is a normal result with
// Success=false and an empty path; Cost is meaningless in that case.
type SearchResult struct {
	Algorithm string
	Path      []int64
	Cost      float64 // meter
	Expanded  int
	Duration  time.Duration
	Success   bool
}

func (r SearchResult) PathLength() int {
	return len(r.Path)
}

// MarshalJSON reports the duration in seconds so every time field on the API
// surface carries the same unit.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Algorithm  string  `json:"algorithm"`
		Path       []int64 `json:"path"`
		Cost       float64 `json:"cost"`
		Expanded   int     `json:"nodes_expanded"`
		SearchTime float64 `json:"search_time"`
		Success    bool    `json:"success"`
	}{
		Algorithm:  r.Algorithm,
		Path:       r.Path,
		Cost:       r.Cost,
		Expanded:   r.Expanded,
		SearchTime: r.Duration.Seconds(),
		Success:    r.Success,
	})
}
