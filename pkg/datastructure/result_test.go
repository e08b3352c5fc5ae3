package datastructure

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearchResultMarshalSeconds(t *testing.T) {
	result := SearchResult{
		Algorithm: "ucs",
		Path:      []int64{1, 2, 3},
		Cost:      1250.0,
		Expanded:  7,
		Duration:  1500 * time.Millisecond,
		Success:   true,
	}

	raw, err := json.Marshal(result)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	assert.InDelta(t, 1.5, decoded["search_time"], 1e-9)
	assert.Equal(t, "ucs", decoded["algorithm"])
	assert.EqualValues(t, 7, decoded["nodes_expanded"])
}
