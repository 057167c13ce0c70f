package history

import (
	"testing"
	"time"

	"github.com/markusressel/fuzzy2go/internal/fuzzy"
	"github.com/markusressel/fuzzy2go/internal/persistence"
	"github.com/stretchr/testify/assert"
)

func createRecords() []persistence.Record {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return []persistence.Record{
		{
			Time:    start,
			Cycle:   1,
			Inputs:  map[string]int{"Velocity": 125, "Angle": 60},
			Outputs: map[string]int{"Force": 134},
		},
		{
			Time:        start.Add(time.Second),
			Cycle:       2,
			Inputs:      map[string]int{"Velocity": 255, "Angle": 255},
			Outputs:     map[string]int{},
			Diagnostics: []fuzzy.Diagnostic{{Kind: fuzzy.DiagnosticNoMatch}},
		},
		{
			Time:    start.Add(2 * time.Second),
			Cycle:   3,
			Inputs:  map[string]int{"Velocity": 230, "Angle": 125},
			Outputs: map[string]int{"Force": 31},
		},
	}
}

func TestRecordTable(t *testing.T) {
	// WHEN
	headers, rows, _ := recordTable(createRecords())

	// THEN
	assert.Equal(t, []string{"Time", "Cycle", "Angle", "Velocity", "Force", "Diagnostics"}, headers)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"2024-01-02 03:04:05.000", "1", "60", "125", "134", "0"}, rows[0])
	assert.Equal(t, []string{"2024-01-02 03:04:06.000", "2", "255", "255", "N/A", "1"}, rows[1])
}

func TestRecordTable_Empty(t *testing.T) {
	// WHEN
	headers, rows, _ := recordTable(nil)

	// THEN
	assert.Equal(t, []string{"Time", "Cycle"}, headers)
	assert.Empty(t, rows)
}

func TestOutputSeries(t *testing.T) {
	// WHEN
	series := outputSeries(createRecords())

	// THEN
	assert.Equal(t, map[string][]float64{"Force": {134, 31}}, series)
}
