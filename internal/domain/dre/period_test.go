package dre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		month, year int
		first, last Period
	}{
		{name: "march wraps into previous year", month: 3, year: 2024, first: Period{4, 2023}, last: Period{3, 2024}},
		{name: "december stays in the year", month: 12, year: 2024, first: Period{1, 2024}, last: Period{12, 2024}},
		{name: "january", month: 1, year: 2025, first: Period{2, 2024}, last: Period{1, 2025}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := TrailingWindow(tt.month, tt.year)
			require.Len(t, w, WindowSize)
			assert.Equal(t, tt.first, w[0])
			assert.Equal(t, tt.last, w[len(w)-1])
			for i := 1; i < len(w); i++ {
				assert.Less(t, w[i-1].Key(), w[i].Key())
			}
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Mar/24", Period{Month: 3, Year: 2024}.Label())
	assert.Equal(t, "Jan/05", Period{Month: 1, Year: 2005}.Label())
	assert.Equal(t, 202403, Period{Month: 3, Year: 2024}.Key())
}
