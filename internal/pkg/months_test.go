package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "3", want: 3},
		{in: " 12 ", want: 12},
		{in: "Março", want: 3},
		{in: "marco", want: 3},
		{in: "DEZ", want: 12},
		{in: "jan", want: 1},
		{in: "0", wantErr: true},
		{in: "13", wantErr: true},
		{in: "primavera", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMonth(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthAbbreviation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Mar", MonthAbbreviation(3))
	assert.Equal(t, "Dez", MonthAbbreviation(12))
	assert.Empty(t, MonthAbbreviation(0))
}

func TestParseULIDs(t *testing.T) {
	t.Parallel()

	a, b := GenerateULIDObject(), GenerateULIDObject()
	ids, err := ParseULIDs(ULIDStrings(a, b))
	require.NoError(t, err)
	assert.Equal(t, []string{a.String(), b.String()}, ULIDStrings(ids...))

	_, err = ParseULIDs([]string{"nope"})
	assert.Error(t, err)
}
