package dre

import (
	"testing"

	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/dremodel"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestContribution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  category.Type
		in   string
		want string
	}{
		{name: "revenue keeps sign", typ: category.TypeRevenue, in: "100", want: "100"},
		{name: "expense is negated", typ: category.TypeExpense, in: "100", want: "-100"},
		{name: "negative expense becomes positive", typ: category.TypeExpense, in: "-30", want: "30"},
		{name: "indicator row as is", typ: "", in: "-7.5", want: "-7.5"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Contribution(Entry{Value: d(tt.in), CategoryType: tt.typ})
			assert.True(t, got.Equal(d(tt.want)), "got %s", got)
		})
	}
}

func TestFavorable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		symbol dremodel.Symbol
		value  string
		want   bool
	}{
		{symbol: dremodel.SymbolPlus, value: "100", want: true},
		{symbol: dremodel.SymbolPlus, value: "-100", want: false},
		{symbol: dremodel.SymbolMinus, value: "-100", want: true},
		{symbol: dremodel.SymbolMinus, value: "100", want: false},
		{symbol: dremodel.SymbolEquals, value: "100", want: true},
		{symbol: dremodel.SymbolEquals, value: "-1", want: false},
		{symbol: "", value: "0", want: true},
		{symbol: dremodel.SymbolMinus, value: "0", want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.symbol)+tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Favorable(tt.symbol, d(tt.value)))
		})
	}
}

func TestAggregateSumsWindowAndTotals(t *testing.T) {
	t.Parallel()

	window := TrailingWindow(3, 2024)
	entries := []Entry{
		{Period: Period{3, 2024}, Value: d("1000"), CategoryType: category.TypeRevenue},
		{Period: Period{3, 2024}, Value: d("400"), CategoryType: category.TypeExpense},
		{Period: Period{4, 2023}, Value: d("50")},
		{Period: Period{3, 2023}, Value: d("999"), CategoryType: category.TypeRevenue},
	}
	accounts := []*dremodel.ModelAccount{
		{Id: ulid.Make(), Name: "Receita", Symbol: dremodel.SymbolPlus},
		{Id: ulid.Make(), Name: "Custos", Symbol: dremodel.SymbolMinus},
	}

	lines := Aggregate(accounts, entries, window)
	require.Len(t, lines, 2)

	revenue := lines[0]
	require.Len(t, revenue.Values, WindowSize)
	assert.True(t, revenue.Values[11].Value.Equal(d("600")))
	assert.True(t, revenue.Values[0].Value.Equal(d("50")))
	assert.True(t, revenue.Values[5].Value.IsZero())
	assert.True(t, revenue.Total.Value.Equal(d("650")))
	assert.Equal(t, ToneFavorable, revenue.Total.Tone)

	costs := lines[1]
	assert.True(t, costs.Total.Value.Equal(revenue.Total.Value))
	assert.Equal(t, ToneUnfavorable, costs.Total.Tone)
	assert.Equal(t, ToneFavorable, costs.Values[5].Tone)

	sum := decimal.Zero
	for _, c := range revenue.Values {
		sum = sum.Add(c.Value)
	}
	assert.True(t, sum.Equal(revenue.Total.Value))
}

func TestFormatBRL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "R$ 1.234,50", FormatBRL(d("1234.5")))
	assert.Equal(t, "-R$ 10,00", FormatBRL(d("-10")))
	assert.Equal(t, "R$ 0,00", FormatBRL(decimal.Zero))
	assert.Equal(t, "R$ 9.999.999.999.999,99", FormatBRL(d("9999999999999.99")))
	assert.Equal(t, "-R$ 1.234.567,89", FormatBRL(d("-1234567.885")))
	assert.Equal(t, "R$ 0,00", FormatBRL(d("-0.001")))
}
