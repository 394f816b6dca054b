package dre

import (
	"Demonstra/internal/domain/category"
	"Demonstra/internal/domain/dremodel"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Entry é um lançamento bruto já reduzido ao necessário para a DRE.
// CategoryType vazio indica lançamento de indicador.
type Entry struct {
	Period       Period
	Value        decimal.Decimal
	CategoryType category.Type
}

// Contribution aplica o sinal do lançamento: receita soma, despesa subtrai, o resto entra como está.
func Contribution(e Entry) decimal.Decimal {
	if e.CategoryType == category.TypeExpense {
		return e.Value.Neg()
	}
	return e.Value
}

type Tone string

const (
	ToneFavorable   Tone = "favorable"
	ToneUnfavorable Tone = "unfavorable"
)

// Favorable segue a convenção de cores: "-" é favorável quando negativo; "+" e "=" quando positivo.
func Favorable(symbol dremodel.Symbol, value decimal.Decimal) bool {
	if symbol == dremodel.SymbolMinus {
		return value.Sign() <= 0
	}
	return value.Sign() >= 0
}

func ToneOf(symbol dremodel.Symbol, value decimal.Decimal) Tone {
	if Favorable(symbol, value) {
		return ToneFavorable
	}
	return ToneUnfavorable
}

type Cell struct {
	Value decimal.Decimal `json:"value"`
	Tone  Tone            `json:"tone"`
}

type Line struct {
	AccountId ulid.ULID       `json:"accountId"`
	Name      string          `json:"name"`
	Symbol    dremodel.Symbol `json:"symbol"`
	Values    []Cell          `json:"values"`
	Total     Cell            `json:"total"`
}

// SumByPeriod soma as contribuições de cada período; lançamentos fora da janela são ignorados.
func SumByPeriod(entries []Entry, window []Period) []decimal.Decimal {
	index := make(map[int]int, len(window))
	for i, p := range window {
		index[p.Key()] = i
	}

	sums := make([]decimal.Decimal, len(window))
	for i := range sums {
		sums[i] = decimal.Zero
	}
	for _, e := range entries {
		if i, ok := index[e.Period.Key()]; ok {
			sums[i] = sums[i].Add(Contribution(e))
		}
	}
	return sums
}

// Aggregate monta uma linha por conta com os valores mensais e o acumulado da janela.
// Toda conta recebe a soma de todos os lançamentos da empresa no período; componentes e pesos
// do modelo não entram no cálculo.
func Aggregate(accounts []*dremodel.ModelAccount, entries []Entry, window []Period) []Line {
	sums := SumByPeriod(entries, window)

	lines := make([]Line, 0, len(accounts))
	for _, acc := range accounts {
		total := decimal.Zero
		values := make([]Cell, len(sums))
		for i, v := range sums {
			values[i] = Cell{Value: v, Tone: ToneOf(acc.Symbol, v)}
			total = total.Add(v)
		}
		lines = append(lines, Line{
			AccountId: acc.Id,
			Name:      acc.Name,
			Symbol:    acc.Symbol,
			Values:    values,
			Total:     Cell{Value: total, Tone: ToneOf(acc.Symbol, total)},
		})
	}
	return lines
}
