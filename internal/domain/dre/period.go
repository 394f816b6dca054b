package dre

import (
	"fmt"

	"Demonstra/internal/pkg"
)

const WindowSize = 12

type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Key ordena períodos cronologicamente: ano*100 + mês.
func (p Period) Key() int {
	return p.Year*100 + p.Month
}

// Label devolve o rótulo da coluna, por exemplo "Mar/24".
func (p Period) Label() string {
	return fmt.Sprintf("%s/%02d", pkg.MonthAbbreviation(p.Month), p.Year%100)
}

// TrailingWindow devolve os 12 meses terminando em (month, year), do mais antigo ao mais recente.
func TrailingWindow(month, year int) []Period {
	window := make([]Period, WindowSize)
	for i := 0; i < WindowSize; i++ {
		idx := month - 1 - (WindowSize - 1 - i)
		y := year
		for idx < 0 {
			idx += 12
			y--
		}
		window[i] = Period{Month: idx + 1, Year: y}
	}
	return window
}
