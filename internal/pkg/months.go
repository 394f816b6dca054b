package pkg

import (
	"fmt"
	"strconv"
	"strings"
)

var MonthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var MonthAbbreviations = [12]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// MonthAbbreviation devolve "Mar" para 3; meses fora de 1..12 viram string vazia.
func MonthAbbreviation(month int) string {
	if !ValidMonth(month) {
		return ""
	}
	return MonthAbbreviations[month-1]
}

// ParseMonth aceita número (1..12), nome completo ou abreviação em português,
// sem diferenciar maiúsculas e ignorando acentos em "março".
func ParseMonth(value string) (int, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if !ValidMonth(n) {
			return 0, fmt.Errorf("mês fora do intervalo: %d", n)
		}
		return n, nil
	}

	normalized := strings.ReplaceAll(strings.ToLower(value), "ç", "c")
	for i := range MonthNames {
		name := strings.ReplaceAll(strings.ToLower(MonthNames[i]), "ç", "c")
		abbr := strings.ToLower(MonthAbbreviations[i])
		if normalized == name || normalized == abbr {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("mês inválido: %q", value)
}
