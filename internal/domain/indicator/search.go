package indicator

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// minFuzzyTerm evita que termos curtos casem com qualquer código por distância.
const minFuzzyTerm = 3

// Matches compara o termo com nome e código sem diferenciar maiúsculas; um código
// a uma edição do termo também casa.
func Matches(ind *Indicator, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	name := strings.ToLower(ind.Name)
	code := strings.ToLower(ind.Code)
	if strings.Contains(name, term) || strings.Contains(code, term) {
		return true
	}

	if len(term) < minFuzzyTerm {
		return false
	}
	return levenshtein.ComputeDistance(code, term) <= 1
}
