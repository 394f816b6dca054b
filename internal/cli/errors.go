package cli

import (
	"errors"
	"strings"

	appErrors "Demonstra/internal/errors"
)

// describe transforma um AppError em mensagem legível, incluindo linhas rejeitadas na importação.
func describe(err error) error {
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		return err
	}

	var b strings.Builder
	b.WriteString(appErr.Message)
	if lines, ok := appErr.Details["lines"].([]string); ok {
		for _, l := range lines {
			b.WriteString("\n  ")
			b.WriteString(l)
		}
	}
	return errors.New(b.String())
}
