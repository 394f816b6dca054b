package shared

import (
	"strings"
)

func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "violates unique constraint")
}

// NormalizeCode remove espaços e deixa o código em maiúsculas ("rec 01" -> "REC01").
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

// CollapseSpaces apara o nome e reduz espaços internos repetidos a um só.
func CollapseSpaces(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
