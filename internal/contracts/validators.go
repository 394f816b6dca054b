package contracts

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators instala no validador do gin as regras dre_symbol e dre_month.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("dre_symbol", validateSymbol); err != nil {
		return err
	}
	return v.RegisterValidation("dre_month", validateMonth)
}

func validateSymbol(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "+", "-", "=":
		return true
	}
	return false
}

func validateMonth(fl validator.FieldLevel) bool {
	m := fl.Field().Int()
	return m >= 1 && m <= 12
}
