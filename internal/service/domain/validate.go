package domain

import (
	"github.com/go-playground/validator/v10"

	"cinema-booking/internal/service"
)

var validate = validator.New()

// checkInput runs struct validation and folds violations into the
// invalid-input error kind.
func checkInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return service.Invalidf("%v", err)
	}
	return nil
}
