package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	AmountTag  = "amount"
	ExpDateTag = "expdate"
)

var (
	// NVP amounts use a period separator and at most two decimals.
	amountRegex  = regexp.MustCompile(`^\d{1,9}(\.\d{1,2})?$`)
	expDateRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])\d{4}$`)
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AmountTag:  ValidateAmount,
	ExpDateTag: ValidateExpDate,
}

func ValidateAmount(fl validator.FieldLevel) bool {
	return amountRegex.MatchString(fl.Field().String())
}

// ValidateExpDate accepts MMYYYY.
func ValidateExpDate(fl validator.FieldLevel) bool {
	return expDateRegex.MatchString(fl.Field().String())
}
