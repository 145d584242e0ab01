package handlers

import (
	"fmt"

	"github.com/SscSPs/fx_transfer_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("currency", validateCurrency); err != nil {
		return fmt.Errorf("failed to register currency validation: %w", err)
	}
	return nil
}

// validateCurrency accepts three letter codes in any case.
func validateCurrency(fl validator.FieldLevel) bool {
	_, err := domain.NormalizeCurrency(fl.Field().String())
	return err == nil
}
