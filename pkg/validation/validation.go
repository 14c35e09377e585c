// Package validation holds the field rules shared by the request layer and
// the domain services: identity document, phone, email and plate formats,
// salary and engine bounds, and the clamped month arithmetic used for
// maintenance and policy date windows.
package validation

import "github.com/go-playground/validator/v10"

// Register wires the custom format tags into a validator instance so DTOs
// can declare them alongside the built-in tags.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("dpi", func(fl validator.FieldLevel) bool {
		return ValidDPI(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("telefono_gt", func(fl validator.FieldLevel) bool {
		return ValidTelefono(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("correo", func(fl validator.FieldLevel) bool {
		return ValidCorreo(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("placa", func(fl validator.FieldLevel) bool {
		return ValidPlacaFormat(fl.Field().String())
	})
}
