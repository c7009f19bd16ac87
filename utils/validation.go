package utils

import (
	"fmt"

	"medlink/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the slot validators to gin's binding engine.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("slotdate", func(fl validator.FieldLevel) bool {
		return models.ValidSlotDate(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("slottime", func(fl validator.FieldLevel) bool {
		return models.ValidSlotTime(fl.Field().String())
	})
}

// BindingMessage turns a binding failure into a short client-facing message.
func BindingMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Invalid request payload"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "slotdate":
		return "slotDate must be a YYYY-MM-DD date"
	case "slottime":
		return "slotTime must look like 10:00 or 10:00 AM"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
