package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "github.com/MV-Clouds/quickform-payments/internal/domain/formpayment/valueobjects"
)

// RegisterCustomValidators adds payment-domain validation tags to Gin's
// binding validator. Safe to call more than once.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("paymenttype", func(fl validator.FieldLevel) bool {
		return vo.PaymentType(fl.Field().String()).IsValid()
	})

	_ = v.RegisterValidation("billingfrequency", func(fl validator.FieldLevel) bool {
		_, err := vo.NewBillingFrequency(fl.Field().String())
		return err == nil
	})
}
