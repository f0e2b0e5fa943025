package formpayment

import "errors"

var (
	// ErrFieldNotFound indicates a registry lookup for an unknown field.
	ErrFieldNotFound = errors.New("payment field not found in registry")
	// ErrMerchantRequired indicates an operation attempted without a merchant.
	ErrMerchantRequired = errors.New("merchant ID is required")
)
