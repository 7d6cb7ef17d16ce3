package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidValueType = goerr.New("invalid value type")
	ErrInvalidOption    = goerr.New("invalid option value")
	ErrMissingRequired  = goerr.New("required property is missing")
	ErrInvalidFormat    = goerr.New("invalid value format")
)

// Context keys for error values
const (
	PropertyKeyKey  = "property_key"
	ExpectedTypeKey = "expected_type"
	ActualTypeKey   = "actual_type"
	OptionValueKey  = "option_value"
)
