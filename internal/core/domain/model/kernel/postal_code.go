package kernel

import (
	"fmt"

	"washday/internal/pkg/errs"
	"washday/internal/pkg/guard"
)

// ErrPostalCodeIsNotConstructed is returned when validating a zero-value
// PostalCode. PostalCode must be created via NewPostalCode.
var ErrPostalCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"postal code must be created via NewPostalCode constructor")

// PostalCode is an immutable value object representing a 5-digit postal code.
// It identifies both customer pickup addresses and laundromat service areas,
// and is the key used by the routing resolver for coverage checks.
//
// Example:
//
//	zip, err := kernel.NewPostalCode("48201")
//	if err != nil {
//	    // handle validation error
//	}
type PostalCode struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewPostalCode creates a PostalCode from its string form.
// The code must be exactly five ASCII digits.
func NewPostalCode(code string) (PostalCode, error) {
	p := PostalCode{
		guard: guard.NewConstructorGuard(),
	}

	if err := p.setCode(code); err != nil {
		return PostalCode{}, err
	}

	return p, nil
}

// Validate ensures the PostalCode was created through the constructor.
func (p PostalCode) Validate() error {
	return p.guard.Validate(ErrPostalCodeIsNotConstructed)
}

// String returns the 5-digit code.
func (p PostalCode) String() string {
	return p.code
}

// IsEqual compares two postal codes by value.
func (p PostalCode) IsEqual(other PostalCode) bool {
	return p.code == other.code
}

func (p *PostalCode) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("postal code")
	}
	if len(code) != 5 {
		return errs.NewValueIsInvalidErrorWithCause("postal code",
			fmt.Errorf("%q is not 5 digits", code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidErrorWithCause("postal code",
				fmt.Errorf("%q contains a non-digit character", code))
		}
	}
	p.code = code
	return nil
}
