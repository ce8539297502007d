package order

import (
	"fmt"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/pkg/errs"
)

// ServiceType identifies the laundry service a customer ordered.
// Each service carries a per-pound rate used for the intake estimate.
type ServiceType int

const (
	// ServiceUnknown represents an invalid or undefined service.
	ServiceUnknown ServiceType = iota

	// ServiceWashFold is standard wash-dry-fold service.
	ServiceWashFold

	// ServiceDelicates is a gentle cycle with air drying.
	ServiceDelicates

	// ServiceBedding covers comforters, duvets, and other bulky items.
	ServiceBedding
)

func getServiceTypeStrings() map[ServiceType]string {
	return map[ServiceType]string{
		ServiceUnknown:   "unknown",
		ServiceWashFold:  "wash_fold",
		ServiceDelicates: "delicates",
		ServiceBedding:   "bedding",
	}
}

// perPoundRateCents maps each service to its per-pound price in cents.
func perPoundRateCents() map[ServiceType]int64 {
	return map[ServiceType]int64{
		ServiceWashFold:  225,
		ServiceDelicates: 350,
		ServiceBedding:   500,
	}
}

// ServiceTypeFromString parses a service type as carried in API requests.
func ServiceTypeFromString(s string) (ServiceType, error) {
	for svc, name := range getServiceTypeStrings() {
		if svc != ServiceUnknown && name == s {
			return svc, nil
		}
	}
	return ServiceUnknown, errs.NewValueIsInvalidErrorWithCause("service type",
		fmt.Errorf("%q is not a valid service type", s))
}

// Validate checks that the service type is one of the offered services.
func (s ServiceType) Validate() error {
	if _, ok := perPoundRateCents()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("service type",
			fmt.Errorf("%d is not a valid service type", s))
	}
	return nil
}

// String returns the API name of the service type.
func (s ServiceType) String() string {
	if str, ok := getServiceTypeStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// EstimateSubtotal prices the declared weight at the service's per-pound rate
// plus any add-on charges. The declared weight must be positive.
func (s ServiceType) EstimateSubtotal(declaredPounds int, addOns kernel.Money) (kernel.Money, error) {
	if err := s.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if declaredPounds <= 0 {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("declared pounds",
			fmt.Errorf("%d is not greater than 0", declaredPounds))
	}
	if err := addOns.Validate(); err != nil {
		return kernel.Money{}, err
	}

	base, err := kernel.NewMoney(perPoundRateCents()[s]*int64(declaredPounds), addOns.Currency())
	if err != nil {
		return kernel.Money{}, err
	}
	return base.Add(addOns)
}

// EstimateTotal applies the configured minimum-charge floor to a subtotal:
// orders always bill at least the minimum, even when the declared weight
// prices below it.
func EstimateTotal(subtotal, minimum kernel.Money) (kernel.Money, error) {
	if err := subtotal.Validate(); err != nil {
		return kernel.Money{}, err
	}
	if err := minimum.Validate(); err != nil {
		return kernel.Money{}, err
	}

	below, err := subtotal.LessThan(minimum)
	if err != nil {
		return kernel.Money{}, err
	}
	if below {
		return minimum, nil
	}
	return subtotal, nil
}
