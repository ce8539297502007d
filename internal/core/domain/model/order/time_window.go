package order

import (
	"fmt"

	"washday/internal/pkg/errs"
)

// TimeWindow identifies the pickup slot a customer selected for the scheduled
// date. Slots are fixed storefront-wide; drivers plan their routes around them.
type TimeWindow int

const (
	// WindowUnknown represents an invalid or undefined window.
	WindowUnknown TimeWindow = iota

	// WindowMorning is 08:00-11:00.
	WindowMorning

	// WindowMidday is 11:00-14:00.
	WindowMidday

	// WindowAfternoon is 14:00-17:00.
	WindowAfternoon

	// WindowEvening is 17:00-20:00.
	WindowEvening
)

func getTimeWindowStrings() map[TimeWindow]string {
	return map[TimeWindow]string{
		WindowUnknown:   "unknown",
		WindowMorning:   "morning",
		WindowMidday:    "midday",
		WindowAfternoon: "afternoon",
		WindowEvening:   "evening",
	}
}

// TimeWindowFromString parses a window as carried in API requests.
func TimeWindowFromString(s string) (TimeWindow, error) {
	for w, name := range getTimeWindowStrings() {
		if w != WindowUnknown && name == s {
			return w, nil
		}
	}
	return WindowUnknown, errs.NewValueIsInvalidErrorWithCause("time window",
		fmt.Errorf("%q is not a valid time window", s))
}

// Validate checks that the window is one of the offered pickup slots.
func (w TimeWindow) Validate() error {
	if w != WindowMorning && w != WindowMidday && w != WindowAfternoon && w != WindowEvening {
		return errs.NewValueIsInvalidErrorWithCause("time window",
			fmt.Errorf("%d is not a valid time window", w))
	}
	return nil
}

// String returns the API name of the window.
func (w TimeWindow) String() string {
	if s, ok := getTimeWindowStrings()[w]; ok {
		return s
	}
	return "unknown"
}
