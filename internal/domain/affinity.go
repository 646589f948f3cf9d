package domain

import (
	"fmt"
	"strings"
)

// Affinity identifies which execution context owns a persistence context.
// The set is closed: every switch over Affinity is expected to be exhaustive.
type Affinity int

const (
	// AffinityConfinement means the calling goroutine owns the context.
	// Work runs inline and no synchronization is added.
	AffinityConfinement Affinity = iota

	// AffinityPrivateSerial means a dedicated serial execution context,
	// created for this persistence context, owns it.
	AffinityPrivateSerial

	// AffinityMainSerial means the process-wide main serial execution
	// context owns it.
	AffinityMainSerial
)

// String returns the configuration name of the affinity.
func (a Affinity) String() string {
	switch a {
	case AffinityConfinement:
		return "confinement"
	case AffinityPrivateSerial:
		return "private"
	case AffinityMainSerial:
		return "main"
	default:
		return fmt.Sprintf("affinity(%d)", int(a))
	}
}

// IsSerial reports whether work for this affinity must be dispatched to an
// owning serial execution context.
func (a Affinity) IsSerial() bool {
	return a == AffinityPrivateSerial || a == AffinityMainSerial
}

// IsValid reports whether a is one of the defined affinities.
func (a Affinity) IsValid() bool {
	return a >= AffinityConfinement && a <= AffinityMainSerial
}

// ParseAffinity converts a configuration value ("confinement", "private",
// "main") to an Affinity. Matching is case-insensitive.
func ParseAffinity(s string) (Affinity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confinement":
		return AffinityConfinement, nil
	case "private":
		return AffinityPrivateSerial, nil
	case "main":
		return AffinityMainSerial, nil
	default:
		return 0, &ValidationError{
			Fields: map[string]string{"affinity": fmt.Sprintf("must be one of confinement, private, main; got %q", s)},
		}
	}
}
