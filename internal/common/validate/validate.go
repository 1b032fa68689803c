// Released under an MIT license. See LICENSE.

// Package validate checks argument counts for builtins and closures.
package validate

import (
	"fmt"
)

// Unlimited may be passed as max to accept any number of trailing arguments.
const Unlimited = -1

// Variadic checks that actual has at least min elements and, unless max
// is Unlimited, at most max. It returns the checked prefix and the rest.
func Variadic[T any](actual []T, min, max int) ([]T, []T, error) {
	if len(actual) < min {
		return nil, nil, fmt.Errorf("expected %s, passed %d", Expected(min, max), len(actual))
	}

	if max == Unlimited || len(actual) <= max {
		return actual, nil, nil
	}

	return actual[:max], actual[max:], nil
}

// Fixed checks that actual has between min and max elements.
func Fixed[T any](actual []T, min, max int) ([]T, error) {
	v, rest, err := Variadic(actual, min, max)
	if err != nil {
		return nil, err
	}

	if len(rest) != 0 {
		return nil, fmt.Errorf("expected %s, passed %d", Expected(min, max), len(actual))
	}

	return v, nil
}

// Count returns n followed by label, pluralized with p when n is not one.
func Count(n int, label string, p string) string {
	if n == 1 {
		p = ""
	}

	return fmt.Sprintf("%d %s%s", n, label, p)
}

// Expected describes the accepted argument counts.
func Expected(min, max int) string {
	switch {
	case max == Unlimited:
		return "at least " + Count(min, "argument", "s")
	case min == max:
		return Count(min, "argument", "s")
	}

	return fmt.Sprintf("%d to %s", min, Count(max, "argument", "s"))
}
