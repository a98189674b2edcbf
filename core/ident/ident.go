// Package ident extracts canonical numeric IDs from the identifiers people paste:
// bare numbers, prefixed codes such as "sc-704", or full story and epic URLs.
package ident

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidIdentifier is returned when no numeric ID can be extracted from the input.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var (
	storyURLPattern = regexp.MustCompile(`(?i)/story/(\d+)`)
	epicURLPattern  = regexp.MustCompile(`(?i)/epic/(\d+)`)
	digitsPattern   = regexp.MustCompile(`\d+`)
)

// Parse returns the numeric ID referenced by input. URL path segments are tried
// before the generic digit run because a URL may carry other digits (host, query)
// that must not be mistaken for the ID.
func Parse(input string) (int64, error) {
	for _, p := range []*regexp.Regexp{storyURLPattern, epicURLPattern} {
		if m := p.FindStringSubmatch(input); m != nil {
			return toID(input, m[1])
		}
	}
	if digits := digitsPattern.FindString(input); digits != "" {
		return toID(input, digits)
	}
	return 0, fmt.Errorf("%w: no numeric ID found in %q", ErrInvalidIdentifier, input)
}

func toID(input, digits string) (int64, error) {
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidIdentifier, input)
	}
	return id, nil
}
