// Package address pulls city/state/zip out of free-text US addresses.
// Parsing is best-effort: anything that does not match leaves the
// fields empty instead of failing.
package address

import (
	"regexp"
	"strings"
)

var stateZipRe = regexp.MustCompile(`([A-Z]{2})[ ,]+(\d{5}(?:-\d{4})?)$`)

type Parts struct {
	Street string
	City   string
	State  string
	Zip    string
}

// Parse regex-matches a trailing "STATE ZIP" pair, then splits the rest
// on commas: first segment is the street, last is the city.
func Parse(raw string) Parts {
	res := Parts{}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return res
	}

	head := raw
	if m := stateZipRe.FindStringSubmatchIndex(raw); m != nil {
		res.State = raw[m[2]:m[3]]
		res.Zip = raw[m[4]:m[5]]
		head = strings.TrimRight(strings.TrimSpace(raw[:m[0]]), ", ")
	}

	segments := []string{}
	for _, seg := range strings.Split(head, ",") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return res
	}

	res.Street = segments[0]
	if len(segments) >= 2 {
		res.City = segments[len(segments)-1]
	}

	return res
}
