// Package coursestring parses course tokens like "mth1101-t1" into the
// (sigil, class type, group number) triplet the course loader works with.
package coursestring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/GabRoyer/icanhasical/pkg/course"
)

// FormatError reports a malformed course token.
type FormatError struct {
	Token string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid course string %q, expected something like \"mth1101-t1\"", e.Token)
}

var tokenPattern = regexp.MustCompile(`^([a-zA-Z0-9]+)-([lt])([0-9]+)$`)

// Parse splits a course token into a load request. The marker after the dash
// selects the class type: "t" for theory, "l" for lab. The sigil is
// normalized to uppercase so equal courses share a cache entry.
func Parse(token string) (course.Request, error) {
	match := tokenPattern.FindStringSubmatch(token)
	if match == nil {
		return course.Request{}, &FormatError{Token: token}
	}

	classType := course.Lab
	if match[2] == "t" {
		classType = course.Theory
	}

	group, err := strconv.Atoi(match[3])
	if err != nil {
		return course.Request{}, &FormatError{Token: token}
	}

	return course.Request{
		Sigil: strings.ToUpper(match[1]),
		Type:  classType,
		Group: group,
	}, nil
}
