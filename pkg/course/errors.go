package course

import (
	"fmt"
	"strings"
)

// CourseError is implemented by validation errors attributable to a single
// course request. Transport and cache I/O failures are not CourseErrors and
// never end up in an InvalidCoursesError.
type CourseError interface {
	error
	Sigil() string
	courseError()
}

// NonExistingCourseError reports a sigil the course service does not know.
type NonExistingCourseError struct {
	CourseSigil string
}

func (e *NonExistingCourseError) Error() string {
	return fmt.Sprintf("course %s does not exist", e.CourseSigil)
}

func (e *NonExistingCourseError) Sigil() string { return e.CourseSigil }
func (e *NonExistingCourseError) courseError()  {}

// NonExistingGroupError reports a known course that has no group matching the
// requested class type and number.
type NonExistingGroupError struct {
	CourseSigil string
	Type        ClassType
	Group       int
}

func (e *NonExistingGroupError) Error() string {
	return fmt.Sprintf("course %s has no group %d of type %q",
		e.CourseSigil, e.Group, e.Type.Label())
}

func (e *NonExistingGroupError) Sigil() string { return e.CourseSigil }
func (e *NonExistingGroupError) courseError()  {}

// TransportError reports a failed fetch from the course service. It aborts
// the whole batch immediately instead of being aggregated.
type TransportError struct {
	CourseSigil string
	Err         error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch course %s: %v", e.CourseSigil, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// InvalidCoursesError carries every validation failure encountered across a
// batch, in request order.
type InvalidCoursesError struct {
	Errors []CourseError
}

func (e *InvalidCoursesError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, inner := range e.Errors {
		msgs[i] = inner.Error()
	}
	return fmt.Sprintf("%d invalid course request(s): %s",
		len(e.Errors), strings.Join(msgs, "; "))
}
