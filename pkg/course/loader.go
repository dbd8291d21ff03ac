// Package course resolves Polytechnique course/group identifiers into full
// course-group records: metadata, teachers and merged meeting periods. Raw
// XML documents come from the course web service and are cached on disk so
// each sigil is fetched at most once.
package course

import (
	"errors"
	"fmt"
)

// Request identifies one course group to load.
type Request struct {
	Sigil string
	Type  ClassType
	Group int
}

// Loader resolves course requests against the cache and the remote course
// service.
type Loader struct {
	store   Store
	fetcher Fetcher
}

// NewLoader creates a loader using the given store and fetcher. Both are
// small interfaces so tests can substitute in-memory fakes.
func NewLoader(store Store, fetcher Fetcher) *Loader {
	return &Loader{store: store, fetcher: fetcher}
}

// DefaultLoader wires the disk cache under the home directory to the
// Polytechnique course service client.
func DefaultLoader() (*Loader, error) {
	cache, err := DefaultCache()
	if err != nil {
		return nil, err
	}
	return NewLoader(cache, NewClient()), nil
}

// Load resolves every request in order and returns one CourseGroup per
// request. If any request names an unknown course or group, the whole batch
// fails with an InvalidCoursesError listing every such request; no partial
// result is returned. Transport and cache failures abort immediately instead
// of being aggregated.
func (l *Loader) Load(requests ...Request) ([]*CourseGroup, error) {
	groups := make([]*CourseGroup, 0, len(requests))
	var invalid []CourseError

	for _, req := range requests {
		cg, err := l.loadOne(req)
		if err != nil {
			var courseErr CourseError
			if errors.As(err, &courseErr) {
				// Keep scanning so the caller learns about every bad
				// request, not just the first.
				invalid = append(invalid, courseErr)
				continue
			}
			return nil, err
		}
		groups = append(groups, cg)
	}

	if len(invalid) > 0 {
		return nil, &InvalidCoursesError{Errors: invalid}
	}
	return groups, nil
}

// ClearCache removes every cached course document.
func (l *Loader) ClearCache() error {
	return l.store.Clear()
}

// loadOne resolves a single request: cache first, then the remote service
// with a write-through to the cache before parsing.
func (l *Loader) loadOne(req Request) (*CourseGroup, error) {
	raw, ok := l.store.Get(req.Sigil)
	if !ok {
		fetched, err := l.fetcher.Fetch(req.Sigil)
		if err != nil {
			return nil, &TransportError{CourseSigil: req.Sigil, Err: err}
		}
		if err := l.store.Put(req.Sigil, fetched); err != nil {
			return nil, fmt.Errorf("failed to cache course document for %s: %w", req.Sigil, err)
		}
		raw = fetched
	}

	return parseCourse(raw, req.Sigil, req.Type, req.Group)
}
