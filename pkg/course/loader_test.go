package course

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	docs    map[string][]byte
	gets    int
	cleared bool
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string][]byte)}
}

func (s *memStore) Get(sigil string) ([]byte, bool) {
	s.gets++
	data, ok := s.docs[sigil]
	return data, ok
}

func (s *memStore) Put(sigil string, data []byte) error {
	s.docs[sigil] = data
	return nil
}

func (s *memStore) Clear() error {
	s.cleared = true
	s.docs = make(map[string][]byte)
	return nil
}

type stubFetcher struct {
	docs  map[string][]byte
	calls []string
	err   error
}

func (f *stubFetcher) Fetch(sigil string) ([]byte, error) {
	f.calls = append(f.calls, sigil)
	if f.err != nil {
		return nil, f.err
	}
	doc, ok := f.docs[sigil]
	if !ok {
		// Unknown sigils still answer 200 with an error document; only wire
		// sigils the test did not set up end here.
		return nil, fmt.Errorf("unexpected fetch for %s", sigil)
	}
	return doc, nil
}

func newTestLoader(docs map[string][]byte) (*Loader, *memStore, *stubFetcher) {
	store := newMemStore()
	fetcher := &stubFetcher{docs: docs}
	return NewLoader(store, fetcher), store, fetcher
}

func TestLoadEmptyBatch(t *testing.T) {
	loader, store, fetcher := newTestLoader(nil)

	groups, err := loader.Load()
	require.NoError(t, err)
	assert.Empty(t, groups)

	// No cache or network activity at all.
	assert.Zero(t, store.gets)
	assert.Empty(t, fetcher.calls)
}

func TestLoadPreservesRequestOrder(t *testing.T) {
	loader, _, _ := newTestLoader(map[string][]byte{
		"MTH1101": courseDoc("MTH1101", "Calcul I"),
		"MTH1102": courseDoc("MTH1102", "Calcul II"),
	})

	groups, err := loader.Load(
		Request{Sigil: "MTH1101", Type: Theory, Group: 1},
		Request{Sigil: "MTH1101", Type: Lab, Group: 1},
		Request{Sigil: "MTH1102", Type: Theory, Group: 2},
	)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "MTH1101", groups[0].Sigil)
	assert.Equal(t, Theory, groups[0].Type)
	assert.Equal(t, 1, groups[0].Group)

	assert.Equal(t, "MTH1101", groups[1].Sigil)
	assert.Equal(t, Lab, groups[1].Type)
	assert.Equal(t, 1, groups[1].Group)

	assert.Equal(t, "MTH1102", groups[2].Sigil)
	assert.Equal(t, Theory, groups[2].Type)
	assert.Equal(t, 2, groups[2].Group)
	require.NotNil(t, groups[2].Title)
	assert.Equal(t, "Calcul II", *groups[2].Title)
}

func TestLoadHitsCacheOnSecondRequest(t *testing.T) {
	loader, _, fetcher := newTestLoader(map[string][]byte{
		"MTH1101": courseDoc("MTH1101", "Calcul I"),
	})

	_, err := loader.Load(Request{Sigil: "MTH1101", Type: Theory, Group: 1})
	require.NoError(t, err)
	_, err = loader.Load(Request{Sigil: "MTH1101", Type: Theory, Group: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"MTH1101"}, fetcher.calls)
}

func TestLoadAggregatesValidationErrors(t *testing.T) {
	loader, _, _ := newTestLoader(map[string][]byte{
		"MTH1101": courseDoc("MTH1101", "Calcul I"),
		"ZZZ9999": []byte(errorDoc),
	})

	_, err := loader.Load(
		Request{Sigil: "MTH1101", Type: Theory, Group: 1},
		Request{Sigil: "ZZZ9999", Type: Theory, Group: 1},
		Request{Sigil: "MTH1101", Type: Lab, Group: 9},
	)

	var batchErr *InvalidCoursesError
	require.ErrorAs(t, err, &batchErr)
	require.Len(t, batchErr.Errors, 2)

	// Each inner error is attributable to the request that produced it, in
	// request order.
	var courseErr *NonExistingCourseError
	require.ErrorAs(t, batchErr.Errors[0], &courseErr)
	assert.Equal(t, "ZZZ9999", courseErr.CourseSigil)

	var groupErr *NonExistingGroupError
	require.ErrorAs(t, batchErr.Errors[1], &groupErr)
	assert.Equal(t, "MTH1101", groupErr.CourseSigil)
	assert.Equal(t, Lab, groupErr.Type)
	assert.Equal(t, 9, groupErr.Group)
}

func TestLoadTransportFailureAbortsImmediately(t *testing.T) {
	loader, _, fetcher := newTestLoader(nil)
	fetcher.err = errors.New("connection refused")

	_, err := loader.Load(
		Request{Sigil: "MTH1101", Type: Theory, Group: 1},
		Request{Sigil: "MTH1102", Type: Theory, Group: 1},
	)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "MTH1101", transportErr.CourseSigil)

	// Not aggregated, and the second request was never attempted.
	var batchErr *InvalidCoursesError
	assert.False(t, errors.As(err, &batchErr))
	assert.Equal(t, []string{"MTH1101"}, fetcher.calls)
}

func TestLoadEndToEnd(t *testing.T) {
	loader, _, _ := newTestLoader(map[string][]byte{
		"MTH1101": courseDoc("MTH1101", "Calcul I"),
	})

	groups, err := loader.Load(Request{Sigil: "MTH1101", Type: Theory, Group: 1})
	require.NoError(t, err)
	require.Len(t, groups, 1)

	cg := groups[0]
	assert.Equal(t, "MTH1101", cg.Sigil)
	require.NotNil(t, cg.Title)
	assert.Equal(t, "Calcul I", *cg.Title)
	assert.Equal(t, 2.0, cg.Credits)
	assert.Equal(t, 2.0, cg.WeeklyTheoryHours)
	assert.Len(t, cg.Teachers, 1)
	require.Len(t, cg.Periods, 1)
	assert.Equal(t, "A-101", cg.Periods[0].Room)
	assert.Equal(t, "Lundi", cg.Periods[0].Day)
}

func TestClearCacheDelegatesToStore(t *testing.T) {
	loader, store, _ := newTestLoader(nil)
	require.NoError(t, loader.ClearCache())
	assert.True(t, store.cleared)
}
