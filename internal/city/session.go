package city

import (
	"context"
	"sync"
	"sync/atomic"
)

// Session ties one map session together: it serializes staleness
// tracking across aggregations and owns the single ad-hoc search marker.
//
// Each Aggregate or Search call takes the next generation number; a call
// whose generation is no longer the latest when it settles returns
// ErrSuperseded so stale results cannot overwrite newer ones.
type Session struct {
	agg      *Aggregator
	resolver *Resolver

	gen atomic.Uint64

	mu    sync.Mutex
	adhoc *Marker
}

// NewSession creates a Session over an aggregator and resolver sharing
// the session's response cache.
func NewSession(agg *Aggregator, resolver *Resolver) *Session {
	return &Session{
		agg:      agg,
		resolver: resolver,
	}
}

// Aggregate runs one aggregation under the session's staleness guard.
func (s *Session) Aggregate(ctx context.Context, q Query) (*Overview, error) {
	gen := s.gen.Add(1)

	ov, err := s.agg.Aggregate(ctx, q)
	if s.gen.Load() != gen {
		return nil, ErrSuperseded
	}
	return ov, err
}

// Search resolves a free-text query and aggregates the resolved city.
// A resolved city outside the seed list replaces the session's ad-hoc
// marker; at most one ad-hoc marker exists at a time. A failed
// resolution leaves the session untouched.
func (s *Session) Search(ctx context.Context, query string) (*ResolveResult, *Overview, error) {
	gen := s.gen.Add(1)

	res, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	if res.Marker != nil {
		s.mu.Lock()
		s.adhoc = res.Marker
		s.mu.Unlock()
	}

	q := Query{City: res.City.Name, Lat: &res.City.Lat, Lon: &res.City.Lon}
	ov, err := s.agg.Aggregate(ctx, q)
	if s.gen.Load() != gen {
		return nil, nil, ErrSuperseded
	}
	if err != nil {
		return res, nil, err
	}
	return res, ov, nil
}

// Marker returns the current ad-hoc marker, or nil when the last search
// hit the seed list or no search has happened.
func (s *Session) Marker() *Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adhoc
}
