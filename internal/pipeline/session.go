package pipeline

import "sync/atomic"

// Session implements the "last request wins" contract for callers that can
// trigger comparisons faster than they complete. Each request gets a
// strictly increasing sequence number; a result is accepted only if no
// newer request has been accepted since. There is no cancellation — a
// pipeline always runs to completion and stale output is simply discarded,
// which is cheap because the pipeline is bounded by the key and finding
// caps.
type Session struct {
	next     atomic.Uint64
	accepted atomic.Uint64
}

// Compare runs a comparison tagged with the next sequence number.
func (s *Session) Compare(in CompareInput) (*CompareResult, error) {
	seq := s.next.Add(1)
	res, err := Compare(in)
	if err != nil {
		return nil, err
	}
	res.Seq = seq
	return res, nil
}

// Accept reports whether the result with the given sequence number should
// be applied. It returns false for any result at or below the newest one
// already accepted.
func (s *Session) Accept(seq uint64) bool {
	for {
		cur := s.accepted.Load()
		if seq <= cur {
			return false
		}
		if s.accepted.CompareAndSwap(cur, seq) {
			return true
		}
	}
}
