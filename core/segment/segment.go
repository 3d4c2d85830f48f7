// Package segment implements the Segmenter (§4.3): recursive splitting of a
// query into maximal exact matches via bidirectional extension on an
// FMIndex, run concurrently over a workpool.Pool.
package segment

import (
	"context"
	"sync"

	"laus-core/alignerr"
	"laus-core/config"
	"laus-core/fmindex"
	"laus-core/nucleotide"
	"laus-core/seeds"
	"laus-core/workpool"
)

// Segment splits query into maximal intervals, finds their MEMs via
// bidirectional extension on fm, and returns the resulting SegmentVector.
// The recursion runs on pool; a single root task is submitted and the call
// blocks until the whole query is covered.
func Segment(ctx context.Context, queryID string, query []nucleotide.Code, fm *fmindex.FMIndex, cfg config.Config, pool *workpool.Pool) (seeds.SegmentVector, error) {
	if len(query) == 0 {
		return seeds.SegmentVector{}, nil
	}

	s := &segmenter{
		ctx:   ctx,
		qid:   queryID,
		query: query,
		fm:    fm,
		cfg:   cfg,
		pool:  pool,
	}
	s.pool.Submit(s.task(0, len(query)-1)).Wait()

	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

type segmenter struct {
	ctx   context.Context
	qid   string
	query []nucleotide.Code
	fm    *fmindex.FMIndex
	cfg   config.Config
	pool  *workpool.Pool

	mu  sync.Mutex
	out seeds.SegmentVector
	err error // first error observed; further tasks become no-ops
}

func (s *segmenter) failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err != nil
}

func (s *segmenter) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func (s *segmenter) emit(seg seeds.Segment) {
	s.mu.Lock()
	s.out = append(s.out, seg)
	s.mu.Unlock()
}

// task returns the recursive work-pool closure for the query sub-interval
// [start, end] (inclusive); start > end means the interval is empty.
func (s *segmenter) task(start, end int) workpool.Task {
	return func(workerID int) {
		if s.failed() {
			return
		}
		if s.ctx.Err() != nil {
			s.fail(&alignerr.Cancelled{QueryID: s.qid})
			return
		}
		if end < start {
			return
		}
		if uint32(end-start+1) < s.cfg.MinIntervalSize {
			return
		}

		seg, ok := s.findMEM(start, end)
		if !ok {
			// The center position produced no usable MEM (an ambiguous
			// base, per §4.3's edge case); recurse on either side of it
			// without recording a segment.
			m := (start + end) / 2
			s.fork(start, m-1, m+1, end)
			return
		}

		s.emit(seg)
		s.fork(start, seg.QStart-1, seg.QEnd(), end)
	}
}

// fork submits the two sub-interval tasks and waits for both, the
// recursive-enqueue-from-worker pattern the WorkPool exists for.
func (s *segmenter) fork(leftStart, leftEnd, rightStart, rightEnd int) {
	left := s.pool.SubmitFromWorker(s.task(leftStart, leftEnd))
	right := s.pool.SubmitFromWorker(s.task(rightStart, rightEnd))
	left.Wait()
	right.Wait()
}

// findMEM runs both extension orders from the center of [start,end] (§4.3
// steps 1-5) and returns the longer resulting MEM. ok is false only when the
// center base itself cannot seed a match (an ambiguous base under
// BreakOnN).
func (s *segmenter) findMEM(start, end int) (seeds.Segment, bool) {
	m := (start + end) / 2
	if s.cfg.BreakOnN && s.query[m] == nucleotide.N {
		return seeds.Segment{}, false
	}

	backFirst, ok1 := s.extendFromCenter(start, end, m, true)
	fwdFirst, ok2 := s.extendFromCenter(start, end, m, false)
	switch {
	case !ok1 && !ok2:
		return seeds.Segment{}, false
	case ok1 && !ok2:
		return backFirst, true
	case ok2 && !ok1:
		return fwdFirst, true
	default:
		if backFirst.Length >= fwdFirst.Length {
			return backFirst, true
		}
		return fwdFirst, true
	}
}

// extendFromCenter implements one of the two symmetric orderings of §4.3
// steps 2-4: backward-then-forward (backwardFirst) or forward-then-backward.
func (s *segmenter) extendFromCenter(start, end, m int, backwardFirst bool) (seeds.Segment, bool) {
	ik := s.fm.InitInterval(s.query[m])
	if ik.Empty() {
		return seeds.Segment{}, false
	}

	// ExtendBackward/ExtendForward already yield an empty interval for an N
	// (the packed reference never contains one to match against), so both
	// BreakOnN settings converge on the same loop: it simply stops the
	// instant an extension fails, whatever the cause.
	if backwardFirst {
		b := m
		for b > start {
			ext := s.fm.ExtendBackward(ik, s.query[b-1])
			if ext.Empty() {
				break
			}
			ik, b = ext, b-1
		}
		e := m
		for e < end {
			ext := s.fm.ExtendForward(ik, s.query[e+1])
			if ext.Empty() {
				break
			}
			ik, e = ext, e+1
		}
		return seeds.Segment{QStart: b, Length: e - b + 1, SAInterval: ik}, true
	}

	f := m
	for f < end {
		ext := s.fm.ExtendForward(ik, s.query[f+1])
		if ext.Empty() {
			break
		}
		ik, f = ext, f+1
	}
	st := m
	for st > start {
		ext := s.fm.ExtendBackward(ik, s.query[st-1])
		if ext.Empty() {
			break
		}
		ik, st = ext, st-1
	}
	return seeds.Segment{QStart: st, Length: f - st + 1, SAInterval: ik}, true
}
