// Package pipeline wires Segmenter, StripOfConsideration and Harmonizer
// into the single eager call chain external collaborators drive per query
// (§6 "Consumed from core: Chain[] per query").
package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"laus-core/alignerr"
	"laus-core/config"
	"laus-core/fmindex"
	"laus-core/harmonize"
	"laus-core/pack"
	"laus-core/query"
	"laus-core/segment"
	"laus-core/soc"
	"laus-core/telemetry"
	"laus-core/workpool"
)

// discardLogger is substituted for a nil *logrus.Logger argument so call
// sites never need a nil check before logging.
func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Align runs the Segment → SoC → Harmonize chain for a single query against
// an already-built reference and index, honoring the Harmonizer's break
// criteria (§4.5 step 5) and the Segmenter's cancellation contract (§5).
// logger may be nil; a discard logger is substituted.
func Align(ctx context.Context, q query.Query, fm *fmindex.FMIndex, ref *pack.PackedReference, cfg config.Config, pool *workpool.Pool, logger *logrus.Logger) ([]harmonize.Chain, *telemetry.Counters, error) {
	if logger == nil {
		logger = discardLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	tel := &telemetry.Counters{}
	log := logger.WithField("query", q.ID)

	segs, err := segment.Segment(ctx, q.ID, q.Nucleotides, fm, cfg, pool)
	if err != nil {
		log.WithError(err).Error("segment failed")
		return nil, tel, err
	}
	tel.AddSegmentsProduced(int64(len(segs)))
	log.WithField("segments", len(segs)).Debug("segment complete")

	if cfg.DoReseed {
		segs = segment.Reseed(q.Nucleotides, segs, ref, fm, cfg)
	}

	pq := soc.BuildStrips(segs, fm, ref, q.Nucleotides, cfg, tel)
	log.WithField("strips", pq.Len()).Debug("strip-of-consideration complete")

	scored, err := harmonize.SelectChains(pq, len(q.Nucleotides), q.ID, cfg)
	if err != nil {
		var iv *alignerr.InvariantViolation
		if errors.As(err, &iv) {
			tel.AddInvariantViolation()
		}
		log.WithError(err).Error("harmonize failed")
		return nil, tel, err
	}
	tel.AddStripsHarmonized(int64(len(scored)))

	chains := make([]harmonize.Chain, len(scored))
	for i, sc := range scored {
		chains[i] = sc.Chain
	}
	log.WithField("chains", len(chains)).Debug("harmonize complete")

	return chains, tel, nil
}
