// Package eval orchestrates sharded fairness evaluation.
//
// A dataset is cut into contiguous shards, each shard owns a private pair of
// SPD/EOD accumulators, and the shard states are combined at the join point
// by counter-wise addition. Because that reduction is associative and
// commutative, shard order is irrelevant and the accumulators need no
// coordination while the shards run.
package eval

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/fairgo/dataset"
	"github.com/YuminosukeSato/fairgo/metrics"
	"github.com/YuminosukeSato/fairgo/pkg/errors"
	fairlog "github.com/YuminosukeSato/fairgo/pkg/log"
)

// PredictFunc produces thresholded binary predictions for a feature matrix.
// Predictions must align with the rows of X.
type PredictFunc func(X mat.Matrix) (*mat.VecDense, error)

// Evaluator runs a fairness evaluation over a dataset, optionally fanning
// out across parallel shards.
type Evaluator struct {
	// Shards is the number of parallel evaluation shards.
	// Values below 1 default to the number of CPUs.
	Shards int
}

// NewEvaluator creates an Evaluator with the given shard count.
func NewEvaluator(shards int) *Evaluator {
	return &Evaluator{Shards: shards}
}

// GroupSummary describes the prediction distribution of one group so callers
// can diagnose degenerate evaluations (e.g. an empty subgroup) themselves.
type GroupSummary struct {
	Count  int64
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// Report is the outcome of one evaluation run.
type Report struct {
	SPD float64
	EOD float64

	// SPDCounts and EODCounts expose the raw accumulator state; a zero
	// group total means the corresponding probability was defined as 0
	// by the max(n, 1) denominator policy.
	SPDCounts metrics.Counts
	EODCounts metrics.Counts

	Advantaged    GroupSummary
	Disadvantaged GroupSummary
}

// shardResult carries one shard's private accumulators and raw predictions.
type shardResult struct {
	spd      *metrics.SPD
	eod      *metrics.EOD
	advPreds []float64
	disPreds []float64
}

// Evaluate predicts over ds with predict and computes SPD and EOD.
//
// The dataset is split into at most Shards contiguous shards evaluated
// concurrently under the given context; cancellation aborts outstanding
// shards. If a subgroup ends up with zero samples, an UndefinedMetricWarning
// is raised through the pkg/errors warning handler and the evaluation still
// succeeds with the degenerate probability defined as 0.
func (e *Evaluator) Evaluate(ctx context.Context, ds *dataset.Dataset, predict PredictFunc) (*Report, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "eval.Evaluate")
	}
	if predict == nil {
		return nil, errors.NewValidationError("predict", "must not be nil", nil)
	}

	n := ds.Len()
	numShards := e.Shards
	if numShards < 1 {
		numShards = runtime.NumCPU()
	}
	if numShards > n {
		numShards = n
	}
	chunkSize := (n + numShards - 1) / numShards

	results := make([]shardResult, numShards)
	g, ctx := errgroup.WithContext(ctx)

	for s := 0; s < numShards; s++ {
		s := s
		start := s * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			shard, err := ds.Slice(start, end)
			if err != nil {
				return err
			}
			res, err := evaluateShard(shard, predict)
			if err != nil {
				return err
			}
			results[s] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Reduction step: plain counter addition across shard accumulators.
	spd := metrics.NewSPD()
	eod := metrics.NewEOD()
	var advPreds, disPreds []float64
	for _, res := range results {
		if res.spd == nil {
			continue
		}
		spd.Merge(res.spd)
		eod.Merge(res.eod)
		advPreds = append(advPreds, res.advPreds...)
		disPreds = append(disPreds, res.disPreds...)
	}

	report := &Report{
		SPD:           spd.Compute(),
		EOD:           eod.Compute(),
		SPDCounts:     spd.Counts(),
		EODCounts:     eod.Counts(),
		Advantaged:    summarize(advPreds),
		Disadvantaged: summarize(disPreds),
	}

	warnDegenerate("SPD", report.SPDCounts)
	warnDegenerate("EOD", report.EODCounts)

	slog.Debug("fairness evaluation finished",
		fairlog.OperationKey, fairlog.OperationEvaluate,
		fairlog.SamplesKey, n,
		fairlog.ShardsKey, numShards,
		fairlog.SPDKey, report.SPD,
		fairlog.EODKey, report.EOD,
	)

	return report, nil
}

func evaluateShard(shard *dataset.Dataset, predict PredictFunc) (shardResult, error) {
	preds, err := predict(shard.X())
	if err != nil {
		return shardResult{}, errors.Wrap(err, "eval: predict failed")
	}
	got := 0
	if preds != nil {
		got = preds.Len()
	}
	if got != shard.Len() {
		return shardResult{}, errors.NewDimensionError("eval.Evaluate", shard.Len(), got, 0)
	}

	res := shardResult{
		spd: metrics.NewSPD(),
		eod: metrics.NewEOD(),
	}
	mask := shard.AdvantagedMask()

	if err := res.spd.Update(preds, mask); err != nil {
		return shardResult{}, err
	}
	if err := res.eod.Update(preds, shard.Y(), mask); err != nil {
		return shardResult{}, err
	}

	for i := 0; i < got; i++ {
		if mask[i] {
			res.advPreds = append(res.advPreds, preds.AtVec(i))
		} else {
			res.disPreds = append(res.disPreds, preds.AtVec(i))
		}
	}
	return res, nil
}

// summarize computes descriptive statistics of one group's predictions.
// An empty group yields a zero summary rather than an error.
func summarize(preds []float64) GroupSummary {
	if len(preds) == 0 {
		return GroupSummary{}
	}

	data := stats.Float64Data(preds)
	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	minVal, _ := stats.Min(data)
	maxVal, _ := stats.Max(data)
	median, _ := stats.Median(data)

	return GroupSummary{
		Count:  int64(len(preds)),
		Mean:   mean,
		StdDev: stdDev,
		Min:    minVal,
		Max:    maxVal,
		Median: median,
	}
}

func warnDegenerate(metric string, c metrics.Counts) {
	if c.NumAdvantaged == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(metric, "no advantaged samples", 0))
	}
	if c.NumDisadvantaged == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(metric, "no disadvantaged samples", 0))
	}
}
