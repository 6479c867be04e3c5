// Package fairgo provides group-fairness metrics and training-time fairness
// penalties for binary classifiers in Go.
//
// A dataset is partitioned into an advantaged and a disadvantaged subgroup by
// a sensitive attribute, and fairgo measures how differently a classifier
// treats the two groups. The metrics are streaming accumulators, so they work
// over mini-batches and their states can be merged across parallel
// evaluation shards by plain counter addition.
//
// # Features
//
// - SPD: Statistical Parity Difference as a streaming metric
// - EOD: Equal Opportunity Difference as a streaming metric
// - FairnessLoss: differentiable decision-boundary covariance penalty (Zafar et al.)
// - Sharded parallel evaluation with per-group prediction summaries
// - Robust error handling with typed errors and stack traces
//
// # Quick Start
//
// Computing SPD over streamed batches:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/fairgo/metrics"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    spd := metrics.NewSPD()
//
//	    preds := mat.NewVecDense(4, []float64{1, 0, 1, 0})
//	    advMask := []bool{true, true, false, false}
//
//	    if err := spd.Update(preds, advMask); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("SPD: %.4f\n", spd.Compute())
//	}
//
// Adding the fairness penalty to a training objective:
//
//	penalty := loss.NewFairnessLoss(sensitiveIdx)
//	value, err := penalty.Forward(X, theta)
//	// total = primaryLoss + lambda*value
//
// # Package Layout
//
// - metrics: SPD and EOD streaming accumulators
// - loss: covariance fairness loss and its analytic gradient
// - dataset: aligned (features, labels, advantaged-mask) triples
// - eval: sharded evaluation producing a fairness report
//
// For more examples, see the examples directory.
package fairgo
