// Package log defines standard attribute keys for fairness evaluation operations.
//
// This file contains predefined attribute keys that provide consistency across
// all logging operations in fairgo. Using these standard keys enables better
// log analysis and monitoring of group-fairness evaluation runs.
//
// The keys follow a hierarchical naming convention (e.g., "data.samples",
// "metrics.spd") to enable structured log analysis and filtering.

package log

// Operation Context
// These attributes identify the component and operation being performed.
const (
	// OperationKey specifies the operation being performed.
	// Standard values: "update", "compute", "merge", "evaluate", "forward"
	OperationKey = "fairness.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "metrics", "loss", "eval", "dataset"
	ComponentKey = "fairness.component"

	// MetricNameKey identifies the fairness metric involved.
	// Examples: "SPD", "EOD"
	MetricNameKey = "metric.name"
)

// Data Shape and Group Characteristics
// These attributes describe the structure of the evaluated data.
const (
	// SamplesKey indicates the number of samples (rows) in the batch or dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of feature columns.
	FeaturesKey = "data.features"

	// BatchSizeKey indicates the size of streaming batches.
	BatchSizeKey = "data.batch_size"

	// ShardsKey indicates the number of parallel evaluation shards.
	ShardsKey = "data.shards"

	// AdvantagedCountKey indicates the accumulated advantaged-group total.
	AdvantagedCountKey = "group.advantaged_count"

	// DisadvantagedCountKey indicates the accumulated disadvantaged-group total.
	DisadvantagedCountKey = "group.disadvantaged_count"

	// SensitiveIdxKey records the column index of the sensitive attribute.
	SensitiveIdxKey = "group.sensitive_idx"
)

// Metric Values
// These attributes capture computed metric and loss values.
const (
	// SPDKey records the computed statistical parity difference, in [0, 1].
	SPDKey = "metrics.spd"

	// EODKey records the computed equal opportunity difference, in [0, 1].
	EODKey = "metrics.eod"

	// LossKey records the covariance fairness loss value (unbounded sign).
	LossKey = "metrics.fairness_loss"

	// ThresholdKey records the decision threshold used to binarize scores.
	ThresholdKey = "preds.threshold"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NON_BINARY_INPUT", "UNDEFINED_METRIC"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "DimensionError", "ValueError"
	ErrorTypeKey = "error.type"
)

// Standard attribute value constants for common operations.
const (
	OperationUpdate   = "update"
	OperationCompute  = "compute"
	OperationMerge    = "merge"
	OperationEvaluate = "evaluate"
	OperationForward  = "forward"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorNonBinaryInput    = "NON_BINARY_INPUT"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorUndefinedMetric   = "UNDEFINED_METRIC"
)
