package log

// Standard attribute keys for conformal-prediction operations. Using these
// keys keeps log output consistent across the library and makes it
// queryable: every fit, predict, and partial-fit emission names its model,
// operation, data shape, and resampling configuration the same way.

// Model and operation context.
const (
	// ModelNameKey identifies the estimator or wrapper type.
	// Examples: "TimeSeriesRegressor", "LinearRegression"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "partial_fit", "aggregate"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "conformal", "linear", "metrics"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows in the dataset being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in the dataset.
	FeaturesKey = "data.features"
)

// Resampling and calibration context.
const (
	// MethodKey names the interval-construction rule.
	// Values: "naive", "base", "plus", "minmax"
	MethodKey = "conformal.method"

	// CVKey names the resampling strategy in use.
	// Examples: "kfold", "loo", "blockbootstrap", "prefit"
	CVKey = "conformal.cv"

	// NResamplingsKey is the number of resampling iterations.
	NResamplingsKey = "conformal.n_resamplings"

	// NAlphaKey is the number of miscoverage levels requested.
	NAlphaKey = "conformal.n_alpha"

	// ScoresKey is the number of conformity scores currently held.
	ScoresKey = "conformal.n_scores"
)

// Performance.
const (
	// DurationMsKey records execution time in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey records the parallel worker count used for fold fits.
	WorkersKey = "perf.workers"
)

// Metrics.
const (
	// CoverageKey records empirical interval coverage in [0, 1].
	CoverageKey = "metrics.coverage"

	// WidthKey records mean interval width.
	WidthKey = "metrics.width"
)

// Standard attribute value constants for common operations.
const (
	OperationFit        = "fit"
	OperationPredict    = "predict"
	OperationPartialFit = "partial_fit"
	OperationAggregate  = "aggregate"
)
