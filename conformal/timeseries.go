package conformal

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/LacombeLouis/MAPIE/core/model"
	"github.com/LacombeLouis/MAPIE/core/parallel"
	"github.com/LacombeLouis/MAPIE/linear"
	"github.com/LacombeLouis/MAPIE/pkg/errors"
	"github.com/LacombeLouis/MAPIE/pkg/log"
)

// Method selects the interval-construction rule.
type Method string

const (
	// MethodNaive uses the quantile of in-sample conformity scores around
	// the full-fit point prediction.
	MethodNaive Method = "naive"

	// MethodBase (jackknife/CV "base") uses the quantile of out-of-fold
	// conformity scores around the point prediction.
	MethodBase Method = "base"

	// MethodPlus (jackknife+/CV+) builds per-candidate bounds from each
	// training observation's out-of-fold prediction and its own score.
	MethodPlus Method = "plus"

	// MethodMinmax widens MethodPlus candidates to the extreme
	// out-of-fold predictions per test row.
	MethodMinmax Method = "minmax"
)

func (m Method) valid() bool {
	switch m {
	case MethodNaive, MethodBase, MethodPlus, MethodMinmax:
		return true
	default:
		return false
	}
}

// TimeSeriesRegressor wraps a point-prediction estimator and produces
// calibrated prediction intervals for time-series regression. Row order
// carries temporal meaning: later rows are newer, and PartialFit appends
// conformity scores in arrival order.
//
// The conformity-score buffer is owned exclusively by one fitted instance;
// concurrent mutation by multiple callers is the caller's problem to
// synchronize.
type TimeSeriesRegressor struct {
	state  *model.StateManager
	logger log.Logger

	method      Method
	aggFunction AggFunction
	cv          Splitter
	nJobs       int
	scoreWindow int
	estimator   model.Estimator

	// Fitted state.
	singleEstimator model.Estimator
	estimators      []model.Estimator
	foldOf          []int      // partition plans: fold that held each row out, -1 if none
	mask            *mat.Dense // bootstrap plans: nTrain × nFolds inclusion mask
	usesMask        bool
	scores          []float64 // conformity scores, NaN where undefined
	evicted         int       // scores dropped from the front by the window
	nTrain          int
}

// Option configures a TimeSeriesRegressor.
type Option func(*TimeSeriesRegressor)

// WithEstimator sets the base point estimator. Default is a
// linear.LinearRegression. For Prefit cross-validation the estimator must
// already be fitted.
func WithEstimator(estimator model.Estimator) Option {
	return func(m *TimeSeriesRegressor) {
		m.estimator = estimator
	}
}

// WithMethod sets the interval-construction rule. Default MethodPlus.
func WithMethod(method Method) Option {
	return func(m *TimeSeriesRegressor) {
		m.method = method
	}
}

// WithAggregation sets how out-of-fold predictions are combined.
// Default AggMean.
func WithAggregation(fn AggFunction) Option {
	return func(m *TimeSeriesRegressor) {
		m.aggFunction = fn
	}
}

// WithCV sets the resampling strategy. Default is 5-fold KFold. Passing nil
// disables resampling: calibration uses in-sample residuals of the single
// full-data fit, which is the naive strategy.
func WithCV(cv Splitter) Option {
	return func(m *TimeSeriesRegressor) {
		m.cv = cv
	}
}

// WithNJobs sets the parallel worker count for per-fold fits. Values <= 0
// mean all available cores. Results are identical for any worker count.
func WithNJobs(n int) Option {
	return func(m *TimeSeriesRegressor) {
		m.nJobs = n
	}
}

// WithScoreWindow bounds the conformity-score buffer: PartialFit evicts the
// oldest scores beyond n. Zero (the default) means unbounded.
func WithScoreWindow(n int) Option {
	return func(m *TimeSeriesRegressor) {
		m.scoreWindow = n
	}
}

// WithLogger sets a structured logger. Default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(m *TimeSeriesRegressor) {
		m.logger = logger
	}
}

// NewTimeSeriesRegressor creates a TimeSeriesRegressor. Configuration is
// validated eagerly at Fit time, never silently deferred to Predict.
func NewTimeSeriesRegressor(options ...Option) *TimeSeriesRegressor {
	m := &TimeSeriesRegressor{
		state:       model.NewStateManager(),
		logger:      log.Discard,
		method:      MethodPlus,
		aggFunction: AggMean,
		cv:          NewKFold(5),
		estimator:   linear.NewLinearRegression(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *TimeSeriesRegressor) isPrefit() bool {
	switch m.cv.(type) {
	case Prefit, *Prefit:
		return true
	default:
		return false
	}
}

// validateParams rejects invalid configuration before any fitting happens.
func (m *TimeSeriesRegressor) validateParams() error {
	if !m.method.valid() {
		return errors.NewValidationError("method", "must be one of naive, base, plus, minmax", string(m.method))
	}
	if !m.aggFunction.valid() {
		return errors.NewValidationError("agg_function", "value is not correct", string(m.aggFunction))
	}
	if m.estimator == nil {
		return errors.NewValidationError("estimator", "must not be nil", nil)
	}
	if m.aggFunction == AggNone {
		if _, ok := m.cv.(*BlockBootstrap); ok {
			return errors.NewValueError("Fit",
				"you need to specify an aggregation function when cv resamples the training set")
		}
		if m.cv != nil && !m.isPrefit() {
			return errors.NewValueError("Fit",
				"if ensemble predictions are used, the aggregation function has to be defined")
		}
	}
	return nil
}

// fitConfig holds per-call Fit options.
type fitConfig struct {
	sampleWeight []float64
}

// FitOption configures a single Fit call.
type FitOption func(*fitConfig)

// WithSampleWeight supplies per-sample training weights. Constant positive
// weights of any magnitude do not change the result.
func WithSampleWeight(w []float64) FitOption {
	return func(c *fitConfig) {
		c.sampleWeight = w
	}
}

// Fit calibrates the regressor on X and the column vector y: it fits the
// base estimator, runs the resampling plan, and computes one conformity
// score per training observation. Rows never held out by the plan get a
// missing score and raise a ResamplingWarning; the call still succeeds.
func (m *TimeSeriesRegressor) Fit(X, y mat.Matrix, options ...FitOption) error {
	var cfg fitConfig
	for _, opt := range options {
		opt(&cfg)
	}

	n, d := X.Dims()
	yRows, yCols := y.Dims()
	if n == 0 {
		return errors.Wrap(errors.ErrEmptyData, "TimeSeriesRegressor.Fit")
	}
	if yRows != n {
		return errors.NewDimensionError("TimeSeriesRegressor.Fit", n, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("TimeSeriesRegressor.Fit", 1, yCols, 1)
	}
	if cfg.sampleWeight != nil && len(cfg.sampleWeight) != n {
		return errors.NewDimensionError("TimeSeriesRegressor.Fit", n, len(cfg.sampleWeight), 0)
	}
	if err := m.validateParams(); err != nil {
		return err
	}

	m.resetFittedState()
	m.nTrain = n

	if m.isPrefit() {
		// The estimator was trained externally; the whole dataset is the
		// calibration set.
		m.singleEstimator = m.estimator
		pred, err := m.singleEstimator.Predict(X)
		if err != nil {
			return errors.Wrap(err, "TimeSeriesRegressor.Fit: prefit calibration")
		}
		m.scores = absResiduals(y, pred)
		m.applyScoreWindow()
		m.finishFit(n, d, 0)
		return nil
	}

	single := m.estimator.CloneEstimator()
	if err := single.FitWeighted(X, y, cfg.sampleWeight); err != nil {
		return errors.Wrap(err, "TimeSeriesRegressor.Fit: full fit")
	}
	m.singleEstimator = single

	if m.cv == nil {
		// Naive calibration on in-sample residuals.
		pred, err := m.singleEstimator.Predict(X)
		if err != nil {
			return err
		}
		m.scores = absResiduals(y, pred)
		m.applyScoreWindow()
		m.finishFit(n, d, 0)
		return nil
	}

	folds, err := m.cv.Split(n)
	if err != nil {
		return err
	}

	ests, oofPreds, err := m.runFoldWorkers(X, y, cfg.sampleWeight, folds)
	if err != nil {
		return err
	}
	m.estimators = ests

	_, m.usesMask = m.cv.(*BlockBootstrap)
	oof := make([]float64, n)
	for i := range oof {
		oof[i] = math.NaN()
	}

	if m.usesMask {
		m.mask = inclusionMask(n, folds)
		for i := 0; i < n; i++ {
			row := make([]float64, 0, len(folds))
			for j := range folds {
				if v, ok := oofPreds[j][i]; ok {
					row = append(row, v)
				}
			}
			oof[i] = aggregate(m.aggFunction, row)
		}
	} else {
		m.foldOf = make([]int, n)
		for i := range m.foldOf {
			m.foldOf[i] = -1
		}
		for j, fold := range folds {
			for _, i := range fold.Val {
				m.foldOf[i] = j
				oof[i] = oofPreds[j][i]
			}
		}
	}

	m.scores = make([]float64, n)
	missing := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(oof[i]) {
			m.scores[i] = math.NaN()
			missing++
			continue
		}
		m.scores[i] = math.Abs(y.At(i, 0) - oof[i])
	}
	if missing > 0 {
		warning := errors.NewResamplingWarning(missing, len(folds))
		errors.Warn(warning)
		m.logger.Warn(warning.Error(),
			log.OperationKey, log.OperationFit,
			log.NResamplingsKey, len(folds),
		)
	}

	m.applyScoreWindow()
	m.finishFit(n, d, len(folds))
	return nil
}

func (m *TimeSeriesRegressor) resetFittedState() {
	m.singleEstimator = nil
	m.estimators = nil
	m.foldOf = nil
	m.mask = nil
	m.usesMask = false
	m.scores = nil
	m.evicted = 0
	m.nTrain = 0
	m.state.Reset()
}

func (m *TimeSeriesRegressor) finishFit(n, d, nFolds int) {
	m.state.SetFitted()
	m.state.SetDimensions(d, n)
	m.logger.Info("calibration completed",
		log.ModelNameKey, "TimeSeriesRegressor",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.MethodKey, string(m.method),
		log.CVKey, m.cvName(),
		log.NResamplingsKey, nFolds,
		log.WorkersKey, m.nJobs,
	)
}

func (m *TimeSeriesRegressor) cvName() string {
	if m.cv == nil {
		return "none"
	}
	return m.cv.Name()
}

// runFoldWorkers fits one estimator clone per fold in parallel and collects
// per-row out-of-fold predictions. Each fold writes only its own slot, so
// the result does not depend on the worker count.
func (m *TimeSeriesRegressor) runFoldWorkers(
	X, y mat.Matrix,
	sampleWeight []float64,
	folds []Fold,
) ([]model.Estimator, []map[int]float64, error) {
	ests := make([]model.Estimator, len(folds))
	preds := make([]map[int]float64, len(folds))
	errs := make([]error, len(folds))

	parallel.ParallelizeWorkers(len(folds), m.nJobs, func(start, end int) {
		for j := start; j < end; j++ {
			est, valPred, err := fitAndPredictOOF(m.estimator, X, y, sampleWeight, folds[j])
			if err != nil {
				errs[j] = err
				continue
			}
			ests[j] = est
			byRow := make(map[int]float64, len(folds[j].Val))
			for k, i := range folds[j].Val {
				byRow[i] = valPred[k]
			}
			preds[j] = byRow
		}
	})

	for j, err := range errs {
		if err != nil {
			return nil, nil, errors.Wrapf(err, "TimeSeriesRegressor.Fit: fold %d", j)
		}
	}
	return ests, preds, nil
}

// fitAndPredictOOF clones the estimator, fits it on the training partition,
// and predicts the validation partition. An empty validation partition
// returns an empty prediction, not an error: a bootstrap resampling may by
// chance leave no row out. A panicking estimator surfaces as a PanicError.
func fitAndPredictOOF(
	estimator model.Estimator,
	X, y mat.Matrix,
	sampleWeight []float64,
	fold Fold,
) (est model.Estimator, valPred []float64, err error) {
	defer errors.Recover(&err, "fitAndPredictOOF")

	clone := estimator.CloneEstimator()

	XTrain, yTrain := subsetRows(X, y, fold.Train)
	var wTrain []float64
	if sampleWeight != nil {
		wTrain = make([]float64, len(fold.Train))
		for k, i := range fold.Train {
			wTrain[k] = sampleWeight[i]
		}
	}
	if err := clone.FitWeighted(XTrain, yTrain, wTrain); err != nil {
		return nil, nil, err
	}

	if len(fold.Val) == 0 {
		return clone, []float64{}, nil
	}

	XVal, _ := subsetRows(X, y, fold.Val)
	pred, err := clone.Predict(XVal)
	if err != nil {
		return nil, nil, err
	}
	valPred = make([]float64, len(fold.Val))
	for k := range fold.Val {
		valPred[k] = pred.At(k, 0)
	}
	return clone, valPred, nil
}

// PartialFit appends conformity scores for newly arrived observations,
// computed against the already-fitted estimator, without refitting it.
// Callers must supply data in arrival order. When a score window is
// configured, the oldest scores are evicted to respect the bound.
func (m *TimeSeriesRegressor) PartialFit(X, y mat.Matrix) error {
	if err := m.state.RequireFitted("TimeSeriesRegressor", "PartialFit"); err != nil {
		return err
	}

	n, _ := X.Dims()
	yRows, yCols := y.Dims()
	if n == 0 {
		return errors.Wrap(errors.ErrEmptyData, "TimeSeriesRegressor.PartialFit")
	}
	if yRows != n {
		return errors.NewDimensionError("TimeSeriesRegressor.PartialFit", n, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("TimeSeriesRegressor.PartialFit", 1, yCols, 1)
	}

	pred, err := m.singleEstimator.Predict(X)
	if err != nil {
		return err
	}
	m.scores = append(m.scores, absResiduals(y, pred)...)
	m.applyScoreWindow()

	m.logger.Debug("conformity scores updated",
		log.OperationKey, log.OperationPartialFit,
		log.SamplesKey, n,
		log.ScoresKey, len(m.scores),
	)
	return nil
}

func (m *TimeSeriesRegressor) applyScoreWindow() {
	if m.scoreWindow <= 0 {
		return
	}
	for len(m.scores) > m.scoreWindow {
		m.scores = m.scores[1:]
		m.evicted++
	}
}

// ConformityScores returns a copy of the current conformity-score buffer in
// arrival order. Missing scores are NaN.
func (m *TimeSeriesRegressor) ConformityScores() []float64 {
	cp := make([]float64, len(m.scores))
	copy(cp, m.scores)
	return cp
}

// predictConfig holds per-call Predict options.
type predictConfig struct {
	alphas     []float64
	ensemble   bool
	singlePass bool
}

// PredictOption configures a single Predict call.
type PredictOption func(*predictConfig)

// WithAlpha sets the requested miscoverage levels. At least one level is
// required; passing several yields one interval pair per level, identical
// to what each level would produce alone.
func WithAlpha(alphas ...float64) PredictOption {
	return func(c *predictConfig) {
		c.alphas = append(c.alphas, alphas...)
	}
}

// WithEnsemble aggregates out-of-fold predictions into the returned point
// prediction. Interval bounds are unaffected.
func WithEnsemble(ensemble bool) PredictOption {
	return func(c *predictConfig) {
		c.ensemble = ensemble
	}
}

// WithSinglePass enables the jackknife-after-bootstrap-like single-pass
// mode: interval candidates are restricted to the most recent observation
// window instead of the full training history. Intended for streaming use.
func WithSinglePass(singlePass bool) PredictOption {
	return func(c *predictConfig) {
		c.singlePass = singlePass
	}
}

// Predict returns point predictions and calibrated intervals for X at every
// requested miscoverage level. Requesting no alpha is a usage error: there
// is no well-defined interval output without one.
func (m *TimeSeriesRegressor) Predict(X mat.Matrix, options ...PredictOption) (*mat.VecDense, *Intervals, error) {
	if err := m.state.RequireFitted("TimeSeriesRegressor", "Predict"); err != nil {
		return nil, nil, err
	}

	var cfg predictConfig
	for _, opt := range options {
		opt(&cfg)
	}
	if len(cfg.alphas) == 0 {
		return nil, nil, errors.NewValueError("Predict",
			"alpha is required to compute prediction intervals")
	}
	for _, alpha := range cfg.alphas {
		if math.IsNaN(alpha) || alpha <= 0 || alpha >= 1 {
			return nil, nil, errors.NewValueError("Predict", "alpha must be in (0, 1)")
		}
	}

	nTest, _ := X.Dims()
	predMat, err := m.singleEstimator.Predict(X)
	if err != nil {
		return nil, nil, err
	}
	yPred := mat.NewVecDense(nTest, nil)
	for i := 0; i < nTest; i++ {
		yPred.SetVec(i, predMat.At(i, 0))
	}

	intervals := newIntervals(nTest, cfg.alphas)

	quantilePath := len(m.estimators) == 0 || m.method == MethodNaive || m.method == MethodBase
	if quantilePath {
		scores := m.quantileScores(cfg.singlePass, nTest)
		for a, alpha := range cfg.alphas {
			q := nanQuantile(scores, 1-alpha, interpHigher)
			if math.IsNaN(q) {
				return nil, nil, errors.NewValueError("Predict", "no valid conformity scores available")
			}
			for i := 0; i < nTest; i++ {
				intervals.lower.Set(i, a, yPred.AtVec(i)-q)
				intervals.upper.Set(i, a, yPred.AtVec(i)+q)
			}
		}
	}

	var predMulti *mat.Dense
	if len(m.estimators) > 0 && (!quantilePath || cfg.ensemble) {
		predMulti, err = m.predMulti(X)
		if err != nil {
			return nil, nil, err
		}
	}

	if !quantilePath {
		cols, candScores := m.candidateColumns(cfg.singlePass, nTest)
		if err := m.fillCandidateBounds(intervals, predMulti, cols, candScores, cfg.alphas); err != nil {
			return nil, nil, err
		}
	}

	if cfg.ensemble && predMulti != nil {
		aggregated, err := AggregateAll(m.aggFunction, predMulti)
		if err != nil {
			return nil, nil, err
		}
		yPred = aggregated
	}

	if err := errors.CheckFinite("Predict", yPred.RawVector().Data); err != nil {
		return nil, nil, err
	}
	r, c := intervals.lower.Dims()
	if err := errors.CheckFiniteMatrix("Predict", intervals.lower, r, c); err != nil {
		return nil, nil, err
	}
	if err := errors.CheckFiniteMatrix("Predict", intervals.upper, r, c); err != nil {
		return nil, nil, err
	}

	m.logger.Debug("prediction completed",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, nTest,
		log.NAlphaKey, len(cfg.alphas),
	)
	return yPred, intervals, nil
}

// quantileScores returns the scores feeding the naive/base quantile, with
// the single-pass mode restricted to the trailing window.
func (m *TimeSeriesRegressor) quantileScores(singlePass bool, nTest int) []float64 {
	if !singlePass {
		return m.scores
	}
	w := nTest
	if w > len(m.scores) {
		w = len(m.scores)
	}
	return m.scores[len(m.scores)-w:]
}

// candidateColumns pairs training-history columns of the candidate matrix
// with their conformity scores. Full-history mode uses every training row;
// single-pass mode pairs the trailing min(nTest, nTrain, len(scores))
// columns with the most recent scores by recency.
func (m *TimeSeriesRegressor) candidateColumns(singlePass bool, nTest int) ([]int, []float64) {
	if !singlePass {
		cols := make([]int, m.nTrain)
		scores := make([]float64, m.nTrain)
		for t := 0; t < m.nTrain; t++ {
			cols[t] = t
			scores[t] = m.scoreForTrainRow(t)
		}
		return cols, scores
	}

	w := nTest
	if w > m.nTrain {
		w = m.nTrain
	}
	if w > len(m.scores) {
		w = len(m.scores)
	}
	cols := make([]int, w)
	scores := make([]float64, w)
	for k := 0; k < w; k++ {
		cols[k] = m.nTrain - w + k
		scores[k] = m.scores[len(m.scores)-w+k]
	}
	return cols, scores
}

// scoreForTrainRow maps a training row to its current buffer entry,
// accounting for front eviction. Evicted rows have no usable score.
func (m *TimeSeriesRegressor) scoreForTrainRow(t int) float64 {
	pos := t - m.evicted
	if pos < 0 || pos >= len(m.scores) {
		return math.NaN()
	}
	return m.scores[pos]
}

// fillCandidateBounds computes plus/minmax interval bounds from the
// candidate matrix: per test row, each training observation contributes an
// interval candidate, and the requested quantiles across candidates become
// the bounds.
func (m *TimeSeriesRegressor) fillCandidateBounds(
	intervals *Intervals,
	predMulti *mat.Dense,
	cols []int,
	candScores []float64,
	alphas []float64,
) error {
	nTest, _ := predMulti.Dims()

	candLow := make([]float64, len(cols))
	candUp := make([]float64, len(cols))
	for i := 0; i < nTest; i++ {
		if m.method == MethodMinmax {
			rowMin, rowMax := math.Inf(1), math.Inf(-1)
			for _, t := range cols {
				v := predMulti.At(i, t)
				if math.IsNaN(v) {
					continue
				}
				if v < rowMin {
					rowMin = v
				}
				if v > rowMax {
					rowMax = v
				}
			}
			for k := range cols {
				candLow[k] = rowMin - candScores[k]
				candUp[k] = rowMax + candScores[k]
			}
		} else {
			for k, t := range cols {
				v := predMulti.At(i, t)
				candLow[k] = v - candScores[k]
				candUp[k] = v + candScores[k]
			}
		}

		for a, alpha := range alphas {
			lo := nanQuantile(candLow, alpha, interpLower)
			up := nanQuantile(candUp, 1-alpha, interpHigher)
			if math.IsNaN(lo) || math.IsNaN(up) {
				return errors.NewValueError("Predict", "no valid interval candidates available")
			}
			intervals.lower.Set(i, a, lo)
			intervals.upper.Set(i, a, up)
		}
	}
	return nil
}

// predMulti builds the (nTest × nTrain) candidate matrix: column t holds
// predictions of X by estimators that did not see training row t. Partition
// plans map each row to its fold's estimator; bootstrap plans aggregate
// fold predictions under the inclusion mask.
func (m *TimeSeriesRegressor) predMulti(X mat.Matrix) (*mat.Dense, error) {
	nTest, _ := X.Dims()

	foldPreds := mat.NewDense(nTest, len(m.estimators), nil)
	predErrs := make([]error, len(m.estimators))
	parallel.ParallelizeWorkers(len(m.estimators), m.nJobs, func(start, end int) {
		for j := start; j < end; j++ {
			pred, err := m.estimators[j].Predict(X)
			if err != nil {
				predErrs[j] = err
				continue
			}
			for i := 0; i < nTest; i++ {
				foldPreds.Set(i, j, pred.At(i, 0))
			}
		}
	})
	for j, err := range predErrs {
		if err != nil {
			return nil, errors.Wrapf(err, "TimeSeriesRegressor.Predict: fold %d", j)
		}
	}

	if m.usesMask {
		return m.AggregateWithMask(foldPreds, m.mask)
	}

	out := mat.NewDense(nTest, m.nTrain, nil)
	for t := 0; t < m.nTrain; t++ {
		j := m.foldOf[t]
		for i := 0; i < nTest; i++ {
			if j < 0 {
				out.Set(i, t, math.NaN())
				continue
			}
			out.Set(i, t, foldPreds.At(i, j))
		}
	}
	return out, nil
}

// AggregateWithMask combines per-resampling predictions under the inclusion
// mask: entry (i, t) aggregates predictions[i, j] over the resamplings j
// that held training row t out. With no resampling (Prefit) there is
// nothing to aggregate across and the call is a configuration error.
func (m *TimeSeriesRegressor) AggregateWithMask(predictions, mask mat.Matrix) (*mat.Dense, error) {
	if m.isPrefit() {
		return nil, errors.NewValueError("AggregateWithMask",
			"there should not be aggregation of predictions if cv is 'prefit'")
	}
	switch m.aggFunction {
	case AggMean, AggMedian:
	default:
		return nil, errors.NewValidationError("agg_function", "value is not correct", string(m.aggFunction))
	}

	rows, cols := predictions.Dims()
	maskRows, maskCols := mask.Dims()
	if maskCols != cols {
		return nil, errors.NewDimensionError("AggregateWithMask", cols, maskCols, 1)
	}

	out := mat.NewDense(rows, maskRows, nil)
	selected := make([]float64, 0, cols)
	for t := 0; t < maskRows; t++ {
		for i := 0; i < rows; i++ {
			selected = selected[:0]
			for j := 0; j < cols; j++ {
				if mask.At(t, j) > 0 {
					selected = append(selected, predictions.At(i, j))
				}
			}
			out.Set(i, t, aggregate(m.aggFunction, selected))
		}
	}
	return out, nil
}

// inclusionMask records which resampling iterations held each row out:
// entry (i, j) is 1 when row i is in fold j's validation partition.
func inclusionMask(n int, folds []Fold) *mat.Dense {
	mask := mat.NewDense(n, len(folds), nil)
	for j, fold := range folds {
		for _, i := range fold.Val {
			mask.Set(i, j, 1)
		}
	}
	return mask
}

// subsetRows extracts the given rows of X and y into fresh matrices.
func subsetRows(X, y mat.Matrix, idx []int) (*mat.Dense, *mat.Dense) {
	_, d := X.Dims()
	Xs := mat.NewDense(len(idx), d, nil)
	ys := mat.NewDense(len(idx), 1, nil)
	for k, i := range idx {
		for j := 0; j < d; j++ {
			Xs.Set(k, j, X.At(i, j))
		}
		ys.Set(k, 0, y.At(i, 0))
	}
	return Xs, ys
}

// absResiduals returns |y - pred| per row; y and pred are n×1.
func absResiduals(y, pred mat.Matrix) []float64 {
	n, _ := y.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Abs(y.At(i, 0) - pred.At(i, 0))
	}
	return out
}
