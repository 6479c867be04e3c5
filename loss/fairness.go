// Package loss provides differentiable fairness penalties for training-time
// regularization of linear binary classifiers.
package loss

import (
	"github.com/YuminosukeSato/fairgo/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FairnessLoss is the Decision Boundary Covariance penalty proposed in
// M. B. Zafar, I. Valera, M. Gomez Rodriguez, K. P. Gummadi (2017)
// "Fairness Constraints: Mechanisms for Fair Classification"
// (https://arxiv.org/abs/1507.05259).
//
// The penalty is the empirical covariance between the sensitive attribute
// column and the linear decision score:
//
//	loss = mean((z - mean(z)) * (X @ theta[:len-1]))
//
// where z = X[:, SensitiveIdx] and the last element of theta is a bias term
// excluded from the dot product. The value is the covariance numerator only;
// it is not normalized by standard deviations, so its magnitude scales with
// feature and weight scale. It carries no internal state and is intended to
// be added, with an external weighting coefficient, to a primary
// classification loss.
//
// The penalty only applies to linear models solving binary classification
// problems, so theta must be a flat parameter vector.
type FairnessLoss struct {
	// SensitiveIdx is the column index of the sensitive attribute in X.
	SensitiveIdx int
}

// NewFairnessLoss creates a FairnessLoss for the given sensitive attribute column.
func NewFairnessLoss(sensitiveIdx int) *FairnessLoss {
	return &FairnessLoss{SensitiveIdx: sensitiveIdx}
}

// Forward computes the covariance penalty for feature matrix X (n×d) and
// parameter vector theta (length d+1, bias last).
//
// Preconditions are rejected, never degraded: theta must be a flat vector
// with exactly one column, its length must be d+1, X must be non-empty and
// SensitiveIdx must address a column of X. A theta with more than one column
// would mean a non-linear or multi-class model, for which the covariance
// penalty yields silently-wrong gradients.
func (l *FairnessLoss) Forward(X mat.Matrix, theta mat.Matrix) (float64, error) {
	n, d, err := l.validate(X, theta)
	if err != nil {
		return 0, err
	}

	z, zMean := l.centerColumn(X, n)

	// mean over samples of (z_i - mean(z)) * (theta[:d] . x_i)
	var sum float64
	for i := 0; i < n; i++ {
		var score float64
		for j := 0; j < d; j++ {
			score += X.At(i, j) * theta.At(j, 0)
		}
		sum += (z[i] - zMean) * score
	}

	return sum / float64(n), nil
}

// Gradient computes the closed-form gradient of Forward with respect to theta:
//
//	dL/dtheta_j = mean((z - mean(z)) * X[:, j])
//
// The bias slot (last element) does not enter the score and its partial
// derivative is zero. The returned vector has the same length as theta, so a
// training loop can scale it and add it to the primary loss gradient directly.
func (l *FairnessLoss) Gradient(X mat.Matrix, theta mat.Matrix) (*mat.VecDense, error) {
	n, d, err := l.validate(X, theta)
	if err != nil {
		return nil, err
	}

	z, zMean := l.centerColumn(X, n)

	grad := mat.NewVecDense(d+1, nil)
	for j := 0; j < d; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += (z[i] - zMean) * X.At(i, j)
		}
		grad.SetVec(j, sum/float64(n))
	}
	// bias slot stays zero
	return grad, nil
}

// validate checks the linear/binary applicability preconditions and returns
// the sample count and the number of non-bias parameters.
func (l *FairnessLoss) validate(X mat.Matrix, theta mat.Matrix) (n, d int, err error) {
	if X == nil {
		return 0, 0, errors.NewValueError("FairnessLoss.Forward", "empty feature matrix")
	}
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, errors.NewValueError("FairnessLoss.Forward", "empty feature matrix")
	}

	if theta == nil {
		return 0, 0, errors.NewValidationError("theta", "must be a flat parameter vector", nil)
	}
	tRows, tCols := theta.Dims()
	if tCols != 1 {
		return 0, 0, errors.NewValidationError("theta",
			"must be a flat parameter vector; FairnessLoss supports only linear binary classifiers", tCols)
	}
	// theta carries one weight per feature plus a trailing bias
	if tRows != cols+1 {
		return 0, 0, errors.NewDimensionError("FairnessLoss.Forward", cols+1, tRows, 1)
	}

	if l.SensitiveIdx < 0 || l.SensitiveIdx >= cols {
		return 0, 0, errors.NewValidationError("SensitiveIdx",
			"must address a column of X", l.SensitiveIdx)
	}

	return rows, cols, nil
}

// centerColumn extracts the sensitive attribute column and its batch mean.
func (l *FairnessLoss) centerColumn(X mat.Matrix, n int) ([]float64, float64) {
	z := make([]float64, n)
	mat.Col(z, l.SensitiveIdx, X)
	return z, floats.Sum(z) / float64(n)
}
