package lqr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefiniteTol is the relative tolerance used by the definiteness and
	// symmetry tests: it is scaled by the largest |entry| (symmetry) or the
	// largest |eigenvalue| (definiteness). Only the all-zero matrix falls
	// back to DefiniteTol as an absolute tolerance.
	DefiniteTol = 1e-8

	// PinvRcond is the cutoff for small singular values, relative to the
	// largest one, used by PseudoInverse.
	PinvRcond = 1e-15
)

// PseudoInverse returns the Moore-Penrose pseudo-inverse of m computed from
// its thin SVD. Singular values at or below PinvRcond*σmax are treated as zero,
// so the result is finite for any finite input, including the zero matrix.
func PseudoInverse(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(c, r, nil)

	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDThin) {
		return out
	}
	s := svd.Values(nil)
	if len(s) == 0 || s[0] == 0 {
		return out
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	cutoff := PinvRcond * s[0]
	vs := mat.NewDense(c, len(s), nil)
	for j, sv := range s {
		if sv <= cutoff {
			continue
		}
		for i := 0; i < c; i++ {
			vs.Set(i, j, v.At(i, j)/sv)
		}
	}
	out.Mul(vs, u.T())
	return out
}

// IsSymmetric reports whether m is square and m == m' within DefiniteTol
// relative to its largest entry. Scaling m by any positive factor does not
// change the result.
func IsSymmetric(m mat.Matrix) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	tol := relTol(maxAbs(m))
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > tol {
				return false
			}
		}
	}
	return true
}

// IsPositiveSemiDefinite reports whether m is symmetric with every
// eigenvalue >= -tol.
func IsPositiveSemiDefinite(m mat.Matrix) bool {
	vals, ok := symEigenvalues(m)
	if !ok {
		return false
	}
	tol := eigenTol(vals)
	for _, v := range vals {
		if v < -tol {
			return false
		}
	}
	return true
}

// IsPositiveDefinite reports whether m is symmetric with every
// eigenvalue > tol.
func IsPositiveDefinite(m mat.Matrix) bool {
	vals, ok := symEigenvalues(m)
	if !ok {
		return false
	}
	tol := eigenTol(vals)
	for _, v := range vals {
		if v <= tol {
			return false
		}
	}
	return true
}

func symEigenvalues(m mat.Matrix) ([]float64, bool) {
	if !IsSymmetric(m) {
		return nil, false
	}
	var es mat.EigenSym
	if !es.Factorize(symmetrize(m), false) {
		return nil, false
	}
	return es.Values(nil), true
}

func eigenTol(vals []float64) float64 {
	largest := 0.0
	for _, v := range vals {
		largest = math.Max(largest, math.Abs(v))
	}
	return relTol(largest)
}

// relTol scales DefiniteTol by scale, keeping an absolute floor only for
// the zero matrix.
func relTol(scale float64) float64 {
	if scale == 0 {
		return DefiniteTol
	}
	return DefiniteTol * scale
}

// symmetrize returns (m + m')/2.
func symmetrize(m mat.Matrix) *mat.SymDense {
	n, _ := m.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}
	return s
}

func maxAbs(m mat.Matrix) float64 {
	r, c := m.Dims()
	out := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = math.Max(out, math.Abs(m.At(i, j)))
		}
	}
	return out
}

func isFinite(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// isEmpty reports a nil interface, a typed nil of one of gonum's concrete
// matrix types (or a transpose of one) or a zero-sized matrix. Other
// Matrix implementations must be non-nil.
func isEmpty(m mat.Matrix) bool {
	switch d := m.(type) {
	case nil:
		return true
	case mat.Transpose:
		return isEmpty(d.Matrix)
	case *mat.Dense:
		return d == nil || d.IsEmpty()
	case *mat.SymDense:
		return d == nil || d.IsEmpty()
	case *mat.VecDense:
		return d == nil || d.IsEmpty()
	case *mat.TriDense:
		return d == nil || d.IsEmpty()
	case *mat.DiagDense:
		if d == nil {
			return true
		}
	case *mat.BandDense:
		if d == nil {
			return true
		}
	case *mat.SymBandDense:
		if d == nil {
			return true
		}
	case *mat.TriBandDense:
		if d == nil {
			return true
		}
	}
	r, c := m.Dims()
	return r == 0 || c == 0
}
