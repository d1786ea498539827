package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec3 is a 3-component real vector. The frame depends on context: mounting
// positions are in the satellite body frame, satellite position/velocity are
// ECEF metres.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsUnit reports whether the vector has unit length within tol.
func (v Vec3) IsUnit(tol float64) bool {
	return math.Abs(v.Norm()-1.0) <= tol
}

// Mat3 is a 3×3 real matrix in row-major order, used for the satellite
// moment of inertia.
type Mat3 [3][3]float64

// IsSymmetric reports whether the matrix equals its transpose within tol.
func (m Mat3) IsSymmetric(tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(m[i][j]-m[j][i]) > tol {
				return false
			}
		}
	}
	return true
}

// IsPositiveDefinite reports whether the matrix is symmetric positive
// definite. A physical inertia tensor always is; the loader uses this to
// flag suspicious documents. The check runs a Cholesky factorization.
func (m Mat3) IsPositiveDefinite() bool {
	if !m.IsSymmetric(1e-9) {
		return false
	}
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data = append(data, m[i][j])
		}
	}
	sym := mat.NewSymDense(3, data)
	var chol mat.Cholesky
	return chol.Factorize(sym)
}
