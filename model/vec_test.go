package model

import (
	"math"
	"testing"
)

func TestVec3_Norm(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	if got := v.Norm(); got != 5 {
		t.Errorf("Norm = %g, want 5", got)
	}
	if got := (Vec3{}).Norm(); got != 0 {
		t.Errorf("zero vector Norm = %g, want 0", got)
	}
}

func TestVec3_IsUnit(t *testing.T) {
	if !(Vec3{X: 1}).IsUnit(1e-9) {
		t.Errorf("(1,0,0) should be a unit vector")
	}
	d := 1 / math.Sqrt(3)
	if !(Vec3{X: d, Y: d, Z: d}).IsUnit(1e-9) {
		t.Errorf("normalized diagonal should be a unit vector")
	}
	if (Vec3{X: 2}).IsUnit(1e-9) {
		t.Errorf("(2,0,0) should not be a unit vector")
	}
	if (Vec3{}).IsUnit(1e-9) {
		t.Errorf("zero vector should not be a unit vector")
	}
}

func TestMat3_IsSymmetric(t *testing.T) {
	sym := Mat3{{1, 2, 3}, {2, 4, 5}, {3, 5, 6}}
	if !sym.IsSymmetric(1e-12) {
		t.Errorf("symmetric matrix reported as asymmetric")
	}
	asym := Mat3{{1, 2, 3}, {0, 4, 5}, {3, 5, 6}}
	if asym.IsSymmetric(1e-12) {
		t.Errorf("asymmetric matrix reported as symmetric")
	}
}

func TestMat3_IsPositiveDefinite(t *testing.T) {
	spd := Mat3{{10, 0, 0}, {0, 12, 0}, {0, 0, 14}}
	if !spd.IsPositiveDefinite() {
		t.Errorf("diagonal positive matrix should be positive definite")
	}
	indef := Mat3{{1, 0, 0}, {0, -2, 0}, {0, 0, 3}}
	if indef.IsPositiveDefinite() {
		t.Errorf("matrix with a negative eigenvalue should not be positive definite")
	}
	if (Mat3{}).IsPositiveDefinite() {
		t.Errorf("zero matrix should not be positive definite")
	}
}
