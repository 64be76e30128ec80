package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{5, 5, 5}
	got := v.Length()
	if abs(got-8.660254) > 0.0001 {
		t.Errorf("Vec3.Length() = %v, want ~8.66", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero.Normalize() = %v, want zero", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{-1, 2, 0}
	if got := a.Min(b); got != (Vec3{-1, -2, 0}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{1, 2, 3}) {
		t.Errorf("Max = %v", got)
	}
}
