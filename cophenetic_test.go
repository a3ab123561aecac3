// SPDX-License-Identifier: MIT

package phylotree

import (
	"errors"
	"math"
	"testing"
)

func TestCopheneticDistanceScenario(t *testing.T) {
	t1 := mustParse(t, "((A,B),C);")
	t2 := mustParse(t, "(A,(B,C));")
	t1.ApplyZeta(ZetaUnweightedDepth)
	t2.ApplyZeta(ZetaUnweightedDepth)

	cd, err := t1.CopheneticDistance(t2, 1)
	if err != nil {
		t.Fatalf("CopheneticDistance: %v", err)
	}
	if cd != 4 {
		t.Errorf("CD1(t1,t2) = %v, want 4", cd)
	}
}

func TestCopheneticDistanceZeroForIdenticalTrees(t *testing.T) {
	t1 := mustParse(t, "((A,B),C);")
	t1.ApplyZeta(ZetaUnweightedDepth)
	t2 := t1.Clone()

	cd, err := t1.CopheneticDistance(t2, 2)
	if err != nil {
		t.Fatalf("CopheneticDistance: %v", err)
	}
	if cd != 0 {
		t.Errorf("CD2(t,t) = %v, want 0", cd)
	}
}

func TestCopheneticDistanceRequiresZeta(t *testing.T) {
	t1 := mustParse(t, "((A,B),C);")
	t2 := mustParse(t, "((A,B),C);")
	t1.ApplyZeta(ZetaUnweightedDepth)
	// t2 never had ApplyZeta called.

	if _, err := t1.CopheneticDistance(t2, 1); !errors.Is(err, ErrZetaUnset) {
		t.Errorf("CopheneticDistance with unset zeta: err = %v, want ErrZetaUnset", err)
	}
}

func TestCopheneticDistanceRejectsSubUnitNorm(t *testing.T) {
	t1 := mustParse(t, "(A,B);")
	t2 := mustParse(t, "(A,B);")
	t1.ApplyZeta(ZetaUnweightedDepth)
	t2.ApplyZeta(ZetaUnweightedDepth)

	if _, err := t1.CopheneticDistance(t2, 0.5); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("CopheneticDistance(p=0.5): err = %v, want ErrInvalidOperation", err)
	}
}

func TestCopheneticDistanceInfinityIsSupremum(t *testing.T) {
	t1 := mustParse(t, "((A,B),C);")
	t2 := mustParse(t, "(A,(B,C));")
	t1.ApplyZeta(ZetaUnweightedDepth)
	t2.ApplyZeta(ZetaUnweightedDepth)

	cdInf, err := t1.CopheneticDistance(t2, math.Inf(1))
	if err != nil {
		t.Fatalf("CopheneticDistance(inf): %v", err)
	}
	cd1, err := t1.CopheneticDistance(t2, 1)
	if err != nil {
		t.Fatalf("CopheneticDistance(1): %v", err)
	}
	if cdInf > cd1 {
		t.Errorf("L-infinity distance %v should not exceed L1 distance %v", cdInf, cd1)
	}
}

func TestCopheneticDistanceFastAgreesWithNaive(t *testing.T) {
	t1 := mustParse(t, "(((A,B),C),D);")
	t2 := mustParse(t, "(A,(B,(C,D)));")
	t1.ApplyZeta(ZetaUnweightedDepth)
	t2.ApplyZeta(ZetaUnweightedDepth)
	t1.Precompute()
	t2.Precompute()

	for _, p := range []float64{1, 2, 3} {
		naive, err := t1.CopheneticDistance(t2, p)
		if err != nil {
			t.Fatalf("CopheneticDistance(p=%v): %v", p, err)
		}
		fast, err := t1.CopheneticDistanceFast(t2, p)
		if err != nil {
			t.Fatalf("CopheneticDistanceFast(p=%v): %v", p, err)
		}
		if naive != fast {
			t.Errorf("p=%v: naive=%v fast=%v disagree", p, naive, fast)
		}
	}
}
