// SPDX-License-Identifier: MIT

package phylotree

import (
	"errors"
	"testing"
)

func TestParseNewickRoundTrip(t *testing.T) {
	in := "((A:0.1,B:0.2):0.3,C:0.6);"
	tr, err := ParseNewick([]byte(in))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}

	got := tr.Newick()
	if got != in {
		t.Errorf("round-trip mismatch: got %q, want %q", got, in)
	}

	taxa := tr.Taxa()
	want := map[string]bool{"A": true, "B": true, "C": true}
	if len(taxa) != len(want) {
		t.Fatalf("got %d taxa, want %d", len(taxa), len(want))
	}
	for _, name := range taxa {
		if !want[name] {
			t.Errorf("unexpected taxon %q", name)
		}
	}
}

func TestParseNewickUnderscore(t *testing.T) {
	tr, err := ParseNewick([]byte("(Homo_sapiens:1,Pan_troglodytes:1);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	if _, ok := tr.TaxonID("Homo sapiens"); !ok {
		t.Errorf("expected taxon %q", "Homo sapiens")
	}
	if _, ok := tr.TaxonID("Pan troglodytes"); !ok {
		t.Errorf("expected taxon %q", "Pan troglodytes")
	}
}

func TestParseNewickNoWeights(t *testing.T) {
	tr, err := ParseNewick([]byte("((A,B),C);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	if tr.Len() != 5 {
		t.Fatalf("expected 5 nodes, got %d", tr.Len())
	}
}

func TestParseNewickScientificNotation(t *testing.T) {
	tr, err := ParseNewick([]byte("(A:10,(B:2,C:2):1e-25);"))
	if err != nil {
		t.Fatalf("ParseNewick: %v", err)
	}
	id, ok := tr.TaxonID("B")
	if !ok {
		t.Fatal("missing taxon B")
	}
	n := tr.MustGet(id)
	w, ok := n.Weight()
	if !ok || w != 2 {
		t.Errorf("B weight = %v, %v; want 2, true", w, ok)
	}
}

func TestParseNewickErrors(t *testing.T) {
	cases := []string{
		"(A,B;",       // unbalanced parens
		"(A,B)",       // missing terminator
		"(A,B):x;",    // malformed weight
		"",            // empty input
	}
	for _, in := range cases {
		_, err := ParseNewick([]byte(in))
		if err == nil {
			t.Errorf("ParseNewick(%q): expected error, got nil", in)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseNewick(%q): error is not *ParseError: %v", in, err)
		}
	}
}

func FuzzParseNewick(f *testing.F) {
	seeds := []string{
		"((A:0.1,B:0.2):0.3,C:0.6);",
		"(A,B);",
		"((A,B),C);",
		"(A:10,(B:2,C:2):1e-25);",
		"(Homo_sapiens:1,Pan_troglodytes:1);",
		"A;",
		"();",
		"(A,B;",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, in string) {
		tr, err := ParseNewick([]byte(in))
		if err != nil {
			return // malformed input is an expected outcome, not a failure
		}

		out := tr.Newick()
		reparsed, err := ParseNewick([]byte(out))
		if err != nil {
			t.Fatalf("re-parsing emitted Newick %q failed: %v", out, err)
		}
		if !tr.Equal(reparsed) {
			t.Fatalf("round-trip mismatch: %q emitted %q, which parses back to a different tree", in, out)
		}
	})
}

func TestNewickEmitLeafTaxonUnderscore(t *testing.T) {
	tr := New(0)
	leafID, err := tr.AddChild(0, Node{}.WithTaxon("Homo sapiens"))
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	_ = leafID

	out := tr.Newick()
	want := "(Homo_sapiens);"
	if out != want {
		t.Errorf("Newick() = %q, want %q", out, want)
	}
}
