package pane

import (
	"fmt"
	"testing"
)

func panesN(n int) []Pane {
	out := make([]Pane, n)
	for i := range out {
		out[i] = Pane{ID: ID(fmt.Sprintf("p%d", i))}
	}
	return out
}

func TestAssignUsesAlphabetOrder(t *testing.T) {
	got := Assign(panesN(3), nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(got))
	}
	want := []rune{'a', 's', 'd'}
	for i, a := range got {
		if a.Key != want[i] {
			t.Errorf("assignment %d: expected key %q, got %q", i, want[i], a.Key)
		}
		if a.Pane.ID != ID(fmt.Sprintf("p%d", i)) {
			t.Errorf("assignment %d: unexpected pane %q", i, a.Pane.ID)
		}
	}
}

func TestAssignSkipsReservedKeys(t *testing.T) {
	reserved := func(r rune) bool { return r == 's' }
	got := Assign(panesN(2), reserved)
	if got[0].Key != 'a' || got[1].Key != 'd' {
		t.Fatalf("expected keys a,d got %q,%q", got[0].Key, got[1].Key)
	}
}

func TestAssignDropsPanesPastAlphabet(t *testing.T) {
	n := len(Alphabet) + 4
	got := Assign(panesN(n), nil)
	if len(got) != len(Alphabet) {
		t.Fatalf("expected %d assignments, got %d", len(Alphabet), len(got))
	}
	if got[len(got)-1].Key != 'p' {
		t.Errorf("expected last key p, got %q", got[len(got)-1].Key)
	}
}

func TestAssignEmpty(t *testing.T) {
	if got := Assign(nil, nil); len(got) != 0 {
		t.Fatalf("expected no assignments, got %d", len(got))
	}
}

func TestHintLines(t *testing.T) {
	tests := []struct {
		name string
		pane Pane
		want []int
	}{
		{name: "middle of buffer", pane: Pane{Visible: Range{Start: 10, End: 20}, Lines: 100}, want: []int{9, 10, 21}},
		{name: "top of buffer", pane: Pane{Visible: Range{Start: 0, End: 5}, Lines: 100}, want: []int{0, 6}},
		{name: "whole buffer visible", pane: Pane{Visible: Range{Start: 0, End: 4}, Lines: 5}, want: []int{0}},
		{name: "unknown length", pane: Pane{Visible: Range{Start: 3, End: 3}}, want: []int{2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HintLines(tt.pane)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("HintLines() = %v, want %v", got, tt.want)
			}
		})
	}
}
