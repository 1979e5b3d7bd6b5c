package timeline

import "testing"

func TestSelectionReplacesPrior(t *testing.T) {
	var fired []int
	sel := NewSelection(func(i int) { fired = append(fired, i) })

	if !sel.Select(0) {
		t.Fatal("Select(0) rejected")
	}
	if !sel.Select(1) {
		t.Fatal("Select(1) rejected")
	}
	if idx, ok := sel.Index(); !ok || idx != 1 {
		t.Fatalf("Index() = %d, %v; want 1, true", idx, ok)
	}
	if !sel.IsSelected(1) || sel.IsSelected(0) {
		t.Fatal("exactly index 1 should be selected")
	}
	if len(fired) != 2 || fired[0] != 0 || fired[1] != 1 {
		t.Fatalf("scroll hook calls = %v, want [0 1]", fired)
	}
}

func TestSelectionRejectsGap(t *testing.T) {
	hookCalls := 0
	sel := NewSelection(func(int) { hookCalls++ })
	sel.Select(2)

	if sel.Select(GapIndex) {
		t.Fatal("gap sentinel selection accepted")
	}
	if idx, ok := sel.Index(); !ok || idx != 2 {
		t.Fatalf("prior selection lost: %d, %v", idx, ok)
	}
	if hookCalls != 1 {
		t.Fatalf("scroll hook fired %d times, want 1", hookCalls)
	}
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelection(nil)
	sel.Select(3)
	sel.Clear()

	if _, ok := sel.Index(); ok {
		t.Fatal("selection should be empty after Clear")
	}
	if sel.IsSelected(3) {
		t.Fatal("IsSelected(3) still true after Clear")
	}
}
