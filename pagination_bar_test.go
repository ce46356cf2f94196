package main

import (
	"testing"
)

func controlLabels(controls []pageControl) []string {
	labels := make([]string, len(controls))
	for i, ctl := range controls {
		labels[i] = ctl.label
	}
	return labels
}

func TestControlsHiddenForSinglePage(t *testing.T) {
	pb := NewPaginationBar()

	for _, total := range []int{0, 1} {
		pb.SetPageState(1, total)
		if controls := pb.controls(); controls != nil {
			t.Errorf("total %d: expected no controls, got %v", total, controlLabels(controls))
		}
	}
}

func TestControlsLayout(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected []string
	}{
		{
			name:     "small total",
			current:  2,
			total:    3,
			expected: []string{"«", "‹", "1", "2", "3", "›", "»"},
		},
		{
			name:     "near start",
			current:  2,
			total:    10,
			expected: []string{"«", "‹", "1", "2", "3", "4", "…", "10", "›", "»"},
		},
		{
			name:     "middle",
			current:  7,
			total:    10,
			expected: []string{"«", "‹", "1", "…", "6", "7", "8", "…", "10", "›", "»"},
		},
		{
			name:     "near end",
			current:  9,
			total:    10,
			expected: []string{"«", "‹", "1", "…", "7", "8", "9", "10", "›", "»"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewPaginationBar().SetPageState(tt.current, tt.total)
			labels := controlLabels(pb.controls())

			if len(labels) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, labels)
			}
			for i, label := range tt.expected {
				if labels[i] != label {
					t.Errorf("at position %d, expected %q, got %q", i, label, labels[i])
				}
			}
		})
	}
}

func TestControlsDisabledStates(t *testing.T) {
	pb := NewPaginationBar().SetPageState(1, 5)
	controls := pb.controls()

	if !controls[0].disabled || !controls[1].disabled {
		t.Errorf("expected first/prev disabled on page 1")
	}
	if controls[len(controls)-1].disabled || controls[len(controls)-2].disabled {
		t.Errorf("expected next/last enabled on page 1")
	}

	pb.SetPageState(5, 5)
	controls = pb.controls()
	if controls[0].disabled || controls[1].disabled {
		t.Errorf("expected first/prev enabled on last page")
	}
	if !controls[len(controls)-1].disabled || !controls[len(controls)-2].disabled {
		t.Errorf("expected next/last disabled on last page")
	}
}

func TestControlsEllipsisDisabled(t *testing.T) {
	pb := NewPaginationBar().SetPageState(7, 20)
	for _, ctl := range pb.controls() {
		if ctl.label == "…" && !ctl.disabled {
			t.Errorf("ellipsis segment must be display-only")
		}
	}
}

func TestControlsHitRegions(t *testing.T) {
	pb := NewPaginationBar().SetPageState(2, 3)
	controls := pb.controls()

	// Segments are packed left to right with one space between them
	x := 0
	for i, ctl := range controls {
		if ctl.x != x {
			t.Errorf("segment %d (%q): expected x %d, got %d", i, ctl.label, x, ctl.x)
		}
		if ctl.width != 1 {
			t.Errorf("segment %d (%q): expected width 1, got %d", i, ctl.label, ctl.width)
		}
		x += ctl.width + 1
	}
}

func TestControlsJumpTargets(t *testing.T) {
	pb := NewPaginationBar().SetPageState(7, 10)

	var jumps []int
	for _, ctl := range pb.controls() {
		if ctl.action == pageJump && !ctl.disabled {
			jumps = append(jumps, ctl.page)
		}
	}

	expected := []int{1, 6, 7, 8, 10}
	if len(jumps) != len(expected) {
		t.Fatalf("expected jump targets %v, got %v", expected, jumps)
	}
	for i, page := range expected {
		if jumps[i] != page {
			t.Errorf("at position %d, expected page %d, got %d", i, page, jumps[i])
		}
	}
}

func TestControlAtPosition(t *testing.T) {
	pb := NewPaginationBar().SetPageState(2, 3)
	pb.SetRect(0, 0, 40, 1)

	// Layout: « ‹ 1 2 3 › »  at x 0 2 4 6 8 10 12
	if ctl := pb.controlAtPosition(4, 0); ctl == nil || ctl.action != pageJump || ctl.page != 1 {
		t.Errorf("expected jump to page 1 at x=4, got %+v", ctl)
	}
	if ctl := pb.controlAtPosition(10, 0); ctl == nil || ctl.action != pageNext {
		t.Errorf("expected next arrow at x=10, got %+v", ctl)
	}

	// Gaps between segments are not clickable
	if ctl := pb.controlAtPosition(5, 0); ctl != nil {
		t.Errorf("expected no control in the gap, got %+v", ctl)
	}
	// Off the strip row
	if ctl := pb.controlAtPosition(4, 1); ctl != nil {
		t.Errorf("expected no control off the strip row, got %+v", ctl)
	}
}

func TestNavigateSkipsDisabled(t *testing.T) {
	fired := 0
	pb := NewPaginationBar().
		SetPageState(1, 3).
		SetNavigateFunc(func(action pageAction, page int) { fired++ })

	pb.navigate(pageControl{action: pagePrev, disabled: true})
	if fired != 0 {
		t.Errorf("disabled segment must not fire the callback")
	}

	pb.navigate(pageControl{action: pageNext})
	if fired != 1 {
		t.Errorf("expected callback to fire once, got %d", fired)
	}
}
