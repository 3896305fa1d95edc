package dataset

import (
	"errors"
	"sort"
	"testing"
)

func TestSplitForecast_Sizes(t *testing.T) {
	f := makeFrame(t, 1000)

	split, err := SplitForecast(f, 100, 1, SplitOptions{TestFraction: 0.3, ValFraction: 0.1, Seed: 42}, nil)
	if err != nil {
		t.Fatalf("SplitForecast() error = %v", err)
	}

	// 300 tail rows -> 200 test windows; 700 head rows -> 600 windows,
	// 60 validation, 540 train.
	if got := split.Test.Len(); got != 200 {
		t.Errorf("Test.Len() = %d, want 200", got)
	}
	if got := split.Val.Len(); got != 60 {
		t.Errorf("Val.Len() = %d, want 60", got)
	}
	if got := split.Train.Len(); got != 540 {
		t.Errorf("Train.Len() = %d, want 540", got)
	}
}

func TestSplitForecast_Deterministic(t *testing.T) {
	f := makeFrame(t, 200)
	opts := SplitOptions{TestFraction: 0.2, ValFraction: 0.25, Seed: 7}

	a, err := SplitForecast(f, 10, 2, opts, nil)
	if err != nil {
		t.Fatalf("SplitForecast() error = %v", err)
	}
	b, err := SplitForecast(f, 10, 2, opts, nil)
	if err != nil {
		t.Fatalf("SplitForecast() error = %v", err)
	}

	ai, bi := a.Train.Indices(), b.Train.Indices()
	if len(ai) != len(bi) {
		t.Fatalf("train sizes differ: %d vs %d", len(ai), len(bi))
	}
	for i := range ai {
		if ai[i] != bi[i] {
			t.Fatalf("train indices differ at %d: %d vs %d", i, ai[i], bi[i])
		}
	}
}

func TestSplitForecast_Coverage(t *testing.T) {
	f := makeFrame(t, 100)

	split, err := SplitForecast(f, 5, 1, SplitOptions{TestFraction: 0.2, ValFraction: 0.1, Seed: 1}, nil)
	if err != nil {
		t.Fatalf("SplitForecast() error = %v", err)
	}

	// 80 head rows -> 75 windows split between train and val.
	all := append(split.Train.Indices(), split.Val.Indices()...)
	if len(all) != 75 {
		t.Fatalf("train+val windows = %d, want 75", len(all))
	}

	sort.Ints(all)
	for i, idx := range all {
		if idx != i {
			t.Fatalf("train and val do not partition the windows: position %d holds %d", i, idx)
		}
	}
}

func TestSplitForecast_InvalidOptions(t *testing.T) {
	f := makeFrame(t, 100)

	tests := []struct {
		name string
		opts SplitOptions
	}{
		{name: "negative test fraction", opts: SplitOptions{TestFraction: -0.1}},
		{name: "test fraction of one", opts: SplitOptions{TestFraction: 1.0}},
		{name: "negative val fraction", opts: SplitOptions{ValFraction: -0.5}},
		{name: "val fraction above one", opts: SplitOptions{ValFraction: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SplitForecast(f, 5, 1, tt.opts, nil); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("SplitForecast() error = %v, want ErrInvalidParameter", err)
			}
		})
	}

	if _, err := SplitForecast(nil, 5, 1, SplitOptions{}, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("SplitForecast(nil frame) error = %v, want ErrInvalidParameter", err)
	}
}

func TestSplitForecast_TestTooShortForWindows(t *testing.T) {
	f := makeFrame(t, 100)

	// 10 tail rows cannot fit a 20+1 row window.
	split, err := SplitForecast(f, 20, 1, SplitOptions{TestFraction: 0.1, Seed: 3}, nil)
	if err != nil {
		t.Fatalf("SplitForecast() error = %v", err)
	}
	if got := split.Test.Len(); got != 0 {
		t.Errorf("Test.Len() = %d, want 0", got)
	}
}

func TestSplitWindows_Sizes(t *testing.T) {
	f := makeFrame(t, 100)

	split, err := SplitWindows(f, 10, SplitOptions{TestFraction: 0.2, ValFraction: 0.1, Seed: 42}, nil)
	if err != nil {
		t.Fatalf("SplitWindows() error = %v", err)
	}

	// 20 tail rows -> 11 test windows; 80 head rows -> 71 windows,
	// 7 validation, 64 train.
	if got := split.Test.Len(); got != 11 {
		t.Errorf("Test.Len() = %d, want 11", got)
	}
	if got := split.Val.Len(); got != 7 {
		t.Errorf("Val.Len() = %d, want 7", got)
	}
	if got := split.Train.Len(); got != 64 {
		t.Errorf("Train.Len() = %d, want 64", got)
	}
}

func TestSplitWindows_SubsetsReadHeadRows(t *testing.T) {
	f := makeFrame(t, 50)

	split, err := SplitWindows(f, 5, SplitOptions{TestFraction: 0.2, ValFraction: 0.1, Seed: 9}, nil)
	if err != nil {
		t.Fatalf("SplitWindows() error = %v", err)
	}

	// Head holds rows 0..39, so every train window value stays below 40.
	for i := range split.Train.Len() {
		rows, err := split.Train.Get(i)
		if err != nil {
			t.Fatalf("Train.Get(%d) error = %v", i, err)
		}
		for _, row := range rows {
			if row[0] >= 40 {
				t.Fatalf("train window %d reaches into the test rows: %v", i, row[0])
			}
		}
	}

	// Test windows read only tail rows 40..49.
	rows, err := split.Test.Get(0)
	if err != nil {
		t.Fatalf("Test.Get(0) error = %v", err)
	}
	if got := rows[0][0]; got != 40 {
		t.Errorf("first test window starts at %v, want 40", got)
	}
}
