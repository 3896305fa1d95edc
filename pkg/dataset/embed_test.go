package dataset

import (
	"errors"
	"testing"
	"time"

	"github.com/oscillab/oscillab/pkg/series"
)

func TestTimeDelayEmbed(t *testing.T) {
	f := makeFrame(t, 10)

	embedded, err := TimeDelayEmbed(f, 3)
	if err != nil {
		t.Fatalf("TimeDelayEmbed() error = %v", err)
	}

	if got := embedded.Len(); got != 8 {
		t.Fatalf("Len() = %d, want 8", got)
	}
	cols := embedded.Columns()
	want := []string{"0", "1", "2"}
	for j := range want {
		if cols[j] != want[j] {
			t.Errorf("Columns()[%d] = %q, want %q", j, cols[j], want[j])
		}
	}

	for k := range embedded.Len() {
		for j := range 3 {
			if got := embedded.At(k, j); got != float64(k+j) {
				t.Errorf("At(%d, %d) = %v, want %v", k, j, got, k+j)
			}
		}
		if !embedded.Time(k).Equal(f.Time(k)) {
			t.Errorf("Time(%d) = %v, want window start %v", k, embedded.Time(k), f.Time(k))
		}
	}
}

func TestTimeDelayEmbed_WindowEqualsFrame(t *testing.T) {
	f := makeFrame(t, 4)

	embedded, err := TimeDelayEmbed(f, 4)
	if err != nil {
		t.Fatalf("TimeDelayEmbed() error = %v", err)
	}
	if got := embedded.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if got := embedded.At(0, 3); got != 3 {
		t.Errorf("At(0, 3) = %v, want 3", got)
	}
}

func TestTimeDelayEmbed_Errors(t *testing.T) {
	f := makeFrame(t, 5)

	if _, err := TimeDelayEmbed(nil, 3); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("TimeDelayEmbed(nil) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := TimeDelayEmbed(f, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("TimeDelayEmbed(ws=0) error = %v, want ErrInvalidParameter", err)
	}
	if _, err := TimeDelayEmbed(f, 6); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("TimeDelayEmbed(ws>rows) error = %v, want ErrInvalidParameter", err)
	}

	base := time.Unix(0, 0).UTC()
	wide, err := series.New(
		[]time.Time{base, base.Add(time.Second)},
		[]string{"a", "b"},
		[][]float64{{1, 2}, {3, 4}},
	)
	if err != nil {
		t.Fatalf("series.New() error = %v", err)
	}
	if _, err := TimeDelayEmbed(wide, 2); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("TimeDelayEmbed(multivariate) error = %v, want ErrInvalidParameter", err)
	}
}
