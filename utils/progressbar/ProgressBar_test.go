package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	var out bytes.Buffer
	bar := New(10, 4, &out)

	bar.Increment()
	bar.Increment()
	if err := bar.Display(); err != nil {
		t.Fatalf("display: %v", err)
	}
	if !strings.Contains(out.String(), "50.00%") {
		t.Errorf("expected 50.00%% in output, got %q", out.String())
	}

	bar.Add(10)
	if bar.Progress() != 1 {
		t.Errorf("expected progress to saturate at 1, got %v",
			bar.Progress())
	}
	if err := bar.Display(); err != nil {
		t.Fatalf("display: %v", err)
	}
	if !strings.Contains(out.String(), "100.00%") {
		t.Errorf("expected 100.00%% in output, got %q", out.String())
	}
}
