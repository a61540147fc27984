package cli

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestSimpleProgressBasic(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "Inspecting")

	progress.Start(100)
	progress.Update(50)
	progress.Finish()

	output := buf.String()
	if !strings.Contains(output, "Inspecting:") {
		t.Errorf("Expected progress output to contain the label, got %q", output)
	}
	if !strings.Contains(output, "(50/100)") || !strings.Contains(output, "(100/100)") {
		t.Errorf("Expected intermediate and final counts, got %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("Finish() should end the line")
	}
}

func TestSimpleProgressDefaultLabel(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "")

	progress.Start(1)

	if !strings.Contains(buf.String(), "Progress:") {
		t.Errorf("Expected default label, got %q", buf.String())
	}
}

func TestSimpleProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "").(*SimpleProgress)

	// Start with zero total should not cause panic
	progress.Start(0)
	progress.Update(0)
	progress.Finish()

	if buf.Len() != 0 {
		t.Errorf("Expected no output for zero total, got %q", buf.String())
	}
}

func TestSimpleProgressOnlyMovesForward(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "").(*SimpleProgress)

	progress.Start(10)
	progress.Update(7)
	progress.Update(3)
	progress.Update(25)

	if progress.current != 10 {
		t.Errorf("current = %d, want 10", progress.current)
	}
	if strings.Contains(buf.String(), "(3/10)") {
		t.Error("stale update should not be rendered")
	}
}

func TestSimpleProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "")

	progress.Start(100)
	progress.Error(fmt.Errorf("test error"))

	output := buf.String()
	if !strings.Contains(output, "Error:") {
		t.Error("Expected error output to contain 'Error:'")
	}
	if !strings.Contains(output, "test error") {
		t.Error("Expected error output to contain error message")
	}
}

func TestSimpleProgressConcurrent(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "")

	progress.Start(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				progress.Update(int64(start*100 + j))
			}
		}(i)
	}
	wg.Wait()

	progress.Finish()

	if !strings.Contains(buf.String(), "(1000/1000)") {
		t.Error("Expected final progress output")
	}
}

func TestNewProgressReporterNilWriter(t *testing.T) {
	progress := NewProgressReporter(nil, "")
	if progress == nil {
		t.Fatal("NewProgressReporter(nil) should not return nil")
	}
	if sp := progress.(*SimpleProgress); sp.writer == nil {
		t.Error("writer should default to os.Stderr")
	}
}
