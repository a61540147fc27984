package snapshot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const podYAML = `apiVersion: v1
kind: Pod
metadata:
  name: etcd-master-0
  namespace: openshift-etcd
  creationTimestamp: "2020-06-04T20:00:00Z"
  labels:
    app: etcd
spec:
  containers:
  - name: etcd
    image: quay.io/openshift/etcd
status:
  phase: Running
`

// Three trailing lines of capture garbage. The first one alone is invalid,
// so every prefix that still contains it fails to parse.
const garbageTail = `garbage: [unterminated
}}}
- {broken
`

type recordedLoad struct {
	outcome Outcome
	skipped int
}

type fakeRecorder struct {
	mu    sync.Mutex
	loads []recordedLoad
}

func (f *fakeRecorder) RecordLoad(outcome Outcome, linesSkipped int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, recordedLoad{outcome, linesSkipped})
}

func newTestLoader(warn bool) (*Loader, *bytes.Buffer, *fakeRecorder) {
	diag := &bytes.Buffer{}
	rec := &fakeRecorder{}
	return NewLoader(Options{PrintWarnings: warn, Diagnostics: diag, Metrics: rec}), diag, rec
}

func TestLoad_WellFormed(t *testing.T) {
	for _, warn := range []bool{true, false} {
		loader, diag, rec := newTestLoader(warn)

		res, err := loader.Load("pods.yaml", []byte(podYAML))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if res.Recovered() || res.LinesSkipped != 0 {
			t.Errorf("LinesSkipped = %d, want 0", res.LinesSkipped)
		}
		if diag.Len() != 0 {
			t.Errorf("diagnostics = %q, want none (warn=%v)", diag.String(), warn)
		}
		if got := LookupString(res.Tree, "metadata", "name"); got != "etcd-master-0" {
			t.Errorf("metadata.name = %q, want %q", got, "etcd-master-0")
		}
		if len(rec.loads) != 1 || rec.loads[0].outcome != OutcomeClean {
			t.Errorf("recorded = %+v, want one clean load", rec.loads)
		}
	}
}

func TestLoad_TrailingGarbage(t *testing.T) {
	loader, diag, rec := newTestLoader(true)
	doc := podYAML + garbageTail
	total := strings.Count(doc, "\n")

	res, err := loader.Load("pods.yaml", []byte(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if res.LinesSkipped != 3 {
		t.Errorf("LinesSkipped = %d, want 3", res.LinesSkipped)
	}
	if res.LinesTotal != total {
		t.Errorf("LinesTotal = %d, want %d", res.LinesTotal, total)
	}

	clean, err := decode([]byte(podYAML))
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}
	if diff := cmp.Diff(clean, res.Tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	want := "[WARN] Skipped 3/" + strconv.Itoa(total) + " lines from the end of pods.yaml to the load the yaml file properly\n"
	if diag.String() != want {
		t.Errorf("diagnostics = %q, want %q", diag.String(), want)
	}
	if len(rec.loads) != 1 || rec.loads[0] != (recordedLoad{OutcomeRecovered, 3}) {
		t.Errorf("recorded = %+v, want one recovered load with 3 lines", rec.loads)
	}
}

func TestLoad_TrailingGarbageWithoutWarnings(t *testing.T) {
	loader, diag, _ := newTestLoader(false)

	res, err := loader.Load("pods.yaml", []byte(podYAML+garbageTail))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.LinesSkipped != 3 {
		t.Errorf("LinesSkipped = %d, want 3", res.LinesSkipped)
	}
	if diag.Len() != 0 {
		t.Errorf("diagnostics = %q, want none", diag.String())
	}
}

func TestLoad_PartialLastLine(t *testing.T) {
	loader, _, _ := newTestLoader(false)
	doc := podYAML + `  message: "container was half-wri`

	res, err := loader.Load("pods.yaml", []byte(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.LinesSkipped != 1 {
		t.Errorf("LinesSkipped = %d, want 1", res.LinesSkipped)
	}
	if got := LookupString(res.Tree, "status", "phase"); got != "Running" {
		t.Errorf("status.phase = %q, want %q", got, "Running")
	}
}

func TestLoad_Unrecoverable(t *testing.T) {
	doc := "key: [\n- ]\n}}}\n"

	tests := []struct {
		name     string
		warn     bool
		wantDiag string
	}{
		{"with warnings", true, "[ERROR] Invalid yaml file. Parsing error in must-gather/broken.yaml\n"},
		{"without warnings", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, diag, rec := newTestLoader(tt.warn)

			res, err := loader.Load("must-gather/broken.yaml", []byte(doc))
			if res != nil {
				t.Errorf("Load() result = %+v, want nil", res)
			}
			if !errors.Is(err, ErrUnrecoverable) {
				t.Fatalf("Load() error = %v, want ErrUnrecoverable", err)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Load() error type = %T, want *ParseError", err)
			}
			if perr.Name != "broken.yaml" || perr.Path != "must-gather/broken.yaml" {
				t.Errorf("ParseError name/path = %q/%q", perr.Name, perr.Path)
			}
			if perr.LinesTotal != 3 {
				t.Errorf("LinesTotal = %d, want 3", perr.LinesTotal)
			}
			if perr.Err == nil {
				t.Error("ParseError.Err should hold the parser error")
			}

			if diag.String() != tt.wantDiag {
				t.Errorf("diagnostics = %q, want %q", diag.String(), tt.wantDiag)
			}
			if len(rec.loads) != 1 || rec.loads[0].outcome != OutcomeFailed {
				t.Errorf("recorded = %+v, want one failed load", rec.loads)
			}
		})
	}
}

func TestLoad_SingleBadLine(t *testing.T) {
	loader, diag, _ := newTestLoader(true)

	_, err := loader.Load("one.yaml", []byte("{{{"))
	if !errors.Is(err, ErrUnrecoverable) {
		t.Fatalf("Load() error = %v, want ErrUnrecoverable", err)
	}
	if strings.Count(diag.String(), "\n") != 1 {
		t.Errorf("diagnostics = %q, want exactly one line", diag.String())
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	loader, _, _ := newTestLoader(true)

	res, err := loader.Load("empty.yaml", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Tree != nil {
		t.Errorf("Tree = %v, want nil", res.Tree)
	}
}

func TestLoad_MultipleDocuments(t *testing.T) {
	loader, _, _ := newTestLoader(false)
	doc := "a: 1\nb: 2\n---\nc: 3\n"

	res, err := loader.Load("multi.yaml", []byte(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !res.Recovered() {
		t.Error("Recovered() = false, want true")
	}
	want := map[string]any{"a": 1, "b": 2}
	if diff := cmp.Diff(Tree(want), res.Tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	loader, _, _ := newTestLoader(false)
	doc := []byte(podYAML + garbageTail)

	first, err := loader.Load("pods.yaml", doc)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := loader.Load("pods.yaml", doc)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ (-first +second):\n%s", diff)
	}
}

func TestLoad_DuplicateKeyTruncates(t *testing.T) {
	loader, diag, _ := newTestLoader(true)

	// Duplicate mapping keys are a decode error, so the later entry is cut
	// off rather than overriding the first.
	res, err := loader.Load("dup.yaml", []byte("a: 1\na: 2\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Tree(map[string]any{"a": 1}), res.Tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
	if res.LinesSkipped != 1 || res.LinesTotal != 2 {
		t.Errorf("skipped %d/%d lines, want 1/2", res.LinesSkipped, res.LinesTotal)
	}

	want := "[WARN] Skipped 1/2 lines from the end of dup.yaml to the load the yaml file properly\n"
	if diag.String() != want {
		t.Errorf("diagnostics = %q, want %q", diag.String(), want)
	}
}

func TestLoad_RejectsCustomTags(t *testing.T) {
	loader, _, _ := newTestLoader(false)
	doc := "obj: !!python/object:os.system [\"echo hi\"]\n"

	// Unknown tags never map to Go types; the value stays plain data or fails.
	res, err := loader.Load("tags.yaml", []byte(doc))
	if err != nil {
		if !errors.Is(err, ErrUnrecoverable) {
			t.Fatalf("Load() error = %v", err)
		}
		return
	}
	v, _ := Lookup(res.Tree, "obj")
	if _, ok := v.([]any); !ok {
		t.Errorf("obj = %T, want plain sequence", v)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nodes.yaml")
	if err := os.WriteFile(path, []byte(podYAML+garbageTail), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	loader, diag, _ := newTestLoader(true)
	res, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if res.LinesSkipped != 3 {
		t.Errorf("LinesSkipped = %d, want 3", res.LinesSkipped)
	}
	if !strings.Contains(diag.String(), "end of nodes.yaml to the load") {
		t.Errorf("diagnostics = %q, want base name of the file", diag.String())
	}

	tree, err := LoadFile(path, false)
	if err != nil {
		t.Fatalf("package LoadFile() error = %v", err)
	}
	if diff := cmp.Diff(res.Tree, tree); diff != "" {
		t.Errorf("tree mismatch (-loader +package):\n%s", diff)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	loader, _, _ := newTestLoader(true)

	_, err := loader.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadFile() should fail for a missing file")
	}
	if errors.Is(err, ErrUnrecoverable) {
		t.Error("read failures must not be reported as ErrUnrecoverable")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoader_Concurrent(t *testing.T) {
	loader, diag, rec := newTestLoader(true)
	doc := []byte(podYAML + garbageTail)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := loader.Load("pods.yaml", doc); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := strings.Count(diag.String(), "[WARN]"); got != 8 {
		t.Errorf("warnings = %d, want 8", got)
	}
	if len(rec.loads) != 8 {
		t.Errorf("recorded loads = %d, want 8", len(rec.loads))
	}
}

func TestLineEnds(t *testing.T) {
	tests := []struct {
		input string
		want  []int
	}{
		{"", []int{}},
		{"a", []int{1}},
		{"a\n", []int{1}},
		{"a\nbc", []int{1, 4}},
		{"a\nbc\n", []int{1, 4}},
		{"\n\n", []int{0, 1}},
	}

	for _, tt := range tests {
		got := lineEnds([]byte(tt.input))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("lineEnds(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}
