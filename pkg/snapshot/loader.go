package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Tree is a parsed document: map[string]any for mappings, []any for
// sequences and plain Go values for scalars.
type Tree = any

// Outcome classifies a load for metrics.
type Outcome string

const (
	// OutcomeClean means the full document parsed on the first attempt.
	OutcomeClean Outcome = "clean"
	// OutcomeRecovered means trailing lines had to be dropped.
	OutcomeRecovered Outcome = "recovered"
	// OutcomeFailed means no prefix of the document could be parsed.
	OutcomeFailed Outcome = "failed"
)

// Recorder receives one observation per load.
type Recorder interface {
	RecordLoad(outcome Outcome, linesSkipped int, duration time.Duration)
}

// Options configures a Loader.
type Options struct {
	// PrintWarnings enables the [WARN]/[ERROR] lines on Diagnostics.
	PrintWarnings bool

	// Diagnostics receives the [WARN]/[ERROR] lines (default: os.Stderr).
	Diagnostics io.Writer

	// Logger receives structured events at debug and info level, below the
	// [WARN]/[ERROR] lines (default: discarded).
	Logger *slog.Logger

	// Metrics is optional.
	Metrics Recorder
}

// Result is a successfully loaded document.
type Result struct {
	Tree Tree

	// LinesTotal is the line count of the original document. It is only
	// computed when the strict parse failed and is zero otherwise.
	LinesTotal int

	// LinesSkipped is the number of trailing lines dropped to load the document.
	LinesSkipped int
}

// Recovered reports whether lines had to be dropped.
func (r *Result) Recovered() bool {
	return r.LinesSkipped > 0
}

// Loader parses must-gather YAML documents, recovering from trailing garbage.
// A Loader is safe for concurrent use.
type Loader struct {
	opts Options
	mu   sync.Mutex // serializes writes to opts.Diagnostics
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts Options) *Loader {
	if opts.Diagnostics == nil {
		opts.Diagnostics = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{opts: opts}
}

// LoadFile reads the document at path and loads it. Read failures are
// returned as-is; only parse exhaustion yields ErrUnrecoverable.
func (l *Loader) LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", path, err)
	}
	return l.load(filepath.Base(path), path, data)
}

// Load parses data, using name in diagnostics.
func (l *Loader) Load(name string, data []byte) (*Result, error) {
	return l.load(filepath.Base(name), name, data)
}

func (l *Loader) load(name, path string, data []byte) (*Result, error) {
	start := time.Now()

	tree, err := decode(data)
	if err == nil {
		l.record(OutcomeClean, 0, start)
		return &Result{Tree: tree}, nil
	}
	firstErr := err

	ends := lineEnds(data)
	total := len(ends)
	log := l.opts.Logger.With("document", path, "lines_total", total)
	log.Debug("Strict parse failed, dropping trailing lines", "error", firstErr)

	for keep := total - 1; keep >= 1; keep-- {
		skipped := total - keep

		tree, err = decode(data[:ends[keep-1]])
		if err != nil {
			continue
		}

		log.Info("Recovered truncated document", "lines_skipped", skipped)
		if l.opts.PrintWarnings {
			l.diagnose("[WARN] Skipped %d/%d lines from the end of %s to the load the yaml file properly\n",
				skipped, total, name)
		}
		l.record(OutcomeRecovered, skipped, start)
		return &Result{Tree: tree, LinesTotal: total, LinesSkipped: skipped}, nil
	}

	log.Info("Document could not be recovered", "error", firstErr)
	if l.opts.PrintWarnings {
		l.diagnose("[ERROR] Invalid yaml file. Parsing error in %s\n", path)
	}
	l.record(OutcomeFailed, max(total-1, 0), start)
	return nil, &ParseError{Name: name, Path: path, LinesTotal: total, Err: firstErr}
}

func (l *Loader) diagnose(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.opts.Diagnostics, format, args...)
}

func (l *Loader) record(outcome Outcome, skipped int, start time.Time) {
	if l.opts.Metrics != nil {
		l.opts.Metrics.RecordLoad(outcome, skipped, time.Since(start))
	}
}

var errMultipleDocuments = errors.New("expected a single document in the stream")

// decode strictly parses a single YAML document. An empty stream is a nil tree.
func decode(data []byte) (Tree, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var tree Tree
	if err := dec.Decode(&tree); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errMultipleDocuments
		}
		return nil, err
	}

	return tree, nil
}

// lineEnds returns, for each line of data, the offset just past its content
// (before the newline). A final newline terminates the last line rather than
// starting an empty one.
func lineEnds(data []byte) []int {
	ends := make([]int, 0, bytes.Count(data, []byte{'\n'})+1)
	for i, b := range data {
		if b == '\n' {
			ends = append(ends, i)
		}
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		ends = append(ends, len(data))
	}
	return ends
}

// LoadFile loads the document at path with a default Loader.
func LoadFile(path string, printWarnings bool) (Tree, error) {
	res, err := NewLoader(Options{PrintWarnings: printWarnings}).LoadFile(path)
	if err != nil {
		return nil, err
	}
	return res.Tree, nil
}
