package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testTable struct {
	rows [][]string
}

func (t testTable) Header() []string { return []string{"Name", "Age"} }

func (t testTable) Rows() [][]string { return t.rows }

func TestTextFormatter(t *testing.T) {
	formatter := &TextFormatter{}
	data := "test message"

	output, err := formatter.Format(data)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	expected := "test message\n"
	if string(output) != expected {
		t.Errorf("Format() = %q, want %q", string(output), expected)
	}
}

func TestTextFormatterWriter(t *testing.T) {
	formatter := &TextFormatter{}
	buf := &bytes.Buffer{}

	if err := formatter.FormatTo(buf, "1d"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	if buf.String() != "1d\n" {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), "1d\n")
	}
}

func TestJSONFormatter(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		indent bool
	}{
		{
			name:   "simple string",
			data:   "test",
			indent: false,
		},
		{
			name: "map with indent",
			data: map[string]any{
				"kind":  "Pod",
				"items": []any{1, 2},
			},
			indent: true,
		},
		{
			name: "struct",
			data: struct {
				Name string `json:"name"`
				Age  string `json:"age"`
			}{
				Name: "web-1",
				Age:  "3d",
			},
			indent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &JSONFormatter{Indent: tt.indent}
			output, err := formatter.Format(tt.data)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Verify it's valid JSON by unmarshaling
			var result any
			if err := json.Unmarshal(output, &result); err != nil {
				t.Errorf("Format() produced invalid JSON: %v", err)
			}
		})
	}
}

func TestJSONFormatterWriter(t *testing.T) {
	formatter := &JSONFormatter{Indent: true}
	data := map[string]string{"test": "value"}
	buf := &bytes.Buffer{}

	if err := formatter.FormatTo(buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var result map[string]string
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Errorf("FormatTo() produced invalid JSON: %v", err)
	}

	if result["test"] != "value" {
		t.Errorf("FormatTo() = %v, want %v", result, data)
	}
}

func TestYAMLFormatter(t *testing.T) {
	formatter := &YAMLFormatter{}
	data := map[string]any{
		"kind": "Pod",
		"metadata": map[string]any{
			"name": "web-1",
		},
	}

	output, err := formatter.Format(data)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(string(output), "metadata:\n  name: web-1\n") {
		t.Errorf("Format() = %q, want two-space indentation", output)
	}

	var result map[string]any
	if err := yaml.Unmarshal(output, &result); err != nil {
		t.Fatalf("Format() produced invalid YAML: %v", err)
	}
	if result["kind"] != "Pod" {
		t.Errorf("kind = %v, want Pod", result["kind"])
	}
}

func TestTableFormatter(t *testing.T) {
	formatter := &TableFormatter{}
	data := testTable{rows: [][]string{
		{"web-1", "3d"},
		{"web-2", "Unknown"},
	}}

	output, err := formatter.Format(data)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Format() produced %d lines, want 3:\n%s", len(lines), output)
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "AGE") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "web-1") || !strings.Contains(lines[1], "3d") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Unknown") {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestTableFormatterUnsupported(t *testing.T) {
	formatter := &TableFormatter{}
	if _, err := formatter.Format("plain"); err == nil {
		t.Error("Format() expected error for data without a table form")
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name   string
		format OutputFormat
		want   string
	}{
		{
			name:   "text formatter",
			format: FormatText,
			want:   "*cli.TextFormatter",
		},
		{
			name:   "json formatter",
			format: FormatJSON,
			want:   "*cli.JSONFormatter",
		},
		{
			name:   "yaml formatter",
			format: FormatYAML,
			want:   "*cli.YAMLFormatter",
		},
		{
			name:   "table formatter",
			format: FormatTable,
			want:   "*cli.TableFormatter",
		},
		{
			name:   "default to text",
			format: "unknown",
			want:   "*cli.TextFormatter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewFormatter(tt.format)
			got := fmt.Sprintf("%T", formatter)
			if got != tt.want {
				t.Errorf("NewFormatter(%q) type = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, valid := range []string{"text", "json", "yaml", "table"} {
		if got, err := ParseOutputFormat(valid); err != nil || string(got) != valid {
			t.Errorf("ParseOutputFormat(%q) = %q, %v", valid, got, err)
		}
	}
	if _, err := ParseOutputFormat("csv"); err == nil {
		t.Error("ParseOutputFormat(\"csv\") expected error")
	}
}
