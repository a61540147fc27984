package bundle

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"cluster-scoped-resources/core/nodes/node-a.yaml",
		"namespaces/default/core/pods.yaml",
		"namespaces/default/core/services.yml",
		"namespaces/default/pods/app/app.log",
		".hidden/secret.yaml",
		"namespaces/default/.cache.yaml",
		"timestamp",
	} {
		writeFile(t, filepath.Join(root, name), "kind: Test\n")
	}

	tests := []struct {
		name string
		opts DiscoverOptions
		want []string
	}{
		{
			name: "defaults skip hidden entries",
			opts: DefaultDiscoverOptions(),
			want: []string{
				"cluster-scoped-resources/core/nodes/node-a.yaml",
				"namespaces/default/core/pods.yaml",
				"namespaces/default/core/services.yml",
			},
		},
		{
			name: "hidden entries included",
			opts: DiscoverOptions{Extensions: []string{".yaml"}, SkipHidden: false},
			want: []string{
				".hidden/secret.yaml",
				"cluster-scoped-resources/core/nodes/node-a.yaml",
				"namespaces/default/.cache.yaml",
				"namespaces/default/core/pods.yaml",
			},
		},
		{
			name: "extension match is case-insensitive",
			opts: DiscoverOptions{Extensions: []string{".YML"}, SkipHidden: true},
			want: []string{
				"namespaces/default/core/services.yml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discover(root, tt.opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			var rel []string
			for _, p := range got {
				r, err := filepath.Rel(root, p)
				if err != nil {
					t.Fatal(err)
				}
				rel = append(rel, filepath.ToSlash(r))
			}
			if diff := cmp.Diff(tt.want, rel); diff != "" {
				t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	writeFile(t, path, "kind: Pod\n")

	got, err := Discover(path, DefaultDiscoverOptions())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if diff := cmp.Diff([]string{path}, got); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_Missing(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), DefaultDiscoverOptions())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Discover() error = %v, want not-exist", err)
	}
}

func TestDiscover_Empty(t *testing.T) {
	got, err := Discover(t.TempDir(), DefaultDiscoverOptions())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Discover() = %v, want none", got)
	}
}
