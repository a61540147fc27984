package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const podListYAML = `apiVersion: v1
kind: PodList
items:
- metadata:
    name: a
- metadata:
    name: b
`

func mustDecode(t *testing.T, doc string) Tree {
	t.Helper()
	tree, err := decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}
	return tree
}

func TestLookup(t *testing.T) {
	tree := mustDecode(t, podYAML)

	tests := []struct {
		name   string
		path   []string
		want   string
		wantOK bool
	}{
		{"nested string", []string{"metadata", "namespace"}, "openshift-etcd", true},
		{"deep label", []string{"metadata", "labels", "app"}, "etcd", true},
		{"missing key", []string{"metadata", "uid"}, "", false},
		{"through scalar", []string{"kind", "name"}, "", false},
		{"through sequence", []string{"spec", "containers", "name"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Lookup(tree, tt.path...)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && v != tt.want {
				t.Errorf("Lookup(%v) = %v, want %v", tt.path, v, tt.want)
			}
		})
	}

	if v, ok := Lookup(tree); !ok || v == nil {
		t.Error("Lookup() with empty path should return the root")
	}
}

func TestLookupString(t *testing.T) {
	tree := mustDecode(t, "a: 3\nb: true\nc: [1]\nd: null\n")

	tests := []struct {
		key  string
		want string
	}{
		{"a", "3"},
		{"b", "true"},
		{"c", ""},
		{"d", ""},
		{"missing", ""},
	}

	for _, tt := range tests {
		if got := LookupString(tree, tt.key); got != tt.want {
			t.Errorf("LookupString(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestItems(t *testing.T) {
	list := Items(mustDecode(t, podListYAML))
	if len(list) != 2 {
		t.Fatalf("Items() len = %d, want 2", len(list))
	}
	if got := LookupString(list[1], "metadata", "name"); got != "b" {
		t.Errorf("second item name = %q, want %q", got, "b")
	}

	single := Items(mustDecode(t, podYAML))
	if len(single) != 1 {
		t.Fatalf("Items() len = %d, want 1", len(single))
	}

	if got := Items(nil); got != nil {
		t.Errorf("Items(nil) = %v, want nil", got)
	}

	empty := Items(mustDecode(t, "kind: List\nitems: []\n"))
	if len(empty) != 0 {
		t.Errorf("Items() len = %d, want 0", len(empty))
	}
}

func TestNormalize(t *testing.T) {
	tree := mustDecode(t, "labels:\n  1: one\n  true: yes\nitems:\n- {a: 1}\n")

	got := Normalize(tree)
	want := map[string]any{
		"labels": map[string]any{"1": "one", "true": "yes"},
		"items":  []any{map[string]any{"a": 1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}

	if _, err := json.Marshal(got); err != nil {
		t.Errorf("json.Marshal(Normalize()) error = %v", err)
	}
}

func TestNormalize_Scalars(t *testing.T) {
	for _, v := range []any{nil, "x", 3, 1.5, false} {
		if got := Normalize(v); got != v {
			t.Errorf("Normalize(%v) = %v", v, got)
		}
	}
}
