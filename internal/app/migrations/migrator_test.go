package migrations

import (
	"testing"
	"testing/fstest"
)

func TestPendingSortsAndFiltersSQLFiles(t *testing.T) {
	files := fstest.MapFS{
		"002_indexes.sql": {Data: []byte("SELECT 1;")},
		"001_init.sql":    {Data: []byte("SELECT 1;")},
		"README.md":       {Data: []byte("notes")},
	}

	got, err := Pending(files)
	if err != nil {
		t.Fatalf("Pending returned error: %v", err)
	}
	want := []string{"001_init.sql", "002_indexes.sql"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBundledSchemaIsPresent(t *testing.T) {
	names, err := Pending(Files())
	if err != nil {
		t.Fatalf("Pending returned error: %v", err)
	}
	if len(names) == 0 || names[0] != "001_init.sql" {
		t.Fatalf("unexpected bundled files: %v", names)
	}
}

func TestVersion(t *testing.T) {
	tests := map[string]string{
		"001_init.sql":     "001",
		"sql/002_more.sql": "002",
		"plain.sql":        "plain.sql",
	}
	for in, want := range tests {
		if got := Version(in); got != want {
			t.Errorf("Version(%q) = %q, want %q", in, got, want)
		}
	}
}
