package migrations

import (
	"io/fs"
	"os"
	"reflect"
	"testing"
)

type fakeEntry struct {
	name string
	dir  bool
}

func (e fakeEntry) Name() string               { return e.name }
func (e fakeEntry) IsDir() bool                { return e.dir }
func (e fakeEntry) Type() fs.FileMode          { return 0 }
func (e fakeEntry) Info() (fs.FileInfo, error) { return nil, nil }

func TestMigrationVersion(t *testing.T) {
	tests := map[string]string{
		"migrations/001_init.sql":      "001",
		"002_add_indexes.sql":          "002",
		"/abs/path/010_lectures_x.sql": "010",
	}
	for path, want := range tests {
		if got := migrationVersion(path); got != want {
			t.Errorf("migrationVersion(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSQLFiles_SortedAndFiltered(t *testing.T) {
	entries := []os.DirEntry{
		fakeEntry{name: "002_seed.sql"},
		fakeEntry{name: "README.md"},
		fakeEntry{name: "001_init.sql"},
		fakeEntry{name: "archive.sql", dir: true},
	}

	got := sqlFiles(entries)
	want := []string{"001_init.sql", "002_seed.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sqlFiles() = %v, want %v", got, want)
	}
}
