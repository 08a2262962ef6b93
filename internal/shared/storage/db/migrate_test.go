package db

import (
	"context"
	"io/fs"
	"testing"
)

func TestParseDirection(t *testing.T) {
	for _, in := range []string{"up", "down", "redo"} {
		dir, err := ParseDirection(in)
		if err != nil || string(dir) != in {
			t.Fatalf("ParseDirection(%q) = %q, %v", in, dir, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}

func TestMigrateWithoutDatabaseIsNoop(t *testing.T) {
	if err := Migrate(context.Background(), nil, Up); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmbeddedMigrationsCoverSchema(t *testing.T) {
	names, err := fs.Glob(migrationFiles, migrationsDir+"/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	want := map[string]bool{
		migrationsDir + "/00001_create_users.sql":   false,
		migrationsDir + "/00002_create_resumes.sql": false,
	}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("missing migration %s", n)
		}
	}
}
