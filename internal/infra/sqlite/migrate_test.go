package sqlite

import "testing"

func TestMigrateUpAndVersion(t *testing.T) {
	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp returned error: %v", err)
	}

	v, err := MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion returned error: %v", err)
	}
	if v < 1 {
		t.Fatalf("version = %d, want >= 1", v)
	}

	// Schema objects must exist after migration.
	for _, table := range []string{"uploads", "generations"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db, err := NewDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first MigrateUp: %v", err)
	}
	v1, _ := MigrationVersion(db)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
	v2, _ := MigrationVersion(db)

	if v1 != v2 {
		t.Fatalf("version changed on re-run: %d -> %d", v1, v2)
	}
}
