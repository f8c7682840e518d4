package migration

import (
	"strings"
	"testing"
	"testing/fstest"

	"nanny-match/migrations"
)

func TestLoad_SortsAndSkipsForeignFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__answers.sql":   {Data: []byte("CREATE TABLE b (id INT);")},
		"V1__init.sql":      {Data: []byte("  CREATE TABLE a (id INT);\n")},
		"README.md":         {Data: []byte("notes")},
		"v3__lowercase.sql": {Data: []byte("SELECT 1;")},
	}

	migs, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "init" || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %+v", migs)
	}
	if migs[0].SQL != "CREATE TABLE a (id INT);" {
		t.Fatalf("expected trimmed sql, got %q", migs[0].SQL)
	}
	if len(migs[0].Checksum) != 64 {
		t.Fatalf("expected sha256 hex checksum")
	}
}

func TestLoad_RejectsDuplicatesAndEmpty(t *testing.T) {
	dup := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := Load(dup); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}

	empty := fstest.MapFS{"V1__a.sql": {Data: []byte("   ")}}
	if _, err := Load(empty); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestLoad_NilSource(t *testing.T) {
	migs, err := Load(nil)
	if err != nil || len(migs) != 0 {
		t.Fatalf("expected no migrations, got %v %v", migs, err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := Load(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected embedded V1 migration")
	}
	if !strings.Contains(migs[0].SQL, "uq_user_onboarding_data") {
		t.Fatalf("expected answer uniqueness constraint in V1")
	}
}
