package migrate

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "github.com/mattn/go-sqlite3"
)

func openMemDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRun_appliesAllAndIsIdempotent(t *testing.T) {
	db := openMemDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := Run(db); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	all, err := embedded(sqlFS)
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	if n != len(all) {
		t.Errorf("applied = %d; want %d", n, len(all))
	}

	if _, err := db.Exec(`INSERT INTO launches (launch_site, payload_mass_kg, booster_version_category, class) VALUES ('KSC LC-39A', 5300, 'FT', 1)`); err != nil {
		t.Fatalf("launches table not usable: %v", err)
	}

	pending, err := Pending(db)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("Pending after Run = %d; want 0", len(pending))
	}
}

func TestPending_freshDatabase(t *testing.T) {
	db := openMemDB(t)

	pending, err := Pending(db)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) < 2 {
		t.Fatalf("Pending = %d; want at least 2", len(pending))
	}
	if pending[0].Version != "0001" || pending[0].Name != "launches" {
		t.Errorf("first pending = %+v; want 0001_launches", pending[0])
	}
	for i := 1; i < len(pending); i++ {
		if pending[i-1].Version >= pending[i].Version {
			t.Errorf("pending not sorted: %s before %s", pending[i-1].Version, pending[i].Version)
		}
	}
}

func TestEmbedded_skipsUnrelatedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"sql/0002_b.sql": {Data: []byte("SELECT 2;")},
		"sql/README.md":  {Data: []byte("notes")},
		"sql/0001_a.sql": {Data: []byte("SELECT 1;")},
		"sql/12_bad.sql": {Data: []byte("SELECT 3;")},
	}
	got, err := embedded(fsys)
	if err != nil {
		t.Fatalf("embedded: %v", err)
	}
	if len(got) != 2 || got[0].Version != "0001" || got[1].Version != "0002" {
		t.Fatalf("embedded = %+v; want 0001_a, 0002_b", got)
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		in          string
		wantVersion string
		wantName    string
		wantOK      bool
	}{
		{"0001_launches.sql", "0001", "launches", true},
		{"0042_add_index.sql", "0042", "add_index", true},
		{"1_short.sql", "", "", false},
		{"0001_launches.txt", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, n, ok := parseMigrationFilename(tt.in)
			if v != tt.wantVersion || n != tt.wantName || ok != tt.wantOK {
				t.Errorf("parseMigrationFilename(%q) = (%q, %q, %v); want (%q, %q, %v)", tt.in, v, n, ok, tt.wantVersion, tt.wantName, tt.wantOK)
			}
		})
	}
}
