package launches

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MikiCRO/SpaceX-Project/internal/migrate"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/dataset"
	"github.com/MikiCRO/SpaceX-Project/internal/modules/launches/sitemap"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if err := migrate.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestImportDashFile(t *testing.T) {
	db := openTestDB(t)

	n, err := ImportDashFile(db, filepath.Join("dataset", "testdata", "dash.csv"))
	if err != nil {
		t.Fatalf("ImportDashFile: %v", err)
	}
	if n != 3 {
		t.Errorf("imported %d rows; want 3", n)
	}

	var stored int
	if err := db.QueryRow(`SELECT COUNT(*) FROM launches`).Scan(&stored); err != nil {
		t.Fatalf("count: %v", err)
	}
	if stored != 3 {
		t.Errorf("stored %d rows; want 3", stored)
	}
}

func TestImportDashFile_missingFileKeepsData(t *testing.T) {
	db := openTestDB(t)
	if _, err := ImportDashFile(db, filepath.Join("dataset", "testdata", "dash.csv")); err != nil {
		t.Fatalf("ImportDashFile: %v", err)
	}

	_, err := ImportDashFile(db, filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("ImportDashFile(missing) = nil; want error")
	}
	if errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("err = %v; want a file error", err)
	}

	var stored int
	if err := db.QueryRow(`SELECT COUNT(*) FROM launches`).Scan(&stored); err != nil {
		t.Fatalf("count: %v", err)
	}
	if stored != 3 {
		t.Errorf("stored %d rows after failed import; want 3", stored)
	}
}

func TestRegisterFeature(t *testing.T) {
	db := openTestDB(t)
	if _, err := ImportDashFile(db, filepath.Join("dataset", "testdata", "dash.csv")); err != nil {
		t.Fatalf("ImportDashFile: %v", err)
	}

	mux := http.NewServeMux()
	RegisterFeature(mux, db, sitemap.Build(nil))

	for _, target := range []string{
		"/api/v1/sites",
		"/api/v1/payload-range",
		"/api/v1/launches?site=KSC+LC-39A",
		"/api/v1/charts/pie?site=ALL",
		"/api/v1/charts/scatter?min=0&max=10000",
		"/api/v1/map.geojson",
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d; want 200 (%s)", target, rec.Code, rec.Body.String())
		}
	}
}
