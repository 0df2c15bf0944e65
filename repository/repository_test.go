package repository

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"emi-planner/domain"
)

func record(id string, at time.Time) domain.CalculationRecord {
	return domain.CalculationRecord{
		ID:        id,
		Kind:      domain.KindEMI,
		Request:   json.RawMessage(`{"principal":800000}`),
		Result:    json.RawMessage(`{"standard_emi":13746.13}`),
		CreatedAt: at,
	}
}

func exerciseRepository(t *testing.T, repo LoanRepository) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Save(record(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}

	all, err := repo.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" || all[2].ID != "a" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	if string(all[0].Request) != `{"principal":800000}` {
		t.Errorf("unexpected request %s", all[0].Request)
	}
	if !all[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("unexpected created_at %v", all[0].CreatedAt)
	}

	two, err := repo.List(2)
	if err != nil {
		t.Fatalf("List(2): %v", err)
	}
	if len(two) != 2 || two[1].ID != "b" {
		t.Errorf("expected c,b got %+v", two)
	}

	removed, err := repo.DeleteBefore(base.Add(90 * time.Minute))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	left, _ := repo.List(0)
	if len(left) != 1 || left[0].ID != "c" {
		t.Errorf("expected only c to remain, got %+v", left)
	}
}

func TestLoanRepositoryMemory(t *testing.T) {
	exerciseRepository(t, NewLoanRepositoryMemory())
}

func TestSQLRepository_SQLite(t *testing.T) {
	repo, err := OpenSQLRepository("sqlite", filepath.Join(t.TempDir(), "db", "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLRepository: %v", err)
	}
	defer func() { _ = repo.Close() }()

	exerciseRepository(t, repo)
}

func TestSQLRepository_UnknownDriver(t *testing.T) {
	if _, err := OpenSQLRepository("oracle", "x"); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestSQLiteDSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/tmp/history.db", "/tmp/history.db?_pragma=journal_mode(wal)&_pragma=synchronous(normal)"},
		{"file:/tmp/history.db?cache=shared", "file:/tmp/history.db?cache=shared&_pragma=journal_mode(wal)&_pragma=synchronous(normal)"},
	}
	for _, tc := range cases {
		if got := sqliteDSN(tc.in); got != tc.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got := sqlitePath("/tmp/history.db?mode=rwc"); got != "/tmp/history.db" {
		t.Errorf("unexpected path %q", got)
	}
}

func TestSQLRepository_SQLiteWithQuery(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db") + "?_time_format=sqlite"
	repo, err := OpenSQLRepository("sqlite", dsn)
	if err != nil {
		t.Fatalf("OpenSQLRepository: %v", err)
	}
	defer func() { _ = repo.Close() }()

	if err := repo.Save(record("q", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestRebind(t *testing.T) {
	pg := &SQLRepository{postgres: true}
	got := pg.rebind("INSERT INTO t (a, b) VALUES (?, ?)")
	if got != "INSERT INTO t (a, b) VALUES ($1, $2)" {
		t.Errorf("unexpected rebind: %s", got)
	}

	lite := &SQLRepository{}
	if q := "SELECT ? "; lite.rebind(q) != q {
		t.Errorf("sqlite query should be unchanged")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss")
	}
	if err := c.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Errorf("expected hit with v, got %q %v", v, ok)
	}
}
