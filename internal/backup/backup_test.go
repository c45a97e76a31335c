package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "progresio.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE parameters (id TEXT PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO parameters (id, name) VALUES ('p1', 'Sleep'), ('p2', 'Steps')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countParameters(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM parameters").Scan(&n); err != nil {
		t.Fatalf("count parameters: %v", err)
	}
	return n
}

// fixedClock makes every backup in a test land on a distinct second.
func fixedClock(m *Manager) {
	base := time.Date(2026, 1, 15, 8, 0, 0, 0, time.Local)
	calls := 0
	m.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	info, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(info.Path) != mgr.Dir() {
		t.Errorf("backup written to %s, want directory %s", info.Path, mgr.Dir())
	}
	if info.Size == 0 {
		t.Error("backup file is empty")
	}
	if got := countParameters(t, info.Path); got != 2 {
		t.Errorf("backup has %d parameters, want 2", got)
	}
}

func TestCreate_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	_, err := mgr.Create()
	if !errors.Is(err, ErrNoDatabase) {
		t.Errorf("Create() error = %v, want ErrNoDatabase", err)
	}
}

func TestCreate_UniqueNamesWithinOneSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	frozen := time.Date(2026, 1, 15, 8, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return frozen }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if seen[info.Name] {
			t.Fatalf("duplicate backup name %s", info.Name)
		}
		seen[info.Name] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3
	fixedClock(mgr)

	var last Info
	for i := 0; i < 5; i++ {
		info, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		last = info
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if backups[0].Name != last.Name {
		t.Errorf("newest backup = %s, want %s", backups[0].Name, last.Name)
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, name := range []string{"notes.txt", "progresio-garbage.db", "other-20260101-000000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestList_EmptyDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "progresio.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixedClock(mgr)

	saved, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM parameters"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	found, err := mgr.Find(saved.Name)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	safety, err := mgr.Restore(found)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if safety == nil {
		t.Fatal("expected a safety backup of the current database")
	}
	if got := countParameters(t, safety.Path); got != 0 {
		t.Errorf("safety backup has %d parameters, want 0", got)
	}
	if got := countParameters(t, dbPath); got != 2 {
		t.Errorf("restored database has %d parameters, want 2", got)
	}
}

func TestRestore_CorruptedBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(mgr.Dir(), "progresio-20260101-000000.db")
	if err := os.WriteFile(bad, []byte("definitely not sqlite"), 0600); err != nil {
		t.Fatal(err)
	}

	info, err := mgr.Find("latest")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if _, err := mgr.Restore(info); err == nil {
		t.Fatal("expected restore of a corrupted backup to fail")
	}
	if got := countParameters(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d parameters", got)
	}
}

func TestFind_Latest_NoBackups(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "progresio.db"))
	if _, err := mgr.Find("latest"); err == nil {
		t.Error("expected error when no backups exist")
	}
}
