package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/sangamops/mela-backend/internal/db"
	"github.com/sangamops/mela-backend/internal/store"
)

// These tests exercise the real LISTEN/NOTIFY path and only run against a
// live database. Set DATABASE_URL and DATABASE_DIRECT_URL to enable them.

func integrationStore(t *testing.T) *store.Postgres {
	t.Helper()
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" || os.Getenv("DATABASE_DIRECT_URL") == "" {
		t.Skip("skipping integration test (requires DATABASE_URL and DATABASE_DIRECT_URL)")
	}

	if db.DB == nil {
		db.Connect()
	}
	listener := store.NewListener(os.Getenv("DATABASE_DIRECT_URL"))
	t.Cleanup(func() { _ = listener.Close() })
	return store.NewPostgres(db.DB, listener)
}

// TestSubscribeReceivesNotification verifies an insert into a watched table
// produces a change notification with no payload dependency.
func TestSubscribeReceivesNotification(t *testing.T) {
	st := integrationStore(t)

	if err := db.DB.Exec(`CREATE TABLE IF NOT EXISTS store_test_rows (id text primary key)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	t.Cleanup(func() { db.DB.Exec(`DROP TABLE IF EXISTS store_test_rows`) })

	if err := db.DB.Exec(`
		CREATE OR REPLACE FUNCTION notify_collection_changed() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify(TG_TABLE_NAME || '_changes', '');
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql`).Error; err != nil {
		t.Fatalf("create function: %v", err)
	}
	if err := db.DB.Exec(`DROP TRIGGER IF EXISTS store_test_rows_notify ON store_test_rows`).Error; err != nil {
		t.Fatalf("drop trigger: %v", err)
	}
	if err := db.DB.Exec(`
		CREATE TRIGGER store_test_rows_notify
		AFTER INSERT OR UPDATE OR DELETE ON store_test_rows
		FOR EACH STATEMENT EXECUTE FUNCTION notify_collection_changed()`).Error; err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	changed := make(chan struct{}, 1)
	unsub, err := st.Subscribe("store_test_rows", func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	// Give the LISTEN a moment to take effect before writing.
	time.Sleep(200 * time.Millisecond)

	type row struct{ ID string }
	if err := st.Insert(context.Background(), "store_test_rows", &row{ID: "n1"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}
}

// TestUpdateMissingRow verifies Update reports a missing target instead of
// silently succeeding.
func TestUpdateMissingRow(t *testing.T) {
	st := integrationStore(t)

	if err := db.DB.Exec(`CREATE TABLE IF NOT EXISTS store_test_rows (id text primary key)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	t.Cleanup(func() { db.DB.Exec(`DROP TABLE IF EXISTS store_test_rows`) })

	err := st.Update(context.Background(), "store_test_rows", "does-not-exist", map[string]any{"id": "x"})
	if err == nil {
		t.Error("expected an error updating a missing row")
	}
}
