package site

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func testRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	return repo
}

func TestSQLiteRepository_SaveAndLoadAll(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, kitchenSnapshot()); err != nil {
		t.Fatalf("Save(kitchen) error = %v", err)
	}
	if err := repo.Save(ctx, bathSnapshot()); err != nil {
		t.Fatalf("Save(bath) error = %v", err)
	}

	snaps, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("LoadAll() returned %d snapshots, want 2", len(snaps))
	}
	if snaps[0].SiteID != "bath" || snaps[1].SiteID != "kitchen" {
		t.Errorf("snapshots not ordered by site ID: %s, %s", snaps[0].SiteID, snaps[1].SiteID)
	}

	kitchen := snaps[1]
	if kitchen.RoomName != "Küche" || kitchen.DefaultDevice != "Box" {
		t.Errorf("kitchen = %+v, want Küche with default Box", kitchen)
	}
	if len(kitchen.Devices) != 1 || kitchen.Devices[0].MAC != "aa:bb:cc:00:00:01" {
		t.Errorf("kitchen devices = %+v", kitchen.Devices)
	}

	bath := snaps[0]
	if bath.Devices[0].Bluetooth == nil || bath.Devices[0].Bluetooth.Addr != "11:22:33:44:55:66" {
		t.Errorf("bluetooth descriptor lost in round trip: %+v", bath.Devices[0])
	}
}

func TestSQLiteRepository_SaveReplaces(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, kitchenSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snap := kitchenSnapshot()
	snap.RoomName = "Küche Neu"
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snaps, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("LoadAll() returned %d snapshots, want 1", len(snaps))
	}
	if snaps[0].RoomName != "Küche Neu" {
		t.Errorf("room = %q, want Küche Neu", snaps[0].RoomName)
	}
}

func TestSQLiteRepository_SaveRejectsEmptySiteID(t *testing.T) {
	repo := testRepository(t)

	if err := repo.Save(context.Background(), Snapshot{}); err == nil {
		t.Error("Save() of a snapshot without site_id should fail")
	}
}

func TestSQLiteRepository_LoadAllEmpty(t *testing.T) {
	repo := testRepository(t)

	snaps, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(snaps) != 0 {
		t.Errorf("LoadAll() on empty store = %v, want none", snaps)
	}
}
