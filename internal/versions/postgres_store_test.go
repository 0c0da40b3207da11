package versions

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresStoreList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := newPostgresStoreWithDB(mock)

	savedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := []byte(`{"weekStartIso":"2025-06-01T00:00:00Z","selectedDateIso":"2025-06-02T00:00:00Z","selectedTime":"10:00"}`)
	mock.ExpectQuery("SELECT id, version_number, title, note, saved_at, state").
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "version_number", "title", "note", "saved_at", "state"}).
			AddRow("v4-1748779200000", 4, "Rounded tiles", "", savedAt, state))

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.ID != "v4-1748779200000" || got.VersionNumber != 4 {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.State.SelectedTime == nil || *got.State.SelectedTime != "10:00" {
		t.Fatalf("state not decoded: %+v", got.State)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreReplace(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := newPostgresStoreWithDB(mock)
	entry := sampleEntry(1)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM design_versions").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("INSERT INTO design_versions").
		WithArgs(entry.ID, entry.VersionNumber, entry.Title, entry.Note, entry.SavedAt, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	if err := store.Replace(context.Background(), []DesignVersion{entry}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreReplaceRollsBackOnInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := newPostgresStoreWithDB(mock)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM design_versions").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO design_versions").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	if err := store.Replace(context.Background(), []DesignVersion{sampleEntry(1)}); err == nil {
		t.Fatalf("expected insert error to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
