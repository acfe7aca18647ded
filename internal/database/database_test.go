package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/pathakanu/linkLater/internal/model"
)

func TestNewSQLiteMigratesPreferences(t *testing.T) {
	dsn := fmt.Sprintf("file:dbtest_%d?mode=memory&cache=shared", time.Now().UnixNano())

	db, err := New("", dsn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !db.Migrator().HasTable(&model.Preference{}) {
		t.Fatalf("expected preferences table after migration")
	}
	if got := db.Dialector.Name(); got != "sqlite" {
		t.Fatalf("dialector = %q, want sqlite", got)
	}
}
