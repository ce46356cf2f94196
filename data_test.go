package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Create temporary SQLite database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	db, err := sql.Open("sqlite3", tmpFile.Name())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			bio TEXT
		)
	`)
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	testData := []struct {
		id   int
		name string
		bio  any
	}{
		{1, "Alice", "likes go"},
		{2, "Bob", nil},
		{3, "Charlie", strings.Repeat("long bio ", 10)},
	}
	for _, row := range testData {
		_, err = db.Exec("INSERT INTO users (id, name, bio) VALUES (?, ?, ?)",
			row.id, row.name, row.bio)
		if err != nil {
			t.Fatalf("Failed to insert test data: %v", err)
		}
	}

	return db
}

func TestLoadTable(t *testing.T) {
	db := setupTestDB(t)

	data, err := loadTable(db, SQLite, "users")
	if err != nil {
		t.Fatalf("loadTable failed: %v", err)
	}

	if data.Name != "users" {
		t.Errorf("expected name %q, got %q", "users", data.Name)
	}
	if len(data.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(data.Records))
	}
	if len(data.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(data.Columns))
	}

	if got := data.Records[0].Key("name"); got != "Alice" {
		t.Errorf("expected first record name Alice, got %q", got)
	}
	if data.Records[1]["bio"] != nil {
		t.Errorf("expected nil bio for Bob, got %v", data.Records[1]["bio"])
	}
}

func TestLoadQuery(t *testing.T) {
	db := setupTestDB(t)

	data, err := loadQuery(db, "SELECT name FROM users WHERE id > 1 ORDER BY id")
	if err != nil {
		t.Fatalf("loadQuery failed: %v", err)
	}

	if len(data.Columns) != 1 || data.Columns[0].Header != "name" {
		t.Fatalf("unexpected columns: %+v", data.Columns)
	}
	if len(data.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(data.Records))
	}
	if got := data.Records[0].Key("name"); got != "Bob" {
		t.Errorf("expected Bob, got %q", got)
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.csv")
	content := "id,item,qty\n1,widget,3\n2,gadget,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write csv: %v", err)
	}

	data, err := loadCSV(path)
	if err != nil {
		t.Fatalf("loadCSV failed: %v", err)
	}

	if data.Name != "orders" {
		t.Errorf("expected name orders, got %q", data.Name)
	}
	if len(data.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(data.Records))
	}
	if got := data.Records[0].Key("item"); got != "widget" {
		t.Errorf("expected widget, got %q", got)
	}
	if got := data.Records[1].Key("qty"); got != "" {
		t.Errorf("expected empty qty, got %q", got)
	}
}

func TestLoadCSVShortRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.csv")
	content := "a,b,c\n1,2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write csv: %v", err)
	}

	data, err := loadCSV(path)
	if err != nil {
		t.Fatalf("loadCSV failed: %v", err)
	}
	if got := data.Records[0].Key("c"); got != "" {
		t.Errorf("expected missing cell to be empty, got %q", got)
	}
}

func TestBuildColumnSpecs(t *testing.T) {
	db := setupTestDB(t)

	data, err := loadTable(db, SQLite, "users")
	if err != nil {
		t.Fatalf("loadTable failed: %v", err)
	}

	// First column is the card highlight
	if !data.Columns[0].MobileHighlight {
		t.Errorf("expected first column to be the mobile highlight")
	}
	if data.Columns[0].HideOnMobile {
		t.Errorf("highlight column must not be hidden")
	}

	// Charlie's bio exceeds the width threshold, so bio stays grid-only
	bio, name := -1, -1
	for i := range data.Columns {
		switch data.Columns[i].Header {
		case "bio":
			bio = i
		case "name":
			name = i
		}
	}
	if bio < 0 || name < 0 {
		t.Fatalf("missing expected columns in %+v", data.Columns)
	}
	if !data.Columns[bio].HideOnMobile {
		t.Errorf("expected wide bio column to be grid-only")
	}
	if data.Columns[name].HideOnMobile {
		t.Errorf("expected name column to stay in the card layout")
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		dbType   DatabaseType
		ident    string
		expected string
	}{
		{SQLite, "users", `"users"`},
		{PostgreSQL, `odd"name`, `"odd""name"`},
		{MySQL, "users", "`users`"},
		{MySQL, "odd`name", "`odd``name`"},
	}

	for _, tt := range tests {
		if got := quoteIdent(tt.dbType, tt.ident); got != tt.expected {
			t.Errorf("quoteIdent(%v, %q) = %q, expected %q", tt.dbType, tt.ident, got, tt.expected)
		}
	}
}
