package main

import "testing"

func TestDetectDatabaseType(t *testing.T) {
	tests := []struct {
		name     string
		database string
		override string
		expected DatabaseType
	}{
		{"db suffix", "app.db", "", SQLite},
		{"sqlite suffix", "data.sqlite", "", SQLite},
		{"bare name", "inventory", "", PostgreSQL},
		{"mysql-ish name alone stays postgres", "mysql", "", PostgreSQL},
		{"dsn-shaped name stays postgres", "root@tcp(localhost:3306)/shop", "", PostgreSQL},
		{"mysql override", "inventory", "mysql", MySQL},
		{"mysql override beats file suffix", "db.mysql", "mysql", MySQL},
		{"postgres override beats file suffix", "app.db", "postgres", PostgreSQL},
		{"sqlite override", "inventory", "sqlite", SQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{Database: tt.database}
			if tt.override != "" {
				parsed, err := parseDatabaseType(tt.override)
				if err != nil {
					t.Fatalf("parseDatabaseType(%q) failed: %v", tt.override, err)
				}
				config.DBTypeOverride = &parsed
			}
			if got := config.detectDatabaseType(); got != tt.expected {
				t.Errorf("detectDatabaseType() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestParseDatabaseType(t *testing.T) {
	tests := []struct {
		input    string
		expected DatabaseType
		wantErr  bool
	}{
		{"sqlite", SQLite, false},
		{"sqlite3", SQLite, false},
		{"postgres", PostgreSQL, false},
		{"postgresql", PostgreSQL, false},
		{"mysql", MySQL, false},
		{"MySQL", MySQL, false},
		{"oracle", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDatabaseType(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDatabaseType(%q) expected an error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDatabaseType(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("parseDatabaseType(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestBuildConnectionStringMySQL(t *testing.T) {
	override := MySQL
	config := &Config{
		Database:       "shop",
		Host:           "dbhost",
		Port:           "3307",
		Username:       "root",
		Password:       "secret",
		DBTypeOverride: &override,
	}

	connStr, dbType, err := config.buildConnectionString()
	if err != nil {
		t.Fatalf("buildConnectionString failed: %v", err)
	}
	if dbType != MySQL {
		t.Errorf("expected MySQL, got %v", dbType)
	}
	if connStr != "root:secret@tcp(dbhost:3307)/shop" {
		t.Errorf("unexpected connection string: %q", connStr)
	}
}
