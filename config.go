package main

import (
	"database/sql"
	"fmt"
	"os"
	"os/user"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Config holds the database connection parameters for one run.
type Config struct {
	Database string
	Host     string
	Port     string
	Username string
	Password string
	// Command is an optional SQL query to view instead of a whole table.
	Command string
	// DBTypeOverride allows explicitly selecting the database type via
	// the --type flag, bypassing filename detection.
	DBTypeOverride *DatabaseType
}

type DatabaseType int

const (
	SQLite DatabaseType = iota
	PostgreSQL
	MySQL
)

var databaseIcons = map[DatabaseType]string{
	SQLite:     "🪶",
	PostgreSQL: "🐘",
	MySQL:      "🐬",
}

// envOverrides fills empty connection fields from the environment. A local
// .env file is honored when present; explicit flags always win.
func (c *Config) envOverrides() {
	// A missing .env is not an error for a viewer.
	_ = godotenv.Load()

	if c.Host == "" {
		c.Host = os.Getenv("TABLY_DB_HOST")
	}
	if c.Port == "" {
		c.Port = os.Getenv("TABLY_DB_PORT")
	}
	if c.Username == "" {
		c.Username = os.Getenv("TABLY_DB_USER")
	}
	if c.Password == "" {
		c.Password = os.Getenv("TABLY_DB_PASSWORD")
	}
}

// detectDatabaseType infers the database type from the database argument.
// An explicit override wins; file-ish names are SQLite; everything else
// defaults to PostgreSQL.
func (c *Config) detectDatabaseType() DatabaseType {
	if c.DBTypeOverride != nil {
		return *c.DBTypeOverride
	}
	if strings.HasSuffix(c.Database, ".sqlite") || strings.HasSuffix(c.Database, ".db") {
		return SQLite
	}
	return PostgreSQL
}

// parseDatabaseType maps a --type flag value to a DatabaseType.
func parseDatabaseType(name string) (DatabaseType, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return PostgreSQL, nil
	case "mysql":
		return MySQL, nil
	}
	return 0, fmt.Errorf("unknown database type %q (expected sqlite, postgres or mysql)", name)
}

func (c *Config) buildConnectionString() (string, DatabaseType, error) {
	dbType := c.detectDatabaseType()

	switch dbType {
	case SQLite:
		if _, err := os.Stat(c.Database); os.IsNotExist(err) {
			return "", dbType, fmt.Errorf("sqlite file does not exist: %s", c.Database)
		}
		return c.Database, dbType, nil

	case PostgreSQL:
		connStr := fmt.Sprintf("dbname=%s", c.Database)

		if c.Host != "" {
			connStr += fmt.Sprintf(" host=%s", c.Host)
		}
		if c.Port != "" {
			connStr += fmt.Sprintf(" port=%s", c.Port)
		}
		if c.Username != "" {
			connStr += fmt.Sprintf(" user=%s", c.Username)
		} else {
			if currentUser, err := user.Current(); err == nil {
				connStr += fmt.Sprintf(" user=%s", currentUser.Username)
			}
		}
		if c.Password != "" {
			connStr += fmt.Sprintf(" password=%s", c.Password)
		}
		connStr += " sslmode=disable"

		return connStr, dbType, nil

	case MySQL:
		connStr := ""
		if c.Username != "" {
			connStr = c.Username
		} else {
			if currentUser, err := user.Current(); err == nil {
				connStr = currentUser.Username
			}
		}

		if c.Password != "" {
			connStr += ":" + c.Password
		}

		connStr += "@"

		if c.Host != "" && c.Port != "" {
			connStr += fmt.Sprintf("tcp(%s:%s)", c.Host, c.Port)
		} else if c.Host != "" {
			connStr += fmt.Sprintf("tcp(%s:3306)", c.Host)
		} else {
			connStr += "tcp(localhost:3306)"
		}

		connStr += "/" + c.Database

		return connStr, dbType, nil

	default:
		return "", dbType, fmt.Errorf("unsupported database type")
	}
}

// connect opens and pings the configured database.
func (c *Config) connect() (*sql.DB, DatabaseType, error) {
	c.envOverrides()

	connStr, dbType, err := c.buildConnectionString()
	if err != nil {
		return nil, dbType, err
	}

	var driverName string
	switch dbType {
	case SQLite:
		driverName = "sqlite3"
	case PostgreSQL:
		driverName = "postgres"
	case MySQL:
		driverName = "mysql"
	default:
		return nil, dbType, fmt.Errorf("unsupported database type")
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, dbType, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, dbType, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dbType, nil
}

// listTables retrieves the table names visible in the connected database.
func listTables(db *sql.DB, dbType DatabaseType, database string) ([]string, error) {
	var query string
	switch dbType {
	case PostgreSQL:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	case MySQL:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = ? ORDER BY table_name"
	case SQLite:
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return nil, fmt.Errorf("unsupported database type for listTables")
	}

	var rows *sql.Rows
	var err error
	if dbType == MySQL {
		rows, err = db.Query(query, database)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tables, nil
}
