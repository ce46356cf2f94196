package main

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"
	_ "github.com/pingcap/tidb/parser/test_driver"
)

// validateQuery checks that the -c argument is a single read-only statement
// and returns it trimmed of whitespace and a trailing semicolon. The viewer
// never writes, so anything other than SELECT (optionally under WITH) is
// rejected before it reaches the database.
func validateQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	query = strings.TrimSuffix(query, ";")
	query = strings.TrimSpace(query)

	if query == "" {
		return "", fmt.Errorf("empty query")
	}

	p := parser.New()
	stmtNodes, _, err := p.Parse(query, "", "")
	if err != nil {
		return "", fmt.Errorf("could not parse query: %w", err)
	}

	if len(stmtNodes) == 0 {
		return "", fmt.Errorf("no SQL statement found")
	}
	if len(stmtNodes) > 1 {
		return "", fmt.Errorf("multiple statements are not supported; pass a single SELECT")
	}

	switch stmtNodes[0].(type) {
	case *ast.SelectStmt, *ast.SetOprStmt:
		return query, nil
	default:
		return "", fmt.Errorf("only SELECT queries are supported, got %s", statementKeyword(query))
	}
}

// statementKeyword extracts the leading keyword for error messages.
func statementKeyword(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "an empty statement"
	}
	return strings.ToUpper(fields[0])
}
