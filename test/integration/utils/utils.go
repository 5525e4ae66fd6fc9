package utils

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

func CreateTablesFromFile(db *sql.DB, path string) error {
	schemaBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	_, err = db.Exec(string(schemaBytes))
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// GetSchemaPath resolves the shared schema file regardless of the working
// directory the test binary runs from.
func GetSchemaPath() string {
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "setup", "schema.sql")
}
