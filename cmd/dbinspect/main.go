// Package main provides a read-only inspection tool for the EditorCraft database.
//
// It prints per-user configuration counts and per-config snapshot version
// ranges, which is handy when debugging version sequences by hand.
//
// Usage:
//
//	DB_PATH=~/editorcraft/editorcraft.db go run ./cmd/dbinspect
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "modernc.org/sqlite"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/editorcraft/editorcraft.db")
	}

	db, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	rows, err := db.Query(`
		SELECT u.id, u.email, COUNT(c.id)
		FROM users u
		LEFT JOIN editor_configs c ON c.user_id = u.id
		GROUP BY u.id, u.email
		ORDER BY u.email`)
	if err != nil {
		log.Fatalf("Failed to query users: %v", err)
	}
	defer rows.Close()

	userCount := 0
	for rows.Next() {
		var id, email string
		var configCount int
		if err := rows.Scan(&id, &email, &configCount); err != nil {
			log.Fatalf("Failed to scan user row: %v", err)
		}
		userCount++
		fmt.Printf("user %s  %s  configs=%d\n", id, email, configCount)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to iterate users: %v", err)
	}

	fmt.Println()

	configRows, err := db.Query(`
		SELECT c.id, c.name, c.is_active,
			COUNT(e.id), COALESCE(MIN(e.version), 0), COALESCE(MAX(e.version), 0)
		FROM editor_configs c
		LEFT JOIN editor_content e ON e.config_id = c.id
		GROUP BY c.id, c.name, c.is_active
		ORDER BY c.created_at`)
	if err != nil {
		log.Fatalf("Failed to query configs: %v", err)
	}
	defer configRows.Close()

	configCount := 0
	gaps := 0
	for configRows.Next() {
		var id, name string
		var active bool
		var snapshots, minVersion, maxVersion int64
		if err := configRows.Scan(&id, &name, &active, &snapshots, &minVersion, &maxVersion); err != nil {
			log.Fatalf("Failed to scan config row: %v", err)
		}
		configCount++

		status := "active"
		if !active {
			status = "inactive"
		}
		fmt.Printf("config %s  %q  %s  snapshots=%d", id, name, status, snapshots)
		if snapshots > 0 {
			fmt.Printf("  versions=%d..%d", minVersion, maxVersion)
			// A gapless sequence starting at 1 has max == count.
			if minVersion != 1 || maxVersion != snapshots {
				fmt.Printf("  GAP")
				gaps++
			}
		}
		fmt.Println()
	}
	if err := configRows.Err(); err != nil {
		log.Fatalf("Failed to iterate configs: %v", err)
	}

	fmt.Println()
	fmt.Printf("Total: %d users, %d configs", userCount, configCount)
	if gaps > 0 {
		fmt.Printf(", %d configs with version gaps", gaps)
	}
	fmt.Println()
}
