package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Migration is used to hold the database key and function for creating the migration.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

func (m Migration) execute(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := m.Executor(tx); err != nil {
			return err
		}

		return tx.Exec(`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`, m.Key, time.Now().Unix()).Error
	})
}

// MigrateUp runs, in order, each of migrations not yet recorded in the migrations table of schema.
//
// Each migration and its record commit in the same transaction.
func MigrateUp(db *gorm.DB, schema string, migrations []Migration) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return fmt.Errorf("creating %s schema: %w", schema, err)
	}

	err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var ran []string
	if err := db.Table("migrations").Pluck("key", &ran).Error; err != nil {
		return fmt.Errorf("fetching ran migrations: %w", err)
	}

	done := make(map[string]bool, len(ran))
	for _, key := range ran {
		done[key] = true
	}

	for _, m := range migrations {
		if done[m.Key] {
			continue
		}

		if err := m.execute(db); err != nil {
			return fmt.Errorf("running migration %s: %w", m.Key, err)
		}
	}

	return nil
}

// Migrations creates the tables a DocumentStore reads and writes.
var Migrations = []Migration{
	{
		Key: "20221018_create_documents",
		Executor: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE TABLE documents (
					id BIGSERIAL PRIMARY KEY,
					collection text NOT NULL,
					body jsonb NOT NULL DEFAULT '{}'::jsonb,
					created_at timestamptz NOT NULL DEFAULT now()
				)
			`).Error
		},
	},
	{
		Key: "20221018_index_documents_collection",
		Executor: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE INDEX documents_collection_idx ON documents (collection, id)`).Error
		},
	},
	{
		Key: "20221018_index_documents_body",
		Executor: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE INDEX documents_body_idx ON documents USING GIN (body jsonb_path_ops)`).Error
		},
	},
}
