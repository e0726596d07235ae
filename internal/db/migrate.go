package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// full list runs on each start.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Tables lists every application table in dependency order.
var Tables = []string{
	"leads", "clients", "projects", "tasks", "dev_plans", "episodes",
	"emails", "revenues", "reports", "tags", "tag_assignments", "activities",
}

const contextCheck = `CHECK (context IN ('notrom','podcast','day_job','general'))`

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT NOT NULL,
		company           TEXT NOT NULL DEFAULT '',
		email             TEXT NOT NULL DEFAULT '',
		phone             TEXT NOT NULL DEFAULT '',
		website           TEXT NOT NULL DEFAULT '',
		source            TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'new'
			CHECK (status IN ('new','contacted','qualified','proposal','negotiation','won','lost')),
		value             REAL NOT NULL DEFAULT 0 CHECK (value >= 0),
		context           TEXT NOT NULL DEFAULT 'general' ` + contextCheck + `,
		notes             TEXT NOT NULL DEFAULT '',
		last_contacted_at TEXT,
		next_follow_up_at TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		company    TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		phone      TEXT NOT NULL DEFAULT '',
		website    TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive','past')),
		context    TEXT NOT NULL DEFAULT 'general' ` + contextCheck + `,
		notes      TEXT NOT NULL DEFAULT '',
		lead_id    INTEGER REFERENCES leads(id) ON DELETE SET NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		client_id   INTEGER REFERENCES clients(id) ON DELETE SET NULL,
		status      TEXT NOT NULL DEFAULT 'planning'
			CHECK (status IN ('planning','in_progress','review','completed','on_hold','cancelled')),
		context     TEXT NOT NULL DEFAULT 'general' ` + contextCheck + `,
		budget      REAL NOT NULL DEFAULT 0 CHECK (budget >= 0),
		start_date  TEXT,
		deadline    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'todo'
			CHECK (status IN ('todo','in_progress','blocked','completed')),
		priority     TEXT NOT NULL DEFAULT 'medium'
			CHECK (priority IN ('low','medium','high','urgent')),
		context      TEXT NOT NULL DEFAULT 'general' ` + contextCheck + `,
		project_id   INTEGER REFERENCES projects(id) ON DELETE SET NULL,
		client_id    INTEGER REFERENCES clients(id) ON DELETE SET NULL,
		assignee     TEXT NOT NULL DEFAULT '',
		due_date     TEXT,
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS dev_plans (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id          INTEGER NOT NULL UNIQUE REFERENCES projects(id) ON DELETE CASCADE,
		name                TEXT NOT NULL,
		current_stage       TEXT NOT NULL DEFAULT 'planning'
			CHECK (current_stage IN ('planning','build','revise','live')),
		planning_start_date TEXT,
		planning_end_date   TEXT,
		build_start_date    TEXT,
		build_end_date      TEXT,
		revise_start_date   TEXT,
		revise_end_date     TEXT,
		live_start_date     TEXT,
		planning_notes      TEXT NOT NULL DEFAULT '',
		build_notes         TEXT NOT NULL DEFAULT '',
		revise_notes        TEXT NOT NULL DEFAULT '',
		live_notes          TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS episodes (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		title          TEXT NOT NULL,
		episode_number INTEGER CHECK (episode_number IS NULL OR episode_number > 0),
		status         TEXT NOT NULL DEFAULT 'idea'
			CHECK (status IN ('idea','scheduled','recorded','edited','published')),
		guest          TEXT NOT NULL DEFAULT '',
		record_date    TEXT,
		publish_date   TEXT,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS emails (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		provider_message_id TEXT NOT NULL UNIQUE,
		thread_id           TEXT NOT NULL DEFAULT '',
		from_address        TEXT NOT NULL DEFAULT '',
		from_name           TEXT NOT NULL DEFAULT '',
		to_address          TEXT NOT NULL DEFAULT '',
		subject             TEXT NOT NULL DEFAULT '',
		snippet             TEXT NOT NULL DEFAULT '',
		body                TEXT NOT NULL DEFAULT '',
		received_at         TEXT NOT NULL,
		context             TEXT NOT NULL DEFAULT 'general' ` + contextCheck + `,
		priority            TEXT NOT NULL DEFAULT 'medium'
			CHECK (priority IN ('low','medium','high','urgent')),
		needs_response      INTEGER NOT NULL DEFAULT 0,
		summary             TEXT NOT NULL DEFAULT '',
		responded_at        TEXT,
		task_id             INTEGER REFERENCES tasks(id) ON DELETE SET NULL,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS revenues (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		amount      REAL NOT NULL CHECK (amount > 0),
		source      TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		context     TEXT NOT NULL DEFAULT 'general' ` + contextCheck + `,
		client_id   INTEGER REFERENCES clients(id) ON DELETE SET NULL,
		project_id  INTEGER REFERENCES projects(id) ON DELETE SET NULL,
		received_at TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS reports (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		title        TEXT NOT NULL,
		kind         TEXT NOT NULL DEFAULT 'custom'
			CHECK (kind IN ('weekly','monthly','quarterly','custom')),
		context      TEXT NOT NULL DEFAULT 'general' ` + contextCheck + `,
		content      TEXT NOT NULL DEFAULT '',
		period_start TEXT,
		period_end   TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE COLLATE NOCASE,
		color      TEXT NOT NULL DEFAULT '#6b7280',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tag_assignments (
		tag_id      INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		entity_type TEXT NOT NULL
			CHECK (entity_type IN ('lead','client','project','task','episode','email')),
		entity_id   INTEGER NOT NULL,
		created_at  TEXT NOT NULL,
		PRIMARY KEY (tag_id, entity_type, entity_id)
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		kind        TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id   INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		context     TEXT NOT NULL DEFAULT 'general',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_lead ON clients(lead_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status_due ON tasks(status, due_date)`,
	`CREATE INDEX IF NOT EXISTS idx_emails_needs_response ON emails(needs_response, received_at)`,
	`CREATE INDEX IF NOT EXISTS idx_revenues_received ON revenues(received_at)`,
	`CREATE INDEX IF NOT EXISTS idx_tag_assignments_entity ON tag_assignments(entity_type, entity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_entity ON activities(entity_type, entity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_created ON activities(created_at)`,
}
