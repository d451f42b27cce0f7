package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Partial unique indexes enforce the state invariants at the constraint
// level rather than in application logic: one active registration per
// (athlete, holder), one waiting waitlist entry per (athlete, holder), one
// open register per organization, and one cash movement per financial
// record.
const schema = `
CREATE TABLE IF NOT EXISTS organizations (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS athletes (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS training_groups (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    name TEXT NOT NULL,
    max_capacity INTEGER,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS training_sessions (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    group_id TEXT,
    title TEXT NOT NULL,
    starts_at INTEGER NOT NULL,
    max_capacity INTEGER,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE,
    FOREIGN KEY (group_id) REFERENCES training_groups(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS registrations (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    athlete_id TEXT NOT NULL,
    reference_type TEXT NOT NULL,
    reference_id TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE,
    FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS waitlist_entries (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    athlete_id TEXT NOT NULL,
    reference_type TEXT NOT NULL,
    reference_id TEXT NOT NULL,
    priority TEXT NOT NULL,
    status TEXT NOT NULL,
    position INTEGER NOT NULL,
    reason TEXT,
    notes TEXT,
    expires_at INTEGER,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE,
    FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS cash_registers (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    date INTEGER NOT NULL,
    status TEXT NOT NULL,
    opening_balance INTEGER NOT NULL,
    closing_balance INTEGER,
    notes TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS cash_movements (
    id TEXT PRIMARY KEY,
    register_id TEXT NOT NULL,
    org_id TEXT NOT NULL,
    type TEXT NOT NULL,
    amount INTEGER NOT NULL,
    description TEXT,
    reference_type TEXT NOT NULL,
    reference_id TEXT NOT NULL,
    recorded_by TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (register_id) REFERENCES cash_registers(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    athlete_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    method TEXT NOT NULL,
    description TEXT,
    recorded_by TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    org_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    method TEXT NOT NULL,
    description TEXT,
    recorded_by TEXT,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS feature_flags (
    org_id TEXT NOT NULL,
    feature TEXT NOT NULL,
    enabled INTEGER NOT NULL,
    PRIMARY KEY (org_id, feature),
    FOREIGN KEY (org_id) REFERENCES organizations(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_active
    ON registrations(athlete_id, reference_type, reference_id)
    WHERE status = 'active';

CREATE UNIQUE INDEX IF NOT EXISTS idx_waitlist_waiting
    ON waitlist_entries(athlete_id, reference_type, reference_id)
    WHERE status = 'waiting';

CREATE UNIQUE INDEX IF NOT EXISTS idx_registers_open
    ON cash_registers(org_id)
    WHERE status = 'open';

CREATE UNIQUE INDEX IF NOT EXISTS idx_movements_reference
    ON cash_movements(reference_type, reference_id);

CREATE INDEX IF NOT EXISTS idx_registrations_reference
    ON registrations(org_id, reference_type, reference_id, status);
CREATE INDEX IF NOT EXISTS idx_waitlist_reference
    ON waitlist_entries(org_id, reference_type, reference_id, status);
CREATE INDEX IF NOT EXISTS idx_waitlist_expiry
    ON waitlist_entries(status, expires_at);
CREATE INDEX IF NOT EXISTS idx_movements_register
    ON cash_movements(register_id);
CREATE INDEX IF NOT EXISTS idx_registers_org_date
    ON cash_registers(org_id, date);
CREATE INDEX IF NOT EXISTS idx_payments_org
    ON payments(org_id, created_at);
CREATE INDEX IF NOT EXISTS idx_sessions_org
    ON training_sessions(org_id, starts_at);
CREATE INDEX IF NOT EXISTS idx_athletes_org
    ON athletes(org_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
