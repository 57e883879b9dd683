package db

// SchemaSQL is the complete schema for fresh giftdesk installs.
//
// This is the single source of truth for the database schema: all
// repository tests load it via GetSchemaSQL() so drift between test
// and production schemas fails immediately with "no such column".
//
// Keep this in sync with the migrations in migrations.go when adding
// columns or tables.
const SchemaSQL = `
-- Persons (imported participants; immutable after import)
CREATE TABLE IF NOT EXISTS persons (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	public_id TEXT NOT NULL UNIQUE,
	first_name TEXT,
	last_name TEXT,
	employee_id TEXT,
	person_id TEXT,
	source_format TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Gifts (one per person; applicant/order are set together or not at all)
CREATE TABLE IF NOT EXISTS gifts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	public_id TEXT NOT NULL UNIQUE,
	owner_public_id TEXT NOT NULL REFERENCES persons(public_id),
	applicant_public_id TEXT REFERENCES persons(public_id),
	order_public_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	CHECK ((applicant_public_id IS NULL) = (order_public_id IS NULL))
);

-- Orders (created PENDING, flipped to COMPLETE exactly once)
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	public_id TEXT NOT NULL UNIQUE,
	order_code TEXT NOT NULL UNIQUE,
	applicant_public_id TEXT NOT NULL REFERENCES persons(public_id),
	confirmation_code TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('PENDING','COMPLETE')) DEFAULT 'PENDING',
	confirmed_by_public_id TEXT,
	confirmed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	CHECK ((status = 'COMPLETE') = (confirmed_by_public_id IS NOT NULL AND confirmed_at IS NOT NULL))
);

-- Order bundles (ordered list of gifts per order)
CREATE TABLE IF NOT EXISTS order_gifts (
	order_public_id TEXT NOT NULL REFERENCES orders(public_id),
	gift_public_id TEXT NOT NULL REFERENCES gifts(public_id),
	position INTEGER NOT NULL,
	PRIMARY KEY (order_public_id, gift_public_id)
);

-- Audit trail (workflow events; reconciliation anomalies are flagged)
CREATE TABLE IF NOT EXISTS audit_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	message TEXT NOT NULL,
	needs_reconciliation INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_gifts_owner ON gifts(owner_public_id);
CREATE INDEX IF NOT EXISTS idx_gifts_applicant ON gifts(applicant_public_id);
CREATE INDEX IF NOT EXISTS idx_gifts_order ON gifts(order_public_id);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_audit_entity ON audit_events(entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_reconciliation ON audit_events(needs_reconciliation);
`

// GetSchemaSQL returns the authoritative schema. Tests must use this
// instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
