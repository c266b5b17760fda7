package store

// schemaVersionV1 is the current assessment-chain schema.
const schemaVersionV1 = 1

// currentSchemaVersion is the target schema version for this build.
const currentSchemaVersion = schemaVersionV1

// schemaV1 stores every assessment version as one immutable row.
// The payload column holds the serialized document; the count columns
// exist so listings never have to decode payloads.
var schemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT NOT NULL,
	version    INTEGER NOT NULL,
	name       TEXT NOT NULL,
	vectors    INTEGER NOT NULL,
	hypotheses INTEGER NOT NULL,
	signals    INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (id, version)
);

CREATE INDEX IF NOT EXISTS idx_assessments_name ON assessments(name);
`
