package postgres

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('jobseeker', 'employer')),
		company       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id           UUID PRIMARY KEY,
		title        TEXT NOT NULL,
		company      TEXT NOT NULL,
		location     TEXT NOT NULL,
		type         TEXT NOT NULL,
		salary       TEXT NOT NULL,
		description  TEXT NOT NULL,
		requirements TEXT[] NOT NULL DEFAULT '{}',
		category     TEXT NOT NULL,
		posted_by    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_posted_by ON jobs (posted_by)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id           UUID PRIMARY KEY,
		job_id       UUID NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
		user_id      UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		cover_letter TEXT NOT NULL,
		resume       TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK (status IN ('pending', 'reviewed', 'accepted', 'rejected')),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT applications_job_user_unique UNIQUE (job_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_user_id ON applications (user_id, created_at DESC)`,
}
