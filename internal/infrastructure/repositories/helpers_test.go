package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		first_name TEXT,
		last_name TEXT,
		role TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProviderTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE providers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		status_notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE provider_documents (
		id TEXT PRIMARY KEY,
		provider_id TEXT NOT NULL,
		doc_type TEXT NOT NULL,
		verified BOOLEAN NOT NULL,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE document_files (
		id TEXT PRIMARY KEY,
		document_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		storage_path TEXT NOT NULL,
		upload_date DATETIME,
		size INTEGER,
		mime_type TEXT,
		position INTEGER NOT NULL
	);`)
	mustExec(t, db, `CREATE TABLE verification_audits (
		id TEXT PRIMARY KEY,
		provider_id TEXT NOT NULL,
		status TEXT NOT NULL,
		date DATETIME,
		notes TEXT,
		reviewer TEXT,
		position INTEGER NOT NULL
	);`)
}

func createBookingTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		service_id TEXT NOT NULL,
		provider_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		date DATETIME,
		time TEXT,
		location TEXT,
		notes TEXT,
		contact_phone TEXT,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE booking_audits (
		id TEXT PRIMARY KEY,
		booking_id TEXT NOT NULL,
		status TEXT NOT NULL,
		date DATETIME,
		notes TEXT,
		reviewer TEXT,
		position INTEGER NOT NULL
	);`)
}

func createServiceTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE services (
		id TEXT PRIMARY KEY,
		provider_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT,
		description TEXT,
		price REAL,
		pricing_type TEXT,
		is_available BOOLEAN NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
