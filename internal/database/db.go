package database

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/models"
)

var DB *gorm.DB

func Connect() *gorm.DB {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		// Local dev fallback; production always sets DATABASE_DSN.
		dsn = "host=localhost user=postgres password=password dbname=applytrack port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")

	// Migration: creates the tables in Postgres automatically
	log.Println("Running Migrations...")
	if err := DB.AutoMigrate(&models.Profile{}, &models.Application{}, &models.Task{}); err != nil {
		log.Fatal("Migration failed:", err)
	}
	if err := enableRowPolicies(DB); err != nil {
		log.Fatal("Row security setup failed:", err)
	}
	return DB
}

// enableRowPolicies installs the storage-level safety net: a row is
// only visible to the owner bound to the current transaction via
// app.current_owner (see store.scoped), even if an application-level
// ownership check slips.
func enableRowPolicies(db *gorm.DB) error {
	stmts := []string{
		`ALTER TABLE applications ENABLE ROW LEVEL SECURITY`,
		`ALTER TABLE applications FORCE ROW LEVEL SECURITY`,
		`DROP POLICY IF EXISTS applications_owner ON applications`,
		`CREATE POLICY applications_owner ON applications
			USING (owner_id = current_setting('app.current_owner', true)::uuid)
			WITH CHECK (owner_id = current_setting('app.current_owner', true)::uuid)`,
		`ALTER TABLE tasks ENABLE ROW LEVEL SECURITY`,
		`ALTER TABLE tasks FORCE ROW LEVEL SECURITY`,
		`DROP POLICY IF EXISTS tasks_owner ON tasks`,
		`CREATE POLICY tasks_owner ON tasks
			USING (owner_id = current_setting('app.current_owner', true)::uuid)
			WITH CHECK (owner_id = current_setting('app.current_owner', true)::uuid)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
