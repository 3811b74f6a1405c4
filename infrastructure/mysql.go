package infrastructure

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"smarthire/domain"
)

// NewMySQLConnection opens the database and migrates the schema. The
// migration creates the composite unique index on (job_id, resume_hash)
// that closes the duplicate-submission race. TranslateError makes MySQL
// duplicate-key violations surface as gorm.ErrDuplicatedKey.
func NewMySQLConnection(dsn string) *gorm.DB {
	if dsn == "" {
		log.Fatal("DB_DSN is not set in environment")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Job{}, &domain.Candidate{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	fmt.Println("✅ Connected to MySQL and migrated schema")
	return db
}
