package models

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/safespeak/safespeak/server/logger"
	"github.com/safespeak/safespeak/utils"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "safespeak.db"

var logg = logger.NewLogger()
var db *gorm.DB

// AutoMigrate auto-migrates the db schema and inserts seed data
func AutoMigrate(passPhrase string, dbRootDir string) error {
	dsn, err := dbDSN(passPhrase, dbRootDir)
	if err != nil {
		return fmt.Errorf("failed to set sqlite DSN: %v", err)
	}

	if err := openDB(dsn); err != nil {
		return err
	}

	return migrateAndSeed()
}

// InitializeTestDb points the models package at a shared in-memory
// sqlite db with a fresh schema. For use in tests only.
func InitializeTestDb() {
	if db == nil {
		if err := openDB("file::memory:?cache=shared"); err != nil {
			logg.Panic(err)
		}
	}

	db.Migrator().DropTable(
		&SOSEvent{}, &EmergencyContact{}, &Report{},
		&Job{}, &JobStatus{}, &Role{}, &User{},
	)

	if err := migrateAndSeed(); err != nil {
		logg.Panic(err)
	}
}

// DatabasePath returns the full path of the sqlite db file
func DatabasePath(dbRootDir string) (string, error) {
	dbDir, err := DbDirectory(dbRootDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func openDB(dsn string) error {
	var err error

	db, err = gorm.Open(sqliteEncrypt.Open(dsn), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %v", err)
	}

	return nil
}

func migrateAndSeed() error {
	err := db.AutoMigrate(
		&JobStatus{}, &Job{}, &Role{},
		&User{}, &EmergencyContact{}, &SOSEvent{}, &Report{},
	)
	if err != nil {
		return err
	}

	populateDBWithSeedData()

	return nil
}

func populateDBWithSeedData() {
	if err := db.First(&JobStatus{}).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Info("Inserting seed data into 'JobStatus'")
		db.Create(&[]JobStatus{{Name: ENQUEUED_JOB}, {Name: IN_PROGRESS_JOB}, {Name: SUCCESSFUL_JOB}, {Name: DEAD_JOB}})
	}

	if err := db.First(&Role{}).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Info("Inserting seed data into 'Role'")
		db.Create(&[]Role{{Name: ADMIN_USER_ROLE}, {Name: BASIC_USER_ROLE}})
	}
}

func dbDSN(passPhrase string, dbRootDir string) (string, error) {
	dbFilePath, err := DatabasePath(dbRootDir)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		dbFilePath,
		passPhrase,
	), nil
}
