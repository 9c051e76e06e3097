package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectTestDB points the package ORM at an in-memory SQLite database.
func ConnectTestDB() error {
	database, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return err
	}
	if err := Migrate(database); err != nil {
		return err
	}
	ORM = database
	return nil
}
