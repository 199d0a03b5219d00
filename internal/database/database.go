package database

import (
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Connect opens a MySQL database using the provided DSN.
func Connect(dsn string) *sqlx.DB {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(10)
	return db
}
