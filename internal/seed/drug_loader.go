package seed

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// LoadDrugs ingests the CSV into the drugs table, ignoring duplicates.
func LoadDrugs(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		logrus.Warnf("unable to load drug catalog %s: %v", csvPath, err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		logrus.Warnf("unable to read drug catalog header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		logrus.Warnf("unable to start drug catalog transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT IGNORE INTO drugs (name, description) VALUES (?, ?)`)
	if err != nil {
		logrus.Warnf("unable to prepare drug insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.Warnf("unable to read drug row: %v", err)
			continue
		}
		if len(record) < 2 {
			continue
		}
		name := strings.TrimSpace(record[0])
		description := strings.TrimSpace(record[1])
		if name == "" {
			continue
		}

		if _, err := stmt.Exec(name, description); err != nil {
			logrus.Warnf("unable to insert drug %s: %v", name, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		logrus.Warnf("unable to commit drug catalog seed: %v", err)
	} else {
		logrus.Infof("seeded drug catalog with %d rows", rows)
	}
}
