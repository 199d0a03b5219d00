package tags

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Sirius241/Pharmacy-Managment-System/domain"
)

// MySQLCatalog looks drugs up in the drugs table.
type MySQLCatalog struct {
	db *sqlx.DB
}

func NewMySQLCatalog(db *sqlx.DB) *MySQLCatalog {
	return &MySQLCatalog{db: db}
}

func (c *MySQLCatalog) DrugByID(ctx context.Context, id int64) (domain.Drug, error) {
	var row struct {
		ID          int64          `db:"id"`
		Name        string         `db:"name"`
		Description sql.NullString `db:"description"`
	}
	err := c.db.GetContext(ctx, &row, `SELECT id, name, description FROM drugs WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Drug{}, domain.ErrNotFound
		}
		return domain.Drug{}, errors.Wrap(err, "find drug by id")
	}
	return domain.Drug{ID: row.ID, Name: row.Name, Description: row.Description.String}, nil
}
