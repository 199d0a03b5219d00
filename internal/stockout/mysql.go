package stockout

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// MySQLSource reads exhausted inventory rows from the database.
type MySQLSource struct {
	db *sqlx.DB
}

func NewMySQLSource(db *sqlx.DB) *MySQLSource {
	return &MySQLSource{db: db}
}

func (s *MySQLSource) OutOfStock(ctx context.Context) ([]StockOut, error) {
	var out []StockOut
	err := s.db.SelectContext(ctx, &out,
		`SELECT i.drug_id, d.name AS drug_name,
		        m.id AS manager_id, m.name AS manager_name,
		        m.phone AS manager_phone, m.email AS manager_email
		   FROM inventory i
		   JOIN drugs d ON d.id = i.drug_id
		   JOIN managers m ON m.id = i.manager_id
		  WHERE i.remaining_qty <= 0
		  ORDER BY m.id, d.name`)
	if err != nil {
		return nil, errors.Wrap(err, "select stock-outs")
	}
	return out, nil
}
