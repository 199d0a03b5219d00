package orders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Sirius241/Pharmacy-Managment-System/domain"
)

// MySQLStore is the sqlx-backed InventoryStore.
type MySQLStore struct {
	db *sqlx.DB
}

func NewMySQLStore(db *sqlx.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) FindDrugByName(ctx context.Context, name string) (domain.Drug, int64, error) {
	var row struct {
		ID           int64          `db:"id"`
		Name         string         `db:"name"`
		Description  sql.NullString `db:"description"`
		RemainingQty int64          `db:"remaining_qty"`
	}
	err := s.db.GetContext(ctx, &row,
		`SELECT d.id, d.name, d.description, i.remaining_qty
		   FROM drugs d
		   JOIN inventory i ON i.drug_id = d.id
		  WHERE d.name = ?
		  LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Drug{}, 0, domain.ErrNotFound
		}
		return domain.Drug{}, 0, errors.Wrap(err, "find drug")
	}
	return domain.Drug{ID: row.ID, Name: row.Name, Description: row.Description.String}, row.RemainingQty, nil
}

func (s *MySQLStore) CreateOrder(ctx context.Context, customerID int64, drug domain.Drug, quantity int64) (domain.Order, int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Order{}, 0, errors.Wrap(err, "begin order transaction")
	}
	defer tx.Rollback()

	// Conditional decrement: refuses to go below zero even under concurrent
	// placements against the same drug.
	res, err := tx.ExecContext(ctx,
		`UPDATE inventory SET remaining_qty = remaining_qty - ?
		  WHERE drug_id = ? AND remaining_qty >= ?
		  LIMIT 1`, quantity, drug.ID, quantity)
	if err != nil {
		return domain.Order{}, 0, errors.Wrap(err, "decrement inventory")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Order{}, 0, errors.Wrap(err, "decrement inventory")
	}
	if affected == 0 {
		return domain.Order{}, 0, domain.ErrInsufficientStock
	}

	order := domain.Order{
		CustomerID: customerID,
		Quantity:   quantity,
		Name:       fmt.Sprintf("Order for %s", drug.Name),
		Item:       drug.Name,
	}
	ins, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customer_id, quantity, name, item) VALUES (?, ?, ?, ?)`,
		order.CustomerID, order.Quantity, order.Name, order.Item)
	if err != nil {
		return domain.Order{}, 0, errors.Wrap(err, "insert order")
	}
	order.ID, err = ins.LastInsertId()
	if err != nil {
		return domain.Order{}, 0, errors.Wrap(err, "insert order")
	}

	var remaining int64
	if err := tx.GetContext(ctx, &remaining,
		`SELECT remaining_qty FROM inventory WHERE drug_id = ? LIMIT 1`, drug.ID); err != nil {
		return domain.Order{}, 0, errors.Wrap(err, "reload remaining quantity")
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, 0, errors.Wrap(err, "commit order")
	}
	return order, remaining, nil
}
