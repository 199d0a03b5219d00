package domain

type Order struct {
	ID         int64  `db:"id" json:"id"`
	CustomerID int64  `db:"customer_id" json:"customer_id"`
	Quantity   int64  `db:"quantity" json:"quantity"`
	Name       string `db:"name" json:"name"`
	Item       string `db:"item" json:"item"`
	CreatedAt  string `db:"created_at" json:"created_at,omitempty"`
}
