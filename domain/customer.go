package domain

type Customer struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Age       int64  `db:"age" json:"age"`
	Sex       string `db:"sex" json:"sex"`
	Address   string `db:"address" json:"address"`
	Email     string `db:"email" json:"email"`
	Password  string `db:"password" json:"password,omitempty"`
	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
}

type CustomerPhone struct {
	CustomerID int64  `db:"customer_id" json:"customer_id"`
	Phone      string `db:"phone" json:"phone"`
}
