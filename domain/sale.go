package domain

type Sale struct {
	ID          int64   `db:"id" json:"id"`
	TotalAmount float64 `db:"total_amount" json:"total_amount"`
	Date        string  `db:"sale_date" json:"date"`
	Time        string  `db:"sale_time" json:"time"`
}
