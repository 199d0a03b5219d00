package domain

type Manager struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Password string  `db:"password" json:"password,omitempty"`
	Phone    string  `db:"phone" json:"phone"`
	Email    *string `db:"email" json:"email,omitempty"`
}
