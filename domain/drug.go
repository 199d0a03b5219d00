package domain

type Drug struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
}

// InventoryEntry tracks the remaining quantity of a drug under one manager.
// RemainingQty never goes below zero.
type InventoryEntry struct {
	DrugID       int64 `db:"drug_id" json:"drug_id"`
	ManagerID    int64 `db:"manager_id" json:"manager_id"`
	RemainingQty int64 `db:"remaining_qty" json:"remaining_qty"`
}
