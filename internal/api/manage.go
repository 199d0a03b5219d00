package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Sirius241/Pharmacy-Managment-System/domain"
)

// Inventory

type inventoryRow struct {
	DrugID       int64  `db:"drug_id" json:"drug_id"`
	DrugName     string `db:"drug_name" json:"drug_name"`
	ManagerID    int64  `db:"manager_id" json:"manager_id"`
	RemainingQty int64  `db:"remaining_qty" json:"remaining_qty"`
}

func (h *Handler) viewInventory(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleManager) {
		return
	}
	var rows []inventoryRow
	if err := h.db.SelectContext(r.Context(), &rows,
		`SELECT i.drug_id, d.name AS drug_name, i.manager_id, i.remaining_qty
		   FROM inventory i
		   JOIN drugs d ON d.id = i.drug_id
		  ORDER BY d.name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load inventory")
		return
	}
	if rows == nil {
		rows = []inventoryRow{}
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) notifyStockouts(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleManager) {
		return
	}
	report, err := h.stockouts.ScanAndNotify(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to scan inventory")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Suppliers

type supplierRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleManager) {
		return
	}
	var suppliers []domain.Supplier
	if err := h.db.SelectContext(r.Context(), &suppliers,
		`SELECT id, name, address, phone FROM suppliers ORDER BY id`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list suppliers")
		return
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	respondJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) addSupplier(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleManager) {
		return
	}
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	res, err := h.db.ExecContext(r.Context(),
		`INSERT INTO suppliers (name, address, phone) VALUES (?, ?, ?)`,
		req.Name, req.Address, req.Phone)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to add supplier")
		return
	}
	id, _ := res.LastInsertId()
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": h.localize(r, "Supplier added successfully!"),
	})
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleManager) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var current domain.Supplier
	if err := h.db.GetContext(r.Context(), &current,
		`SELECT id, name, address, phone FROM suppliers WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, h.localize(r, "Supplier ID not found."))
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load supplier")
		return
	}

	// Blank fields keep their current value.
	var (
		sets []string
		args []any
	)
	if req.Name != "" && req.Name != current.Name {
		sets = append(sets, "name = ?")
		args = append(args, req.Name)
	}
	if req.Address != "" && req.Address != current.Address {
		sets = append(sets, "address = ?")
		args = append(args, req.Address)
	}
	if req.Phone != "" && req.Phone != current.Phone {
		sets = append(sets, "phone = ?")
		args = append(args, req.Phone)
	}
	if len(sets) == 0 {
		respondJSON(w, http.StatusOK, map[string]string{
			"message": h.localize(r, "No changes were made."),
		})
		return
	}
	args = append(args, id)

	if _, err := h.db.ExecContext(r.Context(),
		`UPDATE suppliers SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update supplier")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": h.localize(r, "Supplier updated successfully!"),
	})
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleManager) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	var name string
	if err := h.db.GetContext(r.Context(), &name,
		`SELECT name FROM suppliers WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, h.localize(r, "Supplier ID not found."))
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load supplier")
		return
	}

	if _, err := h.db.ExecContext(r.Context(), `DELETE FROM suppliers WHERE id = ?`, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete supplier")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"name":    name,
		"message": h.localize(r, "Supplier "+name+" deleted successfully!"),
	})
}

// Sales

func (h *Handler) salesReport(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleManager) {
		return
	}
	var sales []domain.Sale
	if err := h.db.SelectContext(r.Context(), &sales,
		`SELECT id, total_amount, sale_date, sale_time
		   FROM sales ORDER BY sale_date DESC, sale_time DESC`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to fetch sales report")
		return
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	respondJSON(w, http.StatusOK, sales)
}
