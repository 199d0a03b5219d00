package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sirius241/Pharmacy-Managment-System/domain"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/orders"
)

type placeOrderRequest struct {
	DrugName string `json:"drug_name"`
	Quantity int64  `json:"quantity"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleCustomer) {
		return
	}
	customerID := userIDFromContext(r)
	if customerID <= 0 {
		respondError(w, http.StatusUnauthorized, h.localize(r, "You must be logged in as a customer!"))
		return
	}

	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DrugName == "" {
		respondError(w, http.StatusBadRequest, "drug_name is required")
		return
	}

	placement, err := h.orders.Place(r.Context(), customerID, req.DrugName, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidQuantity):
			respondError(w, http.StatusBadRequest, h.localize(r, "Quantity must be a positive integer."))
		case errors.Is(err, domain.ErrNotFound):
			respondError(w, http.StatusNotFound, h.localize(r, "Drug not found."))
		case errors.Is(err, domain.ErrInsufficientStock):
			respondError(w, http.StatusConflict, h.localize(r, "Insufficient stock. Please reduce the quantity."))
		default:
			respondError(w, http.StatusInternalServerError, "unable to place order")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"order_id":      placement.Order.ID,
		"item":          placement.Order.Item,
		"quantity":      placement.Order.Quantity,
		"remaining_qty": placement.Remaining,
		"advisory": map[string]string{
			"status": placement.Advisory.Status.String(),
			"text":   placement.Advisory.Text,
		},
		"message": h.localize(r, "Successfully placed order!"),
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, RoleCustomer) {
		return
	}
	customerID := userIDFromContext(r)

	var list []domain.Order
	if err := h.db.SelectContext(r.Context(), &list,
		`SELECT id, customer_id, quantity, name, item, created_at
		   FROM orders WHERE customer_id = ? ORDER BY id`, customerID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list orders")
		return
	}
	if list == nil {
		list = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *Handler) drugAdvisories(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "drug name is required")
		return
	}
	res := h.advisories.LookupWarnings(r.Context(), name)
	respondJSON(w, http.StatusOK, map[string]string{
		"drug":   name,
		"status": res.Status.String(),
		"text":   res.Text,
	})
}
