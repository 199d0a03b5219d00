package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Sirius241/Pharmacy-Managment-System/internal/validate"
)

type signupRequest struct {
	Name     string `json:"name"`
	Age      int64  `json:"age"`
	Sex      string `json:"sex"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Address == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, h.localize(r, "All fields except phone number are required!"))
		return
	}
	if req.Age <= 0 {
		respondError(w, http.StatusBadRequest, h.localize(r, "Age must be a positive number."))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Email(email); err != nil {
		respondError(w, http.StatusBadRequest, h.localize(r, validationMessage(err)))
		return
	}
	if err := validate.Password(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, h.localize(r, validationMessage(err)))
		return
	}
	phone := strings.TrimSpace(req.Phone)
	if phone != "" {
		if err := validate.Phone(phone); err != nil {
			respondError(w, http.StatusBadRequest, h.localize(r, validationMessage(err)))
			return
		}
	}

	var exists bool
	if err := h.db.GetContext(r.Context(), &exists,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE email = ?)`, email); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to check registration")
		return
	}
	if exists {
		respondError(w, http.StatusConflict, h.localize(r, "Email is already registered. Please log in instead."))
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start registration")
		return
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(r.Context(),
		`INSERT INTO customers (name, age, sex, address, email, password) VALUES (?, ?, ?, ?, ?, ?)`,
		req.Name, req.Age, req.Sex, req.Address, email, req.Password)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			respondError(w, http.StatusConflict, h.localize(r, "Email is already registered. Please log in instead."))
			return
		}
		respondError(w, http.StatusInternalServerError, "db error: "+err.Error())
		return
	}
	customerID, err := res.LastInsertId()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to complete registration")
		return
	}

	if phone != "" {
		if _, err := tx.ExecContext(r.Context(),
			`INSERT INTO customer_phones (customer_id, phone) VALUES (?, ?)`, customerID, phone); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to save phone number")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to complete registration")
		return
	}

	logrus.Infof("registered customer %d", customerID)
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":      customerID,
		"message": h.localize(r, "Signup successful! You can now log in."),
	})
}

type loginRequest struct {
	// Username is the customer's email or the manager's name.
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Role != RoleCustomer && req.Role != RoleManager {
		respondError(w, http.StatusBadRequest, "role must be customer or manager")
		return
	}

	var (
		userID int64
		err    error
	)
	if req.Role == RoleCustomer {
		err = h.db.GetContext(r.Context(), &userID,
			`SELECT id FROM customers WHERE email = ? AND password = ?`,
			strings.ToLower(strings.TrimSpace(req.Username)), req.Password)
	} else {
		err = h.db.GetContext(r.Context(), &userID,
			`SELECT id FROM managers WHERE name = ? AND password = ?`,
			req.Username, req.Password)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusUnauthorized, h.localize(r, "Invalid credentials. Please try again."))
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to verify credentials")
		return
	}

	token, err := h.generateToken(userID, req.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token":   token,
		"user_id": userID,
		"role":    req.Role,
		"message": h.localize(r, "Logged in as "+req.Role+"!"),
	})
}

func validationMessage(err error) string {
	var fieldErr *validate.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Message
	}
	return err.Error()
}
