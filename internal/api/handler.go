package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"

	"github.com/Sirius241/Pharmacy-Managment-System/internal/assistant"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/orders"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/stockout"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/tags"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/translate"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxRole   ctxKey = "role"
)

const (
	RoleCustomer = "customer"
	RoleManager  = "manager"
)

// langHeader selects the language for user-facing error messages.
const langHeader = "X-Language"

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db         *sqlx.DB
	secret     string
	orders     *orders.Service
	stockouts  *stockout.Dispatcher
	advisories orders.AdvisorySource
	tags       *tags.Resolver
	assistant  *assistant.Service
	translator *translate.Translator
}

// Deps lists the collaborators a Handler needs.
type Deps struct {
	DB         *sqlx.DB
	Secret     string
	Orders     *orders.Service
	Stockouts  *stockout.Dispatcher
	Advisories orders.AdvisorySource
	Tags       *tags.Resolver
	Assistant  *assistant.Service
	Translator *translate.Translator
}

// New constructs a Handler.
func New(deps Deps) *Handler {
	return &Handler{
		db:         deps.DB,
		secret:     deps.Secret,
		orders:     deps.Orders,
		stockouts:  deps.Stockouts,
		advisories: deps.Advisories,
		tags:       deps.Tags,
		assistant:  deps.Assistant,
		translator: deps.Translator,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", langHeader},
		AllowCredentials: true,
	}))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/login", h.login)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/orders", func(r chi.Router) {
			r.Post("/", h.placeOrder)
			r.Get("/", h.listOrders)
		})

		pr.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.viewInventory)
			r.Post("/notifications", h.notifyStockouts)
		})

		pr.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.listSuppliers)
			r.Post("/", h.addSupplier)
			r.Put("/{id}", h.updateSupplier)
			r.Delete("/{id}", h.deleteSupplier)
		})

		pr.Get("/sales", h.salesReport)
		pr.Get("/drugs/{name}/advisories", h.drugAdvisories)

		pr.Route("/tags", func(r chi.Router) {
			r.Get("/{drugID}", h.encodeTag)
			r.Post("/decode", h.decodeTag)
		})

		pr.Post("/chat", h.chat)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Authentication helpers

type authClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID int64, role string) (string, error) {
	claims := authClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	role := r.Context().Value(ctxRole)
	if role == nil {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	current := role.(string)
	for _, allowedRole := range allowed {
		if current == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

func userIDFromContext(r *http.Request) int64 {
	if val := r.Context().Value(ctxUserID); val != nil {
		if id, ok := val.(int64); ok {
			return id
		}
	}
	return 0
}

// localize renders a user-facing message in the language the client asked for
// via the X-Language header. Translation is best effort.
func (h *Handler) localize(r *http.Request, message string) string {
	lang := strings.TrimSpace(r.Header.Get(langHeader))
	if lang == "" || h.translator == nil {
		return message
	}
	return h.translator.Translate(r.Context(), message, lang).Text
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
