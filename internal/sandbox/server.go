// Package sandbox runs a small in-process POS backend for development and
// testing. It speaks the exact wire dialect the client expects, backed by
// SQLite, so the whole order flow can be exercised without a real server:
//
//	srv := sandbox.New(sandbox.Options{DSN: "file::memory:?cache=shared"})
//	http.ListenAndServe(":8080", srv.Handler())
package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/marespinozac/comanda/app/models"
	"github.com/marespinozac/comanda/pkg/logger"
)

// Options configures a sandbox server.
type Options struct {
	DSN  string // SQLite DSN, e.g. "comanda_sandbox.db" or "file::memory:?cache=shared"
	Seed bool   // load demo users, categories and products on startup
}

// Server is the sandbox backend.
type Server struct {
	db     *gorm.DB
	router chi.Router
}

// New opens the database, migrates the schema and builds the router.
func New(opts Options) (*Server, error) {
	db, err := gorm.Open(sqlite.Open(opts.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&User{}, &Category{}, &Product{}, &Order{}, &OrderItem{}); err != nil {
		return nil, err
	}

	s := &Server{db: db}
	if opts.Seed {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler, suitable for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("sandbox server listening", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/auth/verify", s.handleVerify)

			r.Get("/categories", s.handleListCategories)
			r.Post("/categories", s.handleCreateCategory)

			r.Get("/products", s.handleListProducts)
			r.Post("/products", s.handleCreateProduct)
			r.Get("/products/{id}", s.handleGetProduct)
			r.Put("/products/{id}", s.handleUpdateProduct)
			r.Delete("/products/{id}", s.handleDeleteProduct)

			r.Get("/orders", s.handleListOrders)
			r.Post("/orders", s.handleCreateOrder)
			r.Get("/orders/{id}", s.handleGetOrder)
			r.Patch("/orders/{id}", s.handleUpdateOrderStatus)
			r.Patch("/orders/{id}/cancel", s.handleCancelOrder)
		})
	})

	s.router = r
}

// ─── Middleware ──────────────────────────────────────────────────────────────

type ctxKey string

const claimsKey ctxKey = "claims"

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := validateToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// ─── Auth handlers ───────────────────────────────────────────────────────────

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var u User
	if err := s.db.Where("username = ?", in.Username).First(&u).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !checkPassword(u.PasswordHash, in.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := generateToken(&u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": u})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if !models.Role(in.Role).Valid() {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}

	var count int64
	s.db.Model(&User{}).Where("username = ?", in.Username).Count(&count)
	if count > 0 {
		writeError(w, http.StatusBadRequest, "username already taken")
		return
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	u := User{Username: in.Username, PasswordHash: hash, FullName: in.FullName, Role: in.Role}
	if err := s.db.Create(&u).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not create user")
		return
	}

	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	claims := r.Context().Value(claimsKey).(*Claims)

	var u User
	if err := s.db.First(&u, "id = ?", claims.UserID).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// ─── Category handlers ───────────────────────────────────────────────────────

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	var out []Category
	if err := s.db.Order("name").Find(&out).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
		Icon        string `json:"icon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	c := Category{Name: in.Name, Description: in.Description, Color: in.Color, Icon: in.Icon}
	if err := s.db.Create(&c).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not create category")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// ─── Product handlers ────────────────────────────────────────────────────────

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := s.db.Preload("Category").Order("name")

	if cat := r.URL.Query().Get("categoryId"); cat != "" {
		q = q.Where("category_id = ?", cat)
	}
	if active := r.URL.Query().Get("isActive"); active != "" {
		q = q.Where("is_active = ?", active == "true")
	}

	var out []Product
	if err := q.Find(&out).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not list products")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	var p Product
	err := s.db.Preload("Category").First(&p, "id = ?", chi.URLParam(r, "id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type productInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"categoryId"`
	Stock       int     `json:"stock"`
	MinStock    int     `json:"minStock"`
	IsActive    bool    `json:"isActive"`
}

func (in productInput) check() string {
	if strings.TrimSpace(in.Name) == "" {
		return "name is required"
	}
	if in.Price < 0 {
		return "price must not be negative"
	}
	if in.CategoryID == "" {
		return "categoryId is required"
	}
	return ""
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := in.check(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		IsActive:    in.IsActive,
	}
	if err := s.db.Create(&p).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not create product")
		return
	}
	s.db.Preload("Category").First(&p, "id = ?", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p Product
	err := s.db.First(&p, "id = ?", chi.URLParam(r, "id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load product")
		return
	}

	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := in.check(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.CategoryID = in.CategoryID
	p.Stock = in.Stock
	p.MinStock = in.MinStock
	p.IsActive = in.IsActive

	if err := s.db.Save(&p).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not update product")
		return
	}
	s.db.Preload("Category").First(&p, "id = ?", p.ID)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	res := s.db.Delete(&Product{}, "id = ?", chi.URLParam(r, "id"))
	if res.Error != nil {
		writeError(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// ─── Order handlers ──────────────────────────────────────────────────────────

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	q := s.db.Preload("Items").Preload("Items.Product").Order("created_at")

	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if table := r.URL.Query().Get("tableNumber"); table != "" {
		q = q.Where("table_number = ?", table)
	}

	var out []Order
	if err := q.Find(&out).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not list orders")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.loadOrder(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TableNumber string  `json:"tableNumber"`
		Subtotal    float64 `json:"subtotal"`
		Total       float64 `json:"total"`
		Notes       string  `json:"notes"`
		Items       []struct {
			ProductID string  `json:"productId"`
			Quantity  int     `json:"quantity"`
			Price     float64 `json:"price"`
			Notes     string  `json:"notes"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.TableNumber == "" {
		writeError(w, http.StatusBadRequest, "tableNumber is required")
		return
	}
	if len(in.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order has no items")
		return
	}

	order := Order{
		TableNumber: in.TableNumber,
		Subtotal:    in.Subtotal,
		Total:       in.Total,
		Notes:       in.Notes,
		Status:      string(models.StatusPending),
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "item quantity must be positive")
			return
		}
		order.Items = append(order.Items, OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Notes:     it.Notes,
		})
	}

	if err := s.db.Create(&order).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not create order")
		return
	}

	created, ok := s.loadOrder(w, order.ID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !models.Status(in.Status).Valid() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	order, ok := s.loadOrder(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if models.Status(order.Status).Terminal() {
		writeError(w, http.StatusBadRequest, "order is already closed")
		return
	}

	if err := s.db.Model(order).Update("status", in.Status).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not update order")
		return
	}
	order.Status = in.Status
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.loadOrder(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if models.Status(order.Status).Terminal() {
		writeError(w, http.StatusBadRequest, "order is already closed")
		return
	}

	cancelled := string(models.StatusCancelled)
	if err := s.db.Model(order).Update("status", cancelled).Error; err != nil {
		writeError(w, http.StatusInternalServerError, "could not cancel order")
		return
	}
	order.Status = cancelled
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) loadOrder(w http.ResponseWriter, id string) (*Order, bool) {
	var order Order
	err := s.db.Preload("Items").Preload("Items.Product").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load order")
		return nil, false
	}
	return &order, true
}

// ─── Responses ───────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
