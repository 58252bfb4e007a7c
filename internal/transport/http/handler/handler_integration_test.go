package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"products-api/internal/core/auth"
	"products-api/internal/core/config"
	"products-api/internal/core/database"
	"products-api/internal/domain"
	"products-api/internal/repo"
	"products-api/internal/service"
	"products-api/internal/transport/http/handler"
	"products-api/internal/transport/http/router"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestDB(t *testing.T, suffix string) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_") + suffix
	db, err := database.NewGorm(database.Opts{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

// setupRouter wires the full engine against in-memory stores: a product
// database and a separate identity database, like production.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	productDB := newTestDB(t, "_products")
	require.NoError(t, database.MigrateProducts(productDB))
	authDB := newTestDB(t, "_identity")
	require.NoError(t, database.MigrateIdentity(authDB))

	jwter := &auth.JWTer{
		Secret: []byte("test-secret-test-secret-test-secret"),
		Issuer: "products-api-test",
		TTL:    30 * time.Minute,
	}
	policy := config.Password{MinLength: 8, RequireUppercase: true, RequireLowercase: true}

	productSvc := service.NewProductService(repo.NewProductRepo(productDB))
	userSvc := service.NewUserService(repo.NewUserRepo(authDB), jwter, policy)

	return router.NewAPIEngine(zap.NewNop(), jwter,
		handler.NewProductHandler(productSvc),
		handler.NewUserHandler(userSvc),
	)
}

func doJSON(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Message
}

// loginAs registers the user, optionally grants roles, and returns a token.
func loginAs(t *testing.T, r *gin.Engine, username string, roles ...string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/user/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "Sup3rSecret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, role := range roles {
		w = doJSON(r, http.MethodPost, "/api/user/add-role/"+role, nil, "")
		require.Contains(t, []int{http.StatusOK, http.StatusBadRequest}, w.Code) // 400 when the role already exists
		w = doJSON(r, http.MethodPost, "/api/user/assign-role", gin.H{"username": username, "role": role}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/api/user/login", gin.H{"username": username, "password": "Sup3rSecret"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestProductLifecycle(t *testing.T) {
	r := setupRouter(t)
	token := loginAs(t, r, "admin", "Admin")

	// create
	w := doJSON(r, http.MethodPost, "/api/products", gin.H{"name": "Test", "price": 12500.00, "stock": 100}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Product created successfully!", message(t, w))

	// list includes the new row with a store-assigned id
	w = doJSON(r, http.MethodGet, "/api/products", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	id := products[0].ID
	assert.Equal(t, 100000, id)
	assert.Nil(t, products[0].UpdatedAt)

	// fetch
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	// decrement within stock
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/decrement-stock/%d/2", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully decremented product stock! Available stock = 98", message(t, w))

	// decrement past stock: 200 with the insufficient message, row untouched
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/decrement-stock/%d/200", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Insufficient Stock, Available stock: 98, Requested: 200", message(t, w))

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var p domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 98, p.Stock)

	// add-to-stock has no upper bound
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/add-to-stock/%d/5", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully incremented product stock! Available stock = 103", message(t, w))

	// update overwrites fields and sets the updated timestamp
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/products/%d", id), gin.H{"name": "Test v2", "price": 9999.999, "stock": 50}, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product updated successfully", message(t, w))

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Test v2", p.Name)
	assert.Equal(t, 50, p.Stock)
	assert.NotNil(t, p.UpdatedAt)

	// delete, then the id is gone
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deleted successfully", message(t, w))

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product deletion failed", message(t, w))
}

func TestStockAdjustmentOnMissingProduct(t *testing.T) {
	r := setupRouter(t)
	token := loginAs(t, r, "admin", "Admin")

	w := doJSON(r, http.MethodPut, "/api/products/add-to-stock/100999/5", nil, token)
	require.Equal(t, http.StatusOK, w.Code, "stock endpoints never signal failure via status")
	assert.Equal(t, "Product with ID '100999' does not exist, please check", message(t, w))
}

func TestUpdateMissingProductFails(t *testing.T) {
	r := setupRouter(t)
	token := loginAs(t, r, "admin", "Admin")

	w := doJSON(r, http.MethodPut, "/api/products/100999", gin.H{"name": "Ghost", "price": 1, "stock": 1}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product updation failed", message(t, w))
}

func TestCreateRejectsInvalidDto(t *testing.T) {
	r := setupRouter(t)
	token := loginAs(t, r, "admin", "Admin")

	w := doJSON(r, http.MethodPost, "/api/products", gin.H{"name": "Bad", "price": -1, "stock": 1}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/products", gin.H{"price": 1, "stock": 1}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductRoutesAreAdminGated(t *testing.T) {
	r := setupRouter(t)

	// unauthenticated
	w := doJSON(r, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// authenticated but not Admin
	token := loginAs(t, r, "viewer")
	w = doJSON(r, http.MethodGet, "/api/products", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// garbage token
	w = doJSON(r, http.MethodGet, "/api/products", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/user/register", gin.H{
		"username": "weak",
		"email":    "weak@example.com",
		"password": "short",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errs []domain.FieldError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	codes := make([]string, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	assert.Contains(t, codes, "PasswordTooShort")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setupRouter(t)
	loginAs(t, r, "someone")

	w := doJSON(r, http.MethodPost, "/api/user/login", gin.H{"username": "someone", "password": "WrongPass1"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestAssignRoleToMissingUser(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/user/add-role/Admin", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/user/assign-role", gin.H{"username": "ghost", "role": "Admin"}, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ghost user not exists!", message(t, w))
}

func TestAddRoleTwiceIsConflict(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/user/add-role/Admin", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Admin Role added successfully", message(t, w))

	w = doJSON(r, http.MethodPost, "/api/user/add-role/Admin", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errs []domain.FieldError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "Admin role already exists", errs[0].Description)
}

func TestHealthAndMetrics(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
