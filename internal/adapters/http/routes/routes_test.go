package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"net/http/httptest"
	"testing"
	"time"

	"bank-loan-simulator/internal/adapters/http/handlers"
	"bank-loan-simulator/internal/adapters/http/middleware"
	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/config"
	"bank-loan-simulator/internal/pkg/logger"
	"bank-loan-simulator/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	m.Run()
}

type testAPI struct {
	t     *testing.T
	app   *fiber.App
	users *repositories.MemoryUserRepository
}

func newTestAPI(t *testing.T, checks ...handlers.HealthCheck) *testAPI {
	t.Helper()

	cfg := &config.Config{
		AppMode:   "prod",
		JWT:       config.JWTConfig{Secret: "test-secret", Issuer: "BankLoanSimulator", ExpirationDays: 30},
		Redis:     config.RedisConfig{CacheTTL: time.Minute},
		RateLimit: config.RateLimitConfig{General: 10000, Auth: 10000},
	}
	log := logger.Nop()
	users := repositories.NewMemoryUserRepository()
	svc := NewServices(users, repositories.NewMemoryLoanRepository(), repositories.NewMemoryCache(), cfg)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	middleware.Setup(app, cfg, log)
	Setup(app, cfg, svc, log, checks...)

	return &testAPI{t: t, app: app, users: users}
}

func (a *testAPI) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)

	var out map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(a.t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func (a *testAPI) register(name, email string) string {
	a.t.Helper()

	status, body := a.do("POST", "/api/auth/register", "", fiber.Map{
		"fullName": name,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(a.t, fiber.StatusCreated, status, body)
	return data(body)["token"].(string)
}

func (a *testAPI) admin(email string) string {
	a.t.Helper()

	a.register("Admin", email)
	ctx := context.Background()
	u, err := a.users.GetByEmail(ctx, email)
	require.NoError(a.t, err)
	u.IsAdmin = true
	require.NoError(a.t, a.users.Update(ctx, u))

	status, body := a.do("POST", "/api/auth/login", "", fiber.Map{"email": email, "password": "secret1"})
	require.Equal(a.t, fiber.StatusOK, status, body)
	return data(body)["token"].(string)
}

func data(body map[string]interface{}) map[string]interface{} {
	d, _ := body["data"].(map[string]interface{})
	return d
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("Ana Lopez", "ana@example.com")

	status, body := api.do("GET", "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ana@example.com", data(body)["email"])
	assert.Equal(t, "User", data(body)["role"])

	status, body = api.do("POST", "/api/auth/register", "", fiber.Map{
		"fullName": "Ana Again", "email": "ana@example.com", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "email is already registered", body["error"])

	status, body = api.do("POST", "/api/auth/register", "", fiber.Map{
		"fullName": "Bad", "email": "not-an-email", "password": "secret1",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "email must be a valid email address", body["error"])

	status, _ = api.do("POST", "/api/auth/login", "", fiber.Map{"email": "ana@example.com", "password": "nope!!"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = api.do("GET", "/api/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = api.do("GET", "/api/auth/me", "garbage", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.register("Maria", "maria@example.com")
	otherToken := api.register("Luis", "luis@example.com")
	adminToken := api.admin("admin@example.com")

	status, body := api.do("POST", "/api/loans", userToken, fiber.Map{
		"amount": 5000, "interestRate": 8, "termInMonths": 12,
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	loan := data(body)
	loanID := loan["id"].(string)
	assert.Equal(t, "Pending", loan["status"])
	assert.Equal(t, 434.94, loan["monthlyPayment"])
	assert.Equal(t, 5000.0, loan["amount"])
	assert.Equal(t, "Maria", loan["userName"])
	assert.Nil(t, loan["reviewDate"])

	status, body = api.do("POST", "/api/loans", userToken, fiber.Map{
		"amount": 5000, "interestRate": 8, "termInMonths": 241,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "term must be between 1 and 240 months", body["error"])

	status, _ = api.do("GET", "/api/loans/"+loanID, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = api.do("GET", "/api/loans/"+loanID, adminToken, nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = api.do("GET", "/api/loans", userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = api.do("PUT", "/api/loans/"+loanID+"/review", userToken, fiber.Map{"status": "Approved"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = api.do("PUT", "/api/loans/"+loanID+"/review", adminToken, fiber.Map{"status": "Pending"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "cannot set status to Pending", body["error"])

	status, body = api.do("PUT", "/api/loans/"+loanID+"/review", adminToken, fiber.Map{
		"status": "Approved", "adminComments": "ok",
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "Approved", data(body)["status"])
	assert.Equal(t, "ok", data(body)["adminComments"])
	assert.NotNil(t, data(body)["reviewDate"])

	status, _ = api.do("PUT", "/api/loans/"+loanID+"/review", adminToken, fiber.Map{"status": "Rejected"})
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = api.do("GET", "/api/loans?status=approved", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	page := data(body)
	assert.Len(t, page["data"], 1)
	assert.EqualValues(t, 1, page["meta"].(map[string]interface{})["total"])

	status, body = api.do("GET", "/api/loans/my-loans", userToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, body = api.do("GET", "/api/users/me", userToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, data(body)["loans"].(map[string]interface{})["approved"])

	status, body = api.do("GET", "/api/dashboard", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 3, data(body)["totalUsers"])

	status, _ = api.do("DELETE", "/api/loans/"+loanID, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = api.do("DELETE", "/api/loans/"+loanID, userToken, nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = api.do("GET", "/api/loans/"+loanID, userToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = api.do("GET", "/api/loans/not-a-uuid", userToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCalculateOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("Maria", "maria@example.com")

	status, body := api.do("POST", "/api/loans/calculate", token, fiber.Map{
		"amount": 12000, "interestRate": 0, "termInMonths": 12,
	})
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, 1000.0, data(body)["monthlyPayment"])
	assert.Equal(t, 12000.0, data(body)["totalPayment"])
	assert.Equal(t, 0.0, data(body)["totalInterest"])

	status, body = api.do("POST", "/api/loans/calculate", token, fiber.Map{
		"amount": 0, "interestRate": 5, "termInMonths": 12,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "amount must be greater than 0", body["error"])

	status, _ = api.do("POST", "/api/loans/calculate", "", fiber.Map{"amount": 1})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestOperationalEndpoints(t *testing.T) {
	api := newTestAPI(t, handlers.HealthCheck{
		Name:  "database",
		Check: func(context.Context) error { return errors.New("down") },
	})

	status, body := api.do("GET", "/", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "running", body["status"])

	status, body = api.do("GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["checks"].(map[string]interface{})["database"])

	req := httptest.NewRequest("GET", "/metrics", nil)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "bank_loan_http_requests_total")
}

func TestLoanListing_PageBeyondRange(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.register("Maria", "maria@example.com")
	adminToken := api.admin("admin@example.com")

	status, _ := api.do("POST", "/api/loans", userToken, fiber.Map{
		"amount": 5000, "interestRate": 8, "termInMonths": 12,
	})
	require.Equal(t, fiber.StatusCreated, status)

	for _, query := range []string{"?page=922337203685477581&limit=20", "?page=1000&limit=100"} {
		status, body := api.do("GET", "/api/loans"+query, adminToken, nil)
		require.Equal(t, fiber.StatusOK, status, query)
		page := data(body)
		assert.Empty(t, page["data"], query)
		assert.EqualValues(t, 1, page["meta"].(map[string]interface{})["total"], query)
	}

	status, body := api.do("GET", "/api/users?page=922337203685477581", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, data(body)["data"])
}

func TestDashboardReflectsReviewImmediately(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.register("Maria", "maria@example.com")
	adminToken := api.admin("admin@example.com")

	_, body := api.do("POST", "/api/loans", userToken, fiber.Map{
		"amount": 5000, "interestRate": 8, "termInMonths": 12,
	})
	loanID := data(body)["id"].(string)

	status, body := api.do("GET", "/api/dashboard", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, data(body)["loans"].(map[string]interface{})["pending"])

	status, _ = api.do("PUT", "/api/loans/"+loanID+"/review", adminToken, fiber.Map{"status": "Approved"})
	require.Equal(t, fiber.StatusOK, status)

	status, body = api.do("GET", "/api/dashboard", adminToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	loans := data(body)["loans"].(map[string]interface{})
	assert.EqualValues(t, 0, loans["pending"])
	assert.EqualValues(t, 1, loans["approved"])
	assert.Equal(t, 5000.0, data(body)["totalApproved"])
}

func TestCreateLoan_StoresCentPrecision(t *testing.T) {
	api := newTestAPI(t)
	token := api.register("Maria", "maria@example.com")

	status, body := api.do("POST", "/api/loans", token, fiber.Map{
		"amount": 5000.004, "interestRate": 7.995, "termInMonths": 12,
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	loan := data(body)
	assert.Equal(t, 5000.0, loan["amount"])
	assert.Equal(t, 8.0, loan["interestRate"])
	assert.Equal(t, 434.94, loan["monthlyPayment"])
}

func TestRegister_PasswordLongerThanBcryptAccepts(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do("POST", "/api/auth/register", "", fiber.Map{
		"fullName": "Ana", "email": "ana@example.com", "password": strings.Repeat("a", 73),
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "password must be at most 72 characters", body["error"])

	// 40 runes pass the character limit but take 80 bytes
	status, body = api.do("POST", "/api/auth/register", "", fiber.Map{
		"fullName": "Ana", "email": "ana@example.com", "password": strings.Repeat("ñ", 40),
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "password must be at most 72 bytes", body["error"])
}
