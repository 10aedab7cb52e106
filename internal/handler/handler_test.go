package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mid "ledger-service/internal/middleware"
	"ledger-service/internal/model"
	"ledger-service/internal/service"
	"ledger-service/internal/testutil"
	"ledger-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.DB(t)
	log := zap.NewNop()
	clock := service.Clock(testutil.FixedClock(time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)))
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})

	h := &Handlers{
		Health:    NewHealthHandler(db),
		Auth:      NewAuthHandler(service.NewAuthService(db, log, jwtUtil)),
		Customers: NewCustomerHandler(service.NewCustomerService(db, log)),
		Products:  NewProductHandler(service.NewProductService(db, log)),
		Purchases: NewPurchaseHandler(service.NewPurchaseService(db, log, clock, 30)),
		Dashboard: NewDashboardHandler(service.NewDashboardService(db, log, clock)),
		Reminders: NewReminderHandler(service.NewReminderService(db, log, clock, nil, false)),
		Profile:   NewProfileHandler(service.NewProfileService(db, log)),
	}

	e := echo.New()
	e.Validator = NewRequestValidator()
	e.Use(mid.RequestIDMiddleware())
	RegisterRoutes(e, h, mid.JWTAuthMiddleware(jwtUtil))
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signUp(username string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/auth/register", "", fmt.Sprintf(`{"username":%q,"password":"s3cret!"}`, username))
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/auth/login", "", fmt.Sprintf(`{"username":%q,"password":"s3cret!"}`, username))
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp LoginResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func (s *testServer) create(path, token, body string) uint {
	s.t.Helper()
	rec := s.do(http.MethodPost, path, token, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPurchaseFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp("alice")

	customerID := s.create("/api/customers", token, `{"name":"Carol","email":"carol@example.com"}`)
	productID := s.create("/api/products", token, `{"name":"Rice","price":"10.00"}`)

	purchasesPath := fmt.Sprintf("/api/customers/%d/purchases", customerID)
	rec := s.do(http.MethodPost, purchasesPath, token, fmt.Sprintf(`{"product_id":%d,"quantity":3,"payment_status":"PAID"}`, productID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var purchase model.Purchase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &purchase))
	assert.Equal(t, "30.00", purchase.TotalAmount.StringFixed(2))
	assert.Equal(t, model.PaymentPaid, purchase.PaymentStatus)

	// a client supplied total is ignored
	s.create(purchasesPath, token, fmt.Sprintf(`{"product_id":%d,"quantity":2,"total_amount":"1.00"}`, productID))

	rec = s.do(http.MethodGet, "/api/dashboard", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "50.00", summary.TotalSales.StringFixed(2))
	assert.Equal(t, int64(1), summary.PaidCount)
	assert.Equal(t, int64(1), summary.UnpaidCount)

	for _, period := range []string{"fortnightly", "Daily"} {
		rec = s.do(http.MethodGet, "/api/dashboard?period="+period, token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var other service.Summary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &other))
		assert.True(t, other.TotalSales.IsZero(), period)
		assert.Empty(t, other.Sales, period)
	}

	rec = s.do(http.MethodPatch, fmt.Sprintf("/api/purchases/%d/payment", purchase.ID), token, `{"payment_status":"pending"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, purchasesPath, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var purchases []model.Purchase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &purchases))
	assert.Len(t, purchases, 2)
}

func TestPurchaseValidationResponses(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUp("alice")
	bob := s.signUp("bob")

	customerID := s.create("/api/customers", alice, `{"name":"Carol"}`)
	aliceProduct := s.create("/api/products", alice, `{"name":"Rice","price":10}`)
	bobProduct := s.create("/api/products", bob, `{"name":"Tea","price":"4.50"}`)
	purchasesPath := fmt.Sprintf("/api/customers/%d/purchases", customerID)

	rec := s.do(http.MethodPost, purchasesPath, alice, fmt.Sprintf(`{"product_id":%d,"quantity":1}`, bobProduct))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "ownership_mismatch", decodeError(t, rec)["code"])

	rec = s.do(http.MethodPost, purchasesPath, alice, fmt.Sprintf(`{"product_id":%d,"quantity":0}`, aliceProduct))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_quantity", decodeError(t, rec)["code"])

	rec = s.do(http.MethodPost, purchasesPath, alice, fmt.Sprintf(`{"product_id":%d,"quantity":1,"payment_status":"someday"}`, aliceProduct))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_payment_status", decodeError(t, rec)["code"])

	rec = s.do(http.MethodPost, purchasesPath, alice, `{"product_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/products", alice, `{"name":"Bad","price":"-2"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "negative_price", decodeError(t, rec)["code"])

	rec = s.do(http.MethodPost, "/api/customers", alice, fmt.Sprintf(`{"name":%q}`, strings.Repeat("n", 255)))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/customers", alice, fmt.Sprintf(`{"name":%q}`, strings.Repeat("n", 256)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/api/customers", alice, `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec)["code"])
}

func TestForeignRecordsRedirect(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUp("alice")
	bob := s.signUp("bob")

	customerID := s.create("/api/customers", alice, `{"name":"Carol"}`)
	productID := s.create("/api/products", alice, `{"name":"Rice","price":"10"}`)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/customers/%d", customerID), bob, "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/customers", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", productID), bob, "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/products", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodGet, "/api/customers/9999", alice, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/customers/abc", alice, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/customers", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/customers", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.signUp("alice")

	rec = s.do(http.MethodPost, "/auth/register", "", `{"username":"alice","password":"another1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", "", `{"username":"alice","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPut, "/api/profile", token, `{"whatsapp_number":"+15550001"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var profile model.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.NotNil(t, profile.WhatsAppNumber)
	assert.Equal(t, "+15550001", *profile.WhatsAppNumber)

	rec = s.do(http.MethodPost, "/auth/logout", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Logged out","username":"alice"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health?check=db", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"db_status":"ok"`)
}
