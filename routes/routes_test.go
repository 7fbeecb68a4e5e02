package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Sathiel13/server-REP-X/config"
	paymentControllers "github.com/Sathiel13/server-REP-X/controllers/payment"
	"github.com/Sathiel13/server-REP-X/middleware"
	"github.com/Sathiel13/server-REP-X/models"
)

const (
	testJWTSecret     = "jwt-test-secret"
	testWebhookSecret = "whsec-test"
)

func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{},
		&models.Coupon{}, &models.Order{}, &models.OrderItem{},
		&models.Payment{}, &models.WebhookEvent{},
	))

	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_e2e_1",
			"client_secret": "pi_e2e_1_secret",
			"status":        "requires_payment_method",
		})
	}))
	t.Cleanup(gw.Close)

	cfg := &config.Config{
		Port:      "4000",
		JWTSecret: testJWTSecret,
		UploadDir: t.TempDir(),
		Payment: config.Payment{
			SecretKey:     "sk_test",
			WebhookSecret: testWebhookSecret,
			APIURL:        gw.URL,
			Currency:      "usd",
		},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, Deps{
		DB:      db,
		Config:  cfg,
		Logger:  zerolog.Nop(),
		Gateway: paymentControllers.NewClient(cfg.Payment.APIURL, cfg.Payment.SecretKey),
	})
	return r, db
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Walks the whole storefront flow: register, log in, fill a cart, start
// checkout, receive the gateway webhook, and end with an order and no cart.
func TestCheckoutFlow(t *testing.T) {
	r, db := newTestApp(t)

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "widget", Price: 10.00, Stock: 10}).Error)
	require.NoError(t, db.Create(&models.Product{ID: "p2", Name: "gadget", Price: 5.00, Stock: 10}).Error)

	w = doJSON(r, http.MethodPost, "/cart", login.Token, gin.H{"product_id": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/cart", login.Token, gin.H{"product_id": "p2", "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/create-payment-intent", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var checkout struct {
		ClientSecret string  `json:"clientSecret"`
		Total        float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))
	assert.Equal(t, "pi_e2e_1_secret", checkout.ClientSecret)
	assert.Equal(t, 25.00, checkout.Total)

	var payment models.Payment
	require.NoError(t, db.First(&payment, "intent_id = ?", "pi_e2e_1").Error)

	payload, _ := json.Marshal(gin.H{
		"id":   "evt_e2e_1",
		"type": "payment_intent.succeeded",
		"data": gin.H{"object": gin.H{
			"id":       "pi_e2e_1",
			"metadata": gin.H{"user_id": payment.UserID, "cart_id": payment.CartID},
			"shipping": gin.H{"address": gin.H{
				"line1": "Av. Reforma 123", "city": "CDMX", "postal_code": "06600", "country": "MX",
			}},
		}},
	})
	ts := time.Now().Unix()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set(middleware.SignatureHeader,
		fmt.Sprintf("t=%d,v1=%s", ts, middleware.ComputeSignature(testWebhookSecret, ts, payload)))
	wh := httptest.NewRecorder()
	r.ServeHTTP(wh, req)
	require.Equal(t, http.StatusOK, wh.Code)

	var order models.Order
	require.NoError(t, db.Preload("Products").First(&order, "user_id = ?", payment.UserID).Error)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, models.DeliveryStatusProcessing, order.DeliveryStatus)
	assert.Equal(t, 25.00, order.Total)
	assert.Len(t, order.Products, 2)

	// Cart is gone once the order exists.
	w = doJSON(r, http.MethodGet, "/cart", login.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r, _ := newTestApp(t)

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doJSON(r, http.MethodGet, "/admin/dashboard-metrics", login.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/admin/dashboard-metrics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r, _ := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/cart"},
		{http.MethodPost, "/cart"},
		{http.MethodPost, "/create-payment-intent"},
		{http.MethodPost, "/orders"},
	} {
		w := doJSON(r, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestWebhookRouteRequiresSignature(t *testing.T) {
	r, db := newTestApp(t)

	payload := []byte(`{"id":"evt_x","type":"payment_intent.succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.WebhookEvent{}).Count(&count)
	assert.Zero(t, count)
}
