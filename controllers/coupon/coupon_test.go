package couponControllers

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
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Sathiel13/server-REP-X/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Coupon{}))
	return db
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/cupon", CreateCoupon(db))
	r.GET("/admin/cupon", GetAllCoupons(db))
	r.PUT("/admin/cupon/:id/activate", ActivateCoupon(db))
	r.PUT("/admin/cupon/:id/deactivate", DeactivateCoupon(db))
	r.POST("/validatecupon", ValidateCoupon(db))
	return r
}

func seedCoupon(t *testing.T, db *gorm.DB, mutate func(*models.Coupon)) models.Coupon {
	t.Helper()
	coupon := models.Coupon{
		ID:           uuid.NewString(),
		Code:         "SUMMER10",
		DiscountType: models.DiscountPercentage,
		Value:        10,
		MaxUses:      5,
		ValidFrom:    time.Now().Add(-time.Hour),
		ValidUntil:   time.Now().Add(time.Hour),
		IsActive:     true,
	}
	if mutate != nil {
		mutate(&coupon)
	}
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

func validate(r *gin.Engine, code string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"code": code})
	req := httptest.NewRequest(http.MethodPost, "/validatecupon", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateCoupon_Valid(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	coupon := seedCoupon(t, db, nil)

	w := validate(r, "summer10") // case-insensitive lookup
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["valid"])
	assert.Equal(t, "percentage", resp["discount_type"])
	assert.Equal(t, 10.0, resp["value"])
	assert.Equal(t, coupon.ID, resp["coupon_id"])
}

func TestValidateCoupon_UniformFailureMessage(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Coupon)
		code   string
	}{
		{"unknown code", nil, "NOPE"},
		{"inactive", func(c *models.Coupon) { c.IsActive = false }, "SUMMER10"},
		{"exhausted", func(c *models.Coupon) { c.UsedCount = c.MaxUses }, "SUMMER10"},
		{"not yet valid", func(c *models.Coupon) { c.ValidFrom = time.Now().Add(time.Hour) }, "SUMMER10"},
		{"expired", func(c *models.Coupon) { c.ValidUntil = time.Now().Add(-time.Hour) }, "SUMMER10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			r := newTestRouter(db)
			seedCoupon(t, db, tc.mutate)

			w := validate(r, tc.code)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["valid"])
			// Every failure reads identically so codes cannot be enumerated.
			assert.Equal(t, "Invalid or expired coupon", resp["message"])
		})
	}
}

func TestValidateCoupon_DoesNotConsumeUses(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	coupon := seedCoupon(t, db, nil)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, validate(r, "SUMMER10").Code)
	}

	var fresh models.Coupon
	require.NoError(t, db.First(&fresh, "id = ?", coupon.ID).Error)
	assert.Zero(t, fresh.UsedCount)
}

func TestRedeem_IncrementsUsedCount(t *testing.T) {
	db := newTestDB(t)
	coupon := seedCoupon(t, db, nil)

	require.NoError(t, Redeem(db, coupon.ID))
	require.NoError(t, Redeem(db, coupon.ID))

	var fresh models.Coupon
	require.NoError(t, db.First(&fresh, "id = ?", coupon.ID).Error)
	assert.Equal(t, 2, fresh.UsedCount)
}

func TestRedeem_UnknownCoupon(t *testing.T) {
	db := newTestDB(t)
	assert.ErrorIs(t, Redeem(db, "missing"), gorm.ErrRecordNotFound)
}

func TestDeactivateCoupon_InvalidatesBeforeExpiry(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	coupon := seedCoupon(t, db, nil)

	require.Equal(t, http.StatusOK, validate(r, "SUMMER10").Code)

	req := httptest.NewRequest(http.MethodPut, "/admin/cupon/"+coupon.ID+"/deactivate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Still inside its validity window, yet no longer valid.
	assert.Equal(t, http.StatusBadRequest, validate(r, "SUMMER10").Code)

	req = httptest.NewRequest(http.MethodPut, "/admin/cupon/"+coupon.ID+"/activate", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusOK, validate(r, "SUMMER10").Code)
}

func TestCreateCoupon_NormalizesCodeUppercase(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	body, _ := json.Marshal(map[string]interface{}{
		"code":          "  winter20 ",
		"discount_type": "fixed",
		"value":         20,
		"max_uses":      3,
		"valid_from":    time.Now().Add(-time.Hour).Format(time.RFC3339),
		"valid_until":   time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/cupon", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var coupon models.Coupon
	require.NoError(t, db.First(&coupon, "code = ?", "WINTER20").Error)
	assert.Equal(t, models.DiscountFixed, coupon.DiscountType)
}

func TestCreateCoupon_DuplicateCode(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)
	seedCoupon(t, db, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"code":          "SUMMER10",
		"discount_type": "percentage",
		"value":         15,
		"valid_from":    time.Now().Format(time.RFC3339),
		"valid_until":   time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/cupon", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
