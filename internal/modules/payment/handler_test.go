package payment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shdeco/internal/domain"
)

func setupWebhookRouter(t *testing.T, payments *mockPaymentStore, reader *mockBookingReader) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := testService(payments, reader, &mockBookingWriter{}, &mockClaimer{}, &mockAnomalyStore{}, &mockProvider{})
	h := NewHandler(svc, NewVerifier(testSecret, DefaultTolerance), quietLogger())

	r := gin.New()
	h.RegisterRoutes(r.Group("/"))
	return r
}

func postWebhook(r *gin.Engine, payload []byte, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set("Stripe-Signature", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_RejectsBadSignature(t *testing.T) {
	payments := &mockPaymentStore{}
	r := setupWebhookRouter(t, payments, &mockBookingReader{})

	payload := validPayload()
	w := postWebhook(r, payload, "t=123,v1=deadbeef")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, payments.created)
}

func TestWebhook_AcknowledgesIgnoredEventTypes(t *testing.T) {
	payments := &mockPaymentStore{}
	r := setupWebhookRouter(t, payments, &mockBookingReader{})

	payload := []byte(`{"id":"evt_2","type":"payment_intent.created","data":{"object":{}}}`)
	w := postWebhook(r, payload, signedHeader(testSecret, time.Now(), payload))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body["received"])
	assert.Empty(t, payments.created)
}

func TestWebhook_ReconcilesCheckoutCompleted(t *testing.T) {
	payments := &mockPaymentStore{}
	reader := &mockBookingReader{bookings: map[int64]*domain.Booking{
		7: {ID: 7, ServicePrice: 500},
	}}
	r := setupWebhookRouter(t, payments, reader)

	payload := validPayload()
	w := postWebhook(r, payload, signedHeader(testSecret, time.Now(), payload))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, payments.created, 1)
	assert.Equal(t, int64(7), payments.created[0].BookingID)
}

func TestWebhook_TransientClaimFailureReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := testService(&mockPaymentStore{}, &mockBookingReader{}, &mockBookingWriter{},
		&mockClaimer{err: assert.AnError}, &mockAnomalyStore{}, &mockProvider{})
	h := NewHandler(svc, NewVerifier(testSecret, DefaultTolerance), quietLogger())

	r := gin.New()
	h.RegisterRoutes(r.Group("/"))

	payload := validPayload()
	w := postWebhook(r, payload, signedHeader(testSecret, time.Now(), payload))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateCheckoutSession_ReturnsURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider := &mockProvider{}
	reader := &mockBookingReader{bookings: map[int64]*domain.Booking{42: {ID: 42}}}
	svc := testService(&mockPaymentStore{}, reader, &mockBookingWriter{}, &mockClaimer{}, &mockAnomalyStore{}, provider)
	h := NewHandler(svc, NewVerifier(testSecret, DefaultTolerance), quietLogger())

	r := gin.New()
	h.RegisterRoutes(r.Group("/"))

	body := []byte(`{"cost":500,"serviceTitle":"Home Decoration","bookingId":42,"userEmail":"a@b.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://checkout.example/cs_test", resp["url"])
}

func TestGetPayments(t *testing.T) {
	gin.SetMode(gin.TestMode)

	payments := &mockPaymentStore{created: []domain.Payment{
		{ID: 1, BookingID: 7, Email: "a@b.com"},
		{ID: 2, BookingID: 8, Email: "c@d.com"},
	}}
	svc := testService(payments, &mockBookingReader{}, &mockBookingWriter{}, &mockClaimer{}, &mockAnomalyStore{}, &mockProvider{})
	h := NewHandler(svc, NewVerifier(testSecret, DefaultTolerance), quietLogger())

	r := gin.New()
	h.RegisterRoutes(r.Group("/"))

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Payments []domain.Payment `json:"payments"`
		} `json:"data"`
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments?email=a@b.com", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data.Payments, 1)
	assert.Equal(t, int64(7), resp.Data.Payments[0].BookingID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments?bookingId=8", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Payments, 1)
	assert.Equal(t, "c@d.com", resp.Data.Payments[0].Email)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments?bookingId=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAnomalies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	anomalies := &mockAnomalyStore{recorded: []domain.ReconciliationAnomaly{
		{ID: 1, EventID: "evt_x", BookingID: 7, Reason: "booking not found"},
	}}
	svc := testService(&mockPaymentStore{}, &mockBookingReader{}, &mockBookingWriter{}, &mockClaimer{}, anomalies, &mockProvider{})
	h := NewHandler(svc, NewVerifier(testSecret, DefaultTolerance), quietLogger())

	r := gin.New()
	h.RegisterAdminRoutes(r.Group("/admin"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/anomalies", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Anomalies []domain.ReconciliationAnomaly `json:"anomalies"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Anomalies, 1)
	assert.Equal(t, "evt_x", resp.Data.Anomalies[0].EventID)
}

func TestCreateCheckoutSession_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := testService(&mockPaymentStore{}, &mockBookingReader{}, &mockBookingWriter{}, &mockClaimer{}, &mockAnomalyStore{}, &mockProvider{})
	h := NewHandler(svc, NewVerifier(testSecret, DefaultTolerance), quietLogger())

	r := gin.New()
	h.RegisterRoutes(r.Group("/"))

	req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewReader([]byte(`{"cost":500}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
