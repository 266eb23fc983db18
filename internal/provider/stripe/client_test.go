package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession(t *testing.T) {
	var gotForm map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotAuth = r.Header.Get("Authorization")
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.example/cs_test_1"}`))
	}))
	defer srv.Close()

	c := New("sk_test_key", srv.URL)
	session, err := c.CreateCheckoutSession(context.Background(), CheckoutSessionParams{
		Currency:      "usd",
		UnitAmount:    50000,
		ProductName:   "Home Decoration",
		CustomerEmail: "a@b.com",
		SuccessURL:    "https://client.example/ok",
		CancelURL:     "https://client.example/no",
		Metadata:      map[string]string{"bookingId": "42", "userEmail": "a@b.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.example/cs_test_1", session.URL)
	assert.Equal(t, "Bearer sk_test_key", gotAuth)
	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "50000", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "Home Decoration", gotForm["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "42", gotForm["metadata[bookingId]"])
	assert.Equal(t, "a@b.com", gotForm["metadata[userEmail]"])
}

func TestCreateCheckoutSession_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid currency","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := New("sk_test_key", srv.URL)
	_, err := c.CreateCheckoutSession(context.Background(), CheckoutSessionParams{Currency: "zzz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid currency")
}
