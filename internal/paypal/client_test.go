package paypal

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		httpClient: server.Client(),
		baseURL:    server.URL,
		logger:     log.New(io.Discard, "", 0),
		now:        time.Now,
	}
}

func TestNewClientRejectsUnknownEnvironment(t *testing.T) {
	_, err := NewClient("staging", time.Second, nil)
	require.Error(t, err)
}

func TestLoginRejectsBlankCredentials(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	var authErr *AuthError
	_, err := c.Login(context.Background(), Credentials{ClientID: "", Secret: "x"})
	require.ErrorAs(t, err, &authErr)

	_, err = c.Login(context.Background(), Credentials{ClientID: "x", Secret: "  "})
	require.ErrorAs(t, err, &authErr)
}

func TestLogin(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/oauth2/token", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "client", user)
		require.Equal(t, "secret", pass)

		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"A21AA","token_type":"Bearer","expires_in":32400}`)
	}))

	token, err := c.Login(context.Background(), Credentials{ClientID: "client", Secret: "secret"})
	require.NoError(t, err)
	require.Equal(t, "A21AA", token.Value)
	require.Equal(t, 9*time.Hour, token.TTL)
	require.True(t, token.Valid())
}

func TestLoginRejected(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"invalid_client","error_description":"Client Authentication failed"}`)
	}))

	_, err := c.Login(context.Background(), Credentials{ClientID: "client", Secret: "wrong"})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatus)
	require.Equal(t, "invalid_client - Client Authentication failed", apiErr.Detail())
}

func TestLoginEmptyToken(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"access_token":"","expires_in":0}`)
	}))

	_, err := c.Login(context.Background(), Credentials{ClientID: "client", Secret: "secret"})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestTransactionsRequiresStartDate(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := c.Transactions(context.Background(), &AccessToken{Value: "t"}, time.Time{})
	require.ErrorIs(t, err, ErrNoStartDate)
}

func TestTransactionsWalksWindows(t *testing.T) {
	var requests []string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/reporting/transactions", r.URL.Path)
		require.Equal(t, "Bearer t", r.Header.Get("Authorization"))

		q := r.URL.Query()
		require.Equal(t, "Y", q.Get("balance_affecting_records_only"))
		require.Equal(t, "all", q.Get("fields"))
		require.Equal(t, "1", q.Get("page"))
		require.Equal(t, "500", q.Get("page_size"))
		requests = append(requests, q.Get("start_date"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"total_pages": 1,
			"transaction_details": [
				{"transaction_info": {"transaction_id": "TX-`+q.Get("start_date")[:10]+`"}}
			]
		}`)
	}))
	c.now = func() time.Time {
		return time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	txns, err := c.Transactions(context.Background(), &AccessToken{Value: "t"}, start)
	require.NoError(t, err)

	// 74 days of range make three 30-day windows.
	require.Len(t, requests, 3)
	require.Equal(t, "2023-01-01T00:00:00+0000", requests[0])
	require.Equal(t, "2023-01-31T00:00:00+0000", requests[1])
	require.Equal(t, "2023-03-02T00:00:00+0000", requests[2])

	require.Len(t, txns, 3)
	require.Equal(t, "TX-2023-01-01", txns[0].TransactionInfo.TransactionID)
}

func TestTransactionsStopsOnCancellation(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now().AddDate(0, 0, -10)
	_, err := c.Transactions(ctx, &AccessToken{Value: "t"}, start)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTransactionsAPIError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{
			"name": "INVALID_REQUEST",
			"message": "Data for the given start date is not available.",
			"debug_id": "48ee04b54e263"
		}`)
	}))

	start := time.Now().AddDate(0, 0, -10)
	_, err := c.Transactions(context.Background(), &AccessToken{Value: "t"}, start)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "INVALID_REQUEST", apiErr.Name)
	require.Equal(t, "Data for the given start date is not available.", apiErr.Detail())
}

func TestBalances(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/reporting/balances", r.URL.Path)
		require.Equal(t, "EUR", r.URL.Query().Get("currency_code"))
		require.NotEmpty(t, r.URL.Query().Get("as_of_time"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"balances": [
				{
					"currency": "EUR",
					"primary": true,
					"total_balance": {"currency_code": "EUR", "value": "100.50"},
					"available_balance": {"currency_code": "EUR", "value": "90.00"}
				}
			]
		}`)
	}))

	result, err := c.Balances(context.Background(), &AccessToken{Value: "t"}, "EUR")
	require.NoError(t, err)
	require.Len(t, result.Balances, 1)
	require.Equal(t, "EUR", result.Balances[0].Currency)

	v, ok := result.Balances[0].TotalBalance.Float()
	require.True(t, ok)
	require.InDelta(t, 100.50, v, 0.0001)
}

func TestDoNonJSONErrorBody(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream unavailable")
	}))

	_, err := c.Balances(context.Background(), &AccessToken{Value: "t"}, "EUR")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
	require.Equal(t, "upstream unavailable", apiErr.Detail())
}

func TestAccessTokenValid(t *testing.T) {
	var token *AccessToken
	require.False(t, token.Valid())

	token = &AccessToken{Value: "t", IssuedAt: time.Now(), TTL: time.Hour}
	require.True(t, token.Valid())

	token.IssuedAt = time.Now().Add(-2 * time.Hour)
	require.False(t, token.Valid())

	require.False(t, (&AccessToken{IssuedAt: time.Now(), TTL: time.Hour}).Valid())
}

func TestAuthErrorUnwrap(t *testing.T) {
	inner := &APIError{HTTPStatus: 401}
	err := &AuthError{Reason: "rejected", Err: inner}

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Same(t, inner, apiErr)
}
