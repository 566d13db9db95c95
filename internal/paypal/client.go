package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// dateFormat is the format for transaction query dates (with offset).
	dateFormat = "2006-01-02T15:04:05-0700"
	// dateFormatBalance is the offset-less variant the balances endpoint expects.
	dateFormatBalance = "2006-01-02T15:04:05"

	// maxWindowDays is the widest date range the reporting API accepts
	// per request.
	maxWindowDays = 30
	pageSize      = 500
)

// ErrNoStartDate is returned when a transaction fetch is attempted without
// a start date.
var ErrNoStartDate = errors.New("no start date given")

// Credentials identify an API client. They are read from account metadata
// per run and never cached.
type Credentials struct {
	ClientID string
	Secret   string
}

// AccessToken is the result of one client-credentials exchange. It lives in
// memory for a single synchronization run.
type AccessToken struct {
	Value    string
	IssuedAt time.Time
	TTL      time.Duration
}

// Valid reports whether the token is still usable.
func (t *AccessToken) Valid() bool {
	return t != nil && t.Value != "" && time.Now().Before(t.IssuedAt.Add(t.TTL))
}

// Client talks to the reporting REST API. The underlying http.Client is
// owned by the composition root; Close releases its idle connections.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
	now        func() time.Time
}

func NewClient(env Environment, timeout time.Duration, logger *log.Logger) (*Client, error) {
	hostname, err := env.Hostname()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(os.Stderr, "paypal ", log.LstdFlags)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    "https://" + hostname,
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Login performs the OAuth client-credentials exchange. Missing or blank
// credentials fail before any network call.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AccessToken, error) {
	if strings.TrimSpace(creds.ClientID) == "" {
		return nil, &AuthError{Reason: "api client id is not configured"}
	}
	if strings.TrimSpace(creds.Secret) == "" {
		return nil, &AuthError{Reason: "api secret is not configured"}
	}

	c.logger.Printf("performing login")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(creds.ClientID, creds.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var auth authResponse
	if err := c.do(req, &auth); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, &AuthError{Reason: "token exchange rejected", Err: apiErr}
		}
		return nil, err
	}

	if strings.TrimSpace(auth.AccessToken) == "" {
		return nil, &AuthError{Reason: "token response carries no access token"}
	}

	token := &AccessToken{
		Value:    auth.AccessToken,
		IssuedAt: c.now(),
		TTL:      time.Duration(auth.ExpiresIn) * time.Second,
	}
	c.logger.Printf("login successful, token expiry: %s", token.IssuedAt.Add(token.TTL))
	return token, nil
}

// Transactions fetches all transactions from start up to now. The API
// refuses ranges wider than 30 days, so the range is walked in successive
// non-overlapping windows. Only the first page of each window is read; a
// window with more pages is logged as truncated. Cancellation is polled
// between windows.
func (c *Client) Transactions(ctx context.Context, token *AccessToken, start time.Time) ([]TransactionDetails, error) {
	if start.IsZero() {
		return nil, ErrNoStartDate
	}

	var result []TransactionDetails

	windowStart := start
	for windowStart.Before(c.now()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		windowEnd := windowStart.AddDate(0, 0, maxWindowDays)
		if windowEnd.After(c.now()) {
			windowEnd = c.now()
		}

		params := url.Values{}
		params.Set("start_date", windowStart.Format(dateFormat))
		params.Set("end_date", windowEnd.Format(dateFormat))
		params.Set("balance_affecting_records_only", "Y")
		params.Set("fields", "all")
		params.Set("page", "1")
		params.Set("page_size", fmt.Sprintf("%d", pageSize))

		var page TransactionResult
		if err := c.get(ctx, "/v1/reporting/transactions", params, token, &page); err != nil {
			return nil, err
		}

		if page.TotalPages > 1 {
			c.logger.Printf("window %s - %s has %d pages, only the first was fetched",
				windowStart.Format(dateFormat), windowEnd.Format(dateFormat), page.TotalPages)
		}

		result = append(result, page.TransactionDetails...)
		windowStart = windowStart.AddDate(0, 0, maxWindowDays)
	}

	return result, nil
}

// Balances fetches the current balances for the given settlement currency.
func (c *Client) Balances(ctx context.Context, token *AccessToken, currency string) (*BalanceResult, error) {
	params := url.Values{}
	params.Set("as_of_time", c.now().Format(dateFormatBalance))
	params.Set("currency_code", currency)

	var result BalanceResult
	if err := c.get(ctx, "/v1/reporting/balances", params, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, token *AccessToken, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}
	if token != nil {
		req.Header.Set("Authorization", "Bearer "+token.Value)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	c.logger.Printf("executing request to: %s", req.URL.Path)

	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "de_DE")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode > 299 {
		c.logger.Printf("got http status %d from %s", resp.StatusCode, req.URL.Path)

		apiErr := &APIError{
			HTTPStatus:  resp.StatusCode,
			HTTPMessage: http.StatusText(resp.StatusCode),
		}
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
