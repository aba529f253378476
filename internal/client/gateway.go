package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultRetryCount    = 2
	defaultRetryWaitTime = 500 * time.Millisecond
)

// Gateway is the dashboard's HTTP client. Writes carry request ids, so the
// retry policy can safely re-send on connection failures and 5xx responses:
// the server replays the stored outcome instead of double-applying.
type Gateway struct {
	http *resty.Client
}

func NewGateway(baseURL string) *Gateway {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultTimeout).
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(defaultRetryWaitTime).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
		})

	return &Gateway{http: httpClient}
}

// SetToken installs the bearer token used on authenticated calls.
func (g *Gateway) SetToken(token string) {
	g.http.SetAuthScheme("Bearer")
	g.http.SetAuthToken(token)
}

type loginResponse struct {
	UserID       uuid.UUID `json:"userId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

// Login authenticates and installs the returned access token on the client.
func (g *Gateway) Login(ctx context.Context, login, password string) (uuid.UUID, error) {
	var result loginResponse
	err := g.post(ctx, "/api/auth/login", map[string]string{
		"login":    login,
		"password": password,
	}, &result)
	if err != nil {
		return uuid.Nil, err
	}

	g.SetToken(result.AccessToken)
	return result.UserID, nil
}

// Sell records a new sale. Retrying with the same request id is safe.
func (g *Gateway) Sell(ctx context.Context, req SellRequest) (*Sale, error) {
	var result Sale
	if err := g.post(ctx, "/api/sales/sell", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Pay transitions a pending sale to Paid.
func (g *Gateway) Pay(ctx context.Context, saleID uuid.UUID, req PayRequest) (*Sale, error) {
	var result Sale
	path := fmt.Sprintf("/api/sales/%s/pay", saleID)
	if err := g.post(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Cancel transitions a pending sale to Cancelled.
func (g *Gateway) Cancel(ctx context.Context, saleID uuid.UUID, req CancelRequest) (*Sale, error) {
	var result Sale
	path := fmt.Sprintf("/api/sales/%s/cancel", saleID)
	if err := g.post(ctx, path, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListSales returns the full ledger, newest first.
func (g *Gateway) ListSales(ctx context.Context) ([]Sale, error) {
	var result []Sale
	if err := g.get(ctx, "/api/sales", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Gateway) GetSale(ctx context.Context, saleID uuid.UUID) (*Sale, error) {
	var result Sale
	if err := g.get(ctx, fmt.Sprintf("/api/sales/%s", saleID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *Gateway) ListProducts(ctx context.Context) ([]Product, error) {
	var result []Product
	if err := g.get(ctx, "/api/products", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Gateway) ListCustomers(ctx context.Context) ([]Customer, error) {
	var result []Customer
	if err := g.get(ctx, "/api/customers", &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *Gateway) Summary(ctx context.Context) (*LedgerSummary, error) {
	var result LedgerSummary
	if err := g.get(ctx, "/api/dashboard/summary", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *Gateway) get(ctx context.Context, path string, result any) error {
	resp, err := g.http.R().SetContext(ctx).SetResult(result).Get(path)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if resp.IsError() {
		return errorFromResponse(resp)
	}
	return nil
}

func (g *Gateway) post(ctx context.Context, path string, body, result any) error {
	resp, err := g.http.R().SetContext(ctx).SetBody(body).SetResult(result).Post(path)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if resp.IsError() {
		return errorFromResponse(resp)
	}
	return nil
}
