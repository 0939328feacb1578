package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalog/gateway/internal/config"
	"catalog/gateway/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// UpdateResult is the body of a PUT /Products/{id} response. Which field
// carries the acknowledgement depends on the upstream version.
type UpdateResult struct {
	Status  string `json:"Status"`
	Message string `json:"Message"`
}

// Accepted reports whether the upstream acknowledged the write. Older
// upstream versions answer {"Message":"Ok"}, newer ones {"Status":"Processed"},
// and the oldest convention is a bare 2xx with an empty body. Any other
// non-empty value is a rejection.
func (r UpdateResult) Accepted() bool {
	switch r.Message {
	case "Ok", "Processed":
		return true
	}
	switch r.Status {
	case "Ok", "Processed":
		return true
	}
	return r.Message == "" && r.Status == ""
}

// LegacyAck reports whether the acknowledgement came through the legacy
// Status field rather than Message.
func (r UpdateResult) LegacyAck() bool {
	return r.Message == "" && (r.Status == "Ok" || r.Status == "Processed")
}

// Reason returns whichever field the upstream used to explain itself.
func (r UpdateResult) Reason() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Status
}

type CatalogClient interface {
	GetCategories(ctx context.Context) (*domain.CategoryList, error)
	GetProducts(ctx context.Context, query map[string]string) (*domain.ProductList, error)
	GetProduct(ctx context.Context, productID int) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID int, payload map[string]any) (*UpdateResult, error)
}

type catalogClient struct {
	rl            ratelimit.Limiter
	httpClient    *resty.Client
	slowThreshold time.Duration
}

func NewCatalogClient(cfg config.CatalogConfig) CatalogClient {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 15 * time.Second
	}
	slowThreshold := time.Duration(cfg.SlowThreshold) * time.Second
	if cfg.SlowThreshold <= 0 {
		slowThreshold = 5 * time.Second
	}
	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.BearerToken).
		SetHeader("Accept", "application/json")

	return &catalogClient{
		rl:            ratelimit.New(rps),
		httpClient:    httpClient,
		slowThreshold: slowThreshold,
	}
}

func (c *catalogClient) GetCategories(ctx context.Context) (*domain.CategoryList, error) {
	var list domain.CategoryList
	if err := c.request(ctx, http.MethodGet, "ProductCategories", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return &list, nil
}

func (c *catalogClient) GetProducts(ctx context.Context, query map[string]string) (*domain.ProductList, error) {
	var list domain.ProductList
	if err := c.request(ctx, http.MethodGet, "Products", query, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return &list, nil
}

func (c *catalogClient) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	var product domain.Product
	endpoint := "Products/" + strconv.Itoa(productID)
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, &product); err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", productID, err)
	}
	return &product, nil
}

func (c *catalogClient) UpdateProduct(ctx context.Context, productID int, payload map[string]any) (*UpdateResult, error) {
	var result UpdateResult
	endpoint := "Products/" + strconv.Itoa(productID)
	if err := c.request(ctx, http.MethodPut, endpoint, nil, payload, &result); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", productID, err)
	}
	return &result, nil
}

// request issues one HTTP call and decodes the JSON response into out.
// Retrying is the caller's business, never this layer's.
func (c *catalogClient) request(ctx context.Context, method, endpoint string, query map[string]string, body any, out any) error {
	if endpoint == "" {
		return &APIError{Kind: KindCaller, Err: errors.New("empty endpoint")}
	}

	c.rl.Take()

	req := c.httpClient.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	log.Debugf("catalog request: %s /%s params=%v", method, endpoint, query)

	start := time.Now()
	resp, err := req.Execute(method, "/"+endpoint)
	elapsed := time.Since(start)
	if err != nil {
		kind := KindConnection
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			kind = KindTimeout
		}
		return &APIError{Kind: kind, Endpoint: endpoint, Err: err}
	}

	if elapsed > c.slowThreshold {
		log.Warnf("slow catalog response: %s /%s took %s", method, endpoint, elapsed.Round(time.Millisecond))
	}

	if resp.IsError() {
		return &APIError{
			Kind:       kindForStatus(resp.StatusCode()),
			StatusCode: resp.StatusCode(),
			Endpoint:   endpoint,
			Err:        fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status()),
		}
	}

	if out == nil {
		return nil
	}

	raw := resp.String()
	if strings.TrimSpace(raw) == "" {
		// Some upstream versions acknowledge writes with an empty body.
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &APIError{Kind: KindDecode, StatusCode: resp.StatusCode(), Endpoint: endpoint, Err: err}
	}
	return nil
}
