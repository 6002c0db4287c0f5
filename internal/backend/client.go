// Package backend is the REST client for the remote AgroNova API. It is a
// thin transport: no retries, no local timeout ceiling, the caller's
// context is the only cancellation point. Failures surface as plain errors
// for the stores to translate into their degraded modes.
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the AgroNova backend. The zero value is not usable;
// construct with New.
type Client struct {
	base string
}

// New builds a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{base: strings.TrimRight(baseURL, "/")}
}

// BaseURL reports the configured backend base URL.
func (c *Client) BaseURL() string { return c.base }

func (c *Client) url(path string) string {
	return c.base + path
}

// do runs a prepared gout flow, enforces a 2xx status and decodes the body
// into out when non-nil. Backend error details (FastAPI "detail") are
// folded into the returned error.
func (c *Client) do(ctx context.Context, df *dataflow.DataFlow, out interface{}, op string) error {
	var (
		code int
		body []byte
	)
	if err := df.WithContext(ctx).BindBody(&body).Code(&code).Do(); err != nil {
		return errors.Wrapf(err, "backend: %s", op)
	}
	if code < 200 || code > 299 {
		return errors.Errorf("backend: %s: status %d: %s", op, code, errDetail(body))
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return errors.Wrapf(err, "backend: %s: decode", op)
		}
	}
	return nil
}

func errDetail(body []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// ProductPayload is the writable subset of a product the backend accepts.
// Fields beyond these exist only client-side until the backend grows them.
type ProductPayload struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Description   string  `json:"description"`
	ImageURL      string  `json:"image_url"`
}

// ListProducts fetches the raw product list. Records stay loosely typed;
// normalization happens in the catalog store.
func (c *Client) ListProducts(ctx context.Context) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	err := c.do(ctx, gout.GET(c.url("/products/")), &out, "list products")
	return out, err
}

// CreateProduct posts a new product and returns the saved raw record.
func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, gout.POST(c.url("/products/")).SetJSON(payload), &out, "create product")
	return out, err
}

// UpdateProduct replaces a product and returns the saved raw record.
func (c *Client) UpdateProduct(ctx context.Context, id int64, payload ProductPayload) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, gout.PUT(c.url(fmt.Sprintf("/products/%d/", id))).SetJSON(payload), &out, "update product")
	return out, err
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, gout.DELETE(c.url(fmt.Sprintf("/products/%d/", id))), nil, "delete product")
}
