package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/domain"
	"github.com/akash06959/agronova/internal/store"
	"github.com/akash06959/agronova/internal/webserver"
)

type productPayload struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Status      string  `json:"status"`
	Featured    bool    `json:"featured"`
	Tags        string  `json:"tags"`
	SKU         string  `json:"sku"`
}

func (h *handler) listProducts(c echo.Context) error {
	products := h.env.Catalog.Products()

	// Filter: q matches name case-insensitively.
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		lq := strings.ToLower(q)
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), lq) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	return webserver.OK(c, products)
}

func (h *handler) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required")
	}
	if payload.Price < 0 {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must be >= 0")
	}

	p := domain.Product{
		Name:        payload.Name,
		Category:    payload.Category,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Description: payload.Description,
		Image:       strings.TrimSpace(payload.Image),
		Status:      payload.Status,
		Featured:    payload.Featured,
		SKU:         payload.SKU,
	}
	for _, tag := range strings.Split(payload.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			p.Tags = append(p.Tags, tag)
		}
	}
	result := h.env.Catalog.AddProduct(c.Request().Context(), p)
	return mutationResponse(c, result)
}

func (h *handler) updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}

	patch := map[string]interface{}{}
	if err := c.Bind(&patch); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product")
	}
	delete(patch, "id")

	result := h.env.Catalog.UpdateProduct(c.Request().Context(), id, patch)
	if result.Err == store.ErrProductNotFound {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	return mutationResponse(c, result)
}

func (h *handler) deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	result := h.env.Catalog.DeleteProduct(c.Request().Context(), id)
	if !result.Success {
		h.env.Notify.ShowError("Delete Pending", "Product removed locally; backend unreachable")
		return webserver.OK(c, map[string]interface{}{"id": id, "offline": true})
	}
	return webserver.OK(c, map[string]interface{}{"id": id})
}

// mutationResponse keeps the never-throw contract: offline-applied results
// still return 200, with the offline flag for the panel to surface.
func mutationResponse(c echo.Context, result store.MutationResult) error {
	if !result.Success {
		return webserver.OK(c, map[string]interface{}{
			"product": result.Product,
			"offline": true,
			"message": "Saved locally; backend unreachable",
		})
	}
	return webserver.OK(c, map[string]interface{}{"product": result.Product})
}

// productRow flattens a product for CSV export.
type productRow struct {
	ID       int64   `csv:"id"`
	Name     string  `csv:"name"`
	Slug     string  `csv:"slug"`
	Category string  `csv:"category"`
	Price    float64 `csv:"price"`
	Stock    int     `csv:"stock"`
	Status   string  `csv:"status"`
	Featured bool    `csv:"featured"`
	SKU      string  `csv:"sku"`
	Tags     string  `csv:"tags"`
}

func (h *handler) exportProducts(c echo.Context) error {
	products := h.env.Catalog.Products()
	rows := make([]productRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productRow{
			ID:       p.ID,
			Name:     p.Name,
			Slug:     p.Slug,
			Category: p.Category,
			Price:    p.Price,
			Stock:    p.Stock,
			Status:   p.Status,
			Featured: p.Featured,
			SKU:      p.SKU,
			Tags:     strings.Join(p.Tags, "|"),
		})
	}
	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}
