package domain

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"github.com/akash06959/agronova/pkg/common"
)

// Product status values as delivered by the backend.
const (
	ProductActive     = "active"
	ProductInactive   = "inactive"
	ProductOutOfStock = "out_of_stock"
)

// Product is the canonical catalog record. The backend payload is loosely
// typed and uses a mix of legacy field names (stock_quantity, image_url);
// NormalizeProduct folds everything into this shape so callers never branch
// on field presence.
type Product struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Category         string    `json:"category"`
	Price            float64   `json:"price"`
	OriginalPrice    float64   `json:"originalPrice"`
	Stock            int       `json:"stock"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description"`
	Image            string    `json:"image"`
	Rating           float64   `json:"rating"`
	Reviews          int       `json:"reviews"`
	Badge            string    `json:"badge"`
	Status           string    `json:"status"`
	Featured         bool      `json:"featured"`
	Tags             []string  `json:"tags"`
	Weight           string    `json:"weight"`
	Dimensions       string    `json:"dimensions"`
	SKU              string    `json:"sku"`
	MetaTitle        string    `json:"meta_title"`
	MetaDescription  string    `json:"meta_description"`
	SEOKeywords      string    `json:"seo_keywords"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	// Offline marks a record produced by an offline-applied mutation that
	// never reached the backend.
	Offline bool `json:"offline,omitempty"`
}

// IsActive reports whether the product should appear on the storefront.
func (p Product) IsActive() bool {
	return p.Status == ProductActive
}

// NormalizeProduct maps a raw backend record onto Product, filling every
// derived field with its documented default so the rest of the code never
// checks for absence. Backend values always win over defaults.
func NormalizeProduct(raw map[string]interface{}) Product {
	p := Product{
		ID:          cast.ToInt64(raw["id"]),
		Name:        cast.ToString(raw["name"]),
		Category:    cast.ToString(raw["category"]),
		Price:       cast.ToFloat64(raw["price"]),
		Description: cast.ToString(raw["description"]),
		Weight:      cast.ToString(raw["weight"]),
		Dimensions:  cast.ToString(raw["dimensions"]),
		SKU:         cast.ToString(raw["sku"]),
		SEOKeywords: cast.ToString(raw["seo_keywords"]),
		Featured:    cast.ToBool(raw["featured"]),
		Offline:     cast.ToBool(raw["offline"]),
	}

	// Legacy field names take over when the canonical ones are missing.
	p.Stock = cast.ToInt(firstPresent(raw, "stock_quantity", "stock"))
	p.Image = cast.ToString(firstPresent(raw, "image_url", "image"))

	p.Slug = cast.ToString(raw["slug"])
	if p.Slug == "" {
		p.Slug = common.Slugify(p.Name)
	}

	p.OriginalPrice = cast.ToFloat64(raw["originalPrice"])
	if p.OriginalPrice == 0 {
		p.OriginalPrice = common.Round2(p.Price * 1.3)
	}

	p.Rating = cast.ToFloat64(raw["rating"])
	if p.Rating == 0 {
		p.Rating = 4.5
	}

	p.Reviews = cast.ToInt(raw["reviews"])
	if p.Reviews == 0 {
		// Deterministic stand-in review count for records the backend
		// delivers without one.
		p.Reviews = 20 + int(p.ID%100)
	}

	p.Badge = cast.ToString(raw["badge"])
	if p.Badge == "" {
		if p.Featured {
			p.Badge = "Featured"
		} else {
			p.Badge = "New"
		}
	}

	p.Status = cast.ToString(raw["status"])
	if p.Status == "" {
		p.Status = ProductActive
	}

	p.ShortDescription = cast.ToString(raw["short_description"])
	if p.ShortDescription == "" && p.Description != "" {
		p.ShortDescription = common.Excerpt(p.Description, 100)
	}

	p.Tags = toTags(raw["tags"])

	p.MetaTitle = cast.ToString(raw["meta_title"])
	if p.MetaTitle == "" {
		p.MetaTitle = p.Name
	}
	p.MetaDescription = cast.ToString(raw["meta_description"])
	if p.MetaDescription == "" {
		p.MetaDescription = p.Description
	}

	p.CreatedBy = cast.ToString(raw["created_by"])
	if p.CreatedBy == "" {
		p.CreatedBy = "admin"
	}

	p.CreatedAt = toTime(raw["created_at"])
	p.UpdatedAt = toTime(raw["updated_at"])
	return p
}

// toTags accepts both array and comma-separated string encodings.
func toTags(v interface{}) []string {
	switch tv := v.(type) {
	case nil:
		return []string{}
	case string:
		if strings.TrimSpace(tv) == "" {
			return []string{}
		}
		parts := strings.Split(tv, ",")
		tags := make([]string, 0, len(parts))
		for _, s := range parts {
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return cast.ToStringSlice(v)
	}
}

func toTime(v interface{}) time.Time {
	switch tv := v.(type) {
	case time.Time:
		return tv
	case string:
		if tv == "" {
			return time.Time{}
		}
		t, err := dateparse.ParseAny(tv)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

func firstPresent(raw map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
