// Package remote is the catalog source adapter: transport plus translation,
// nothing else. Retry and fallback policy live in the sync coordinator.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"stocksync/internal/domain"
)

type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// Catalog payload shape of the remote endpoint.
type catalogResponse struct {
	Products []productDTO `json:"products"`
	Total    int          `json:"total"`
	Skip     int          `json:"skip"`
	Limit    int          `json:"limit"`
}

type productDTO struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Thumbnail   string          `json:"thumbnail"`
}

// FetchCatalog retrieves the complete remote catalog and maps every product
// to an Item with LastUpdated set to fetch time. Transport failures surface
// as ErrSourceUnavailable; payloads that cannot be decoded or that map to an
// invalid record surface as ErrSourceFormat.
func (c *Client) FetchCatalog(ctx context.Context) ([]domain.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceFormat, err)
	}

	now := time.Now()
	items := make([]domain.Item, 0, len(payload.Products))
	for _, p := range payload.Products {
		it := mapProduct(p, now)
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("%w: product %d: %v", domain.ErrSourceFormat, p.ID, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// mapProduct translates the external shape: title->Name, stock->Quantity,
// brand->SupplierName, thumbnail->ImageURL.
func mapProduct(p productDTO, fetchedAt time.Time) domain.Item {
	return domain.Item{
		ID:           p.ID,
		Name:         p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Stock,
		Category:     p.Category,
		ImageURL:     p.Thumbnail,
		SupplierName: p.Brand,
		LastUpdated:  fetchedAt,
	}
}
