package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"nutriscan/internal/product"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

const (
	lookupTimeout = 5 * time.Second
	searchTimeout = 15 * time.Second

	// search retries only timeout-class failures: 3 attempts total,
	// sleeping attempt*backoffUnit between them.
	searchAttempts = 3
)

// Client talks to the Open Food Facts registry. The registry is treated
// as unreliable: timeouts, empty results and missing nutrition fields
// are all expected.
type Client struct {
	baseURL      string
	lookupClient *http.Client
	searchClient *http.Client
	backoffUnit  time.Duration
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:      baseURL,
		lookupClient: &http.Client{Timeout: lookupTimeout},
		searchClient: &http.Client{Timeout: searchTimeout},
		backoffUnit:  time.Second,
	}
}

// GetByBarcode fetches one product. Single attempt; the resolver owns
// the fallback chain and must not see internal retries.
func (c *Client) GetByBarcode(
	ctx context.Context,
	barcode string,
) (*product.Product, error) {

	endpoint := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, url.PathEscape(barcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.lookupClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, product.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var lookup offLookupResponse
	if err := json.Unmarshal(raw, &lookup); err != nil {
		return nil, fmt.Errorf("bad registry payload: %w", err)
	}

	if lookup.Status != 1 || lookup.Product.ProductName == "" {
		return nil, product.ErrNotFound
	}

	return mapProduct(&lookup.Product, barcode), nil
}

// SearchByName runs a free-text search. It never returns an error:
// terminal failure degrades to an empty list. Timeout-class failures
// are retried with linear backoff; anything else aborts immediately.
// Results keep the provider's relevance order.
func (c *Client) SearchByName(
	ctx context.Context,
	query string,
	page int,
) []product.Product {

	if query == "" {
		return []product.Product{}
	}
	if page < 1 {
		page = 1
	}

	for attempt := 1; attempt <= searchAttempts; attempt++ {
		products, err := c.searchOnce(ctx, query, page)
		if err == nil {
			return products
		}

		if !isTimeout(err) {
			log.Printf("SEARCH_FAILED query=%q err=%v", query, err)
			return []product.Product{}
		}

		log.Printf("SEARCH_TIMEOUT query=%q attempt=%d", query, attempt)
		if attempt < searchAttempts {
			timer := time.NewTimer(time.Duration(attempt) * c.backoffUnit)
			select {
			case <-ctx.Done():
				timer.Stop()
				return []product.Product{}
			case <-timer.C:
			}
		}
	}

	return []product.Product{}
}

func (c *Client) searchOnce(
	ctx context.Context,
	query string,
	page int,
) ([]product.Product, error) {

	endpoint := fmt.Sprintf(
		"%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page=%d&page_size=20",
		c.baseURL,
		url.QueryEscape(query),
		page,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.searchClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var search offSearchResponse
	if err := json.Unmarshal(raw, &search); err != nil {
		return nil, fmt.Errorf("bad registry payload: %w", err)
	}

	products := make([]product.Product, 0, len(search.Products))
	for i := range search.Products {
		off := &search.Products[i]
		if off.ProductName == "" {
			continue
		}
		products = append(products, *mapProduct(off, off.Code))
	}

	return products, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
