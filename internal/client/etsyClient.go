package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/config"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// Listing is a marketplace listing normalized to the catalog item shape.
type Listing struct {
	ListingID     string
	Title         string
	Description   string
	PriceAmount   string
	PriceCurrency string
	ImageURL      string
	URL           string
}

type EtsyClient interface {
	Configured() bool
	FetchListing(ctx context.Context, listingID string) (*Listing, error)
}

type etsyClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	apiKey      string
	accessToken string
	configured  bool
	limiter     *rate.Limiter
}

type etsyPrice struct {
	Amount       *json.Number `json:"amount"`
	Divisor      *json.Number `json:"divisor"`
	CurrencyCode string       `json:"currency_code"`
}

type etsyImage struct {
	URLFullxFull string `json:"url_fullxfull"`
	URL570xN     string `json:"url_570xN"`
}

type etsyListingResult struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Images      []etsyImage     `json:"images"`
	URL         string          `json:"url"`
}

func NewEtsyClient(etsyCfg *config.Etsy) EtsyClient {
	timeout := etsyCfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if etsyCfg.RatePerSecond > 0 {
		limit = rate.Limit(etsyCfg.RatePerSecond)
	}

	return &etsyClientImpl{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseApiURL:  strings.TrimRight(etsyCfg.BaseApiURL, "/"),
		apiKey:      etsyCfg.APIKey,
		accessToken: etsyCfg.AccessToken,
		configured:  etsyCfg.Configured(),
		limiter:     rate.NewLimiter(limit, 1),
	}
}

// Configured reports the same state as the health check.
func (c *etsyClientImpl) Configured() bool {
	return c.configured
}

func (c *etsyClientImpl) FetchListing(ctx context.Context, listingID string) (*Listing, error) {
	if !c.Configured() {
		return nil, &apperror.UpstreamError{Code: "etsy_not_configured", Detail: "ETSY_API_KEY and ETSY_SHARED_SECRET must be set"}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("etsy rate limit wait: %w", err)
	}

	endpoint := fmt.Sprintf("%s/listings/%s?includes=images", c.baseApiURL, url.PathEscape(listingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperror.UpstreamError{Code: "etsy_api_error", Detail: "etsy request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &apperror.UpstreamError{
			Code:       "etsy_api_error",
			StatusCode: resp.StatusCode,
			Detail:     strings.TrimSpace(string(b)),
		}
	}

	var result etsyListingResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &apperror.UpstreamError{Code: "etsy_api_error", StatusCode: resp.StatusCode, Detail: "decode etsy response", Err: err}
	}

	amount, currency := formatPrice(result.Price)
	return &Listing{
		ListingID:     listingID,
		Title:         result.Title,
		Description:   result.Description,
		PriceAmount:   amount,
		PriceCurrency: currency,
		ImageURL:      primaryImage(result.Images),
		URL:           result.URL,
	}, nil
}

// formatPrice accepts either the structured money object or a preformatted
// string.
func formatPrice(raw json.RawMessage) (string, string) {
	if len(raw) == 0 {
		return "", ""
	}

	var price etsyPrice
	if err := json.Unmarshal(raw, &price); err == nil {
		if price.Amount == nil {
			return "", price.CurrencyCode
		}
		amount, err := decimal.NewFromString(price.Amount.String())
		if err != nil {
			return "", price.CurrencyCode
		}
		divisor := decimal.NewFromInt(100)
		if price.Divisor != nil {
			if d, err := decimal.NewFromString(price.Divisor.String()); err == nil && !d.IsZero() {
				divisor = d
			}
		}
		return amount.Div(divisor).StringFixed(2), price.CurrencyCode
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, ""
	}
	return "", ""
}

func primaryImage(images []etsyImage) string {
	if len(images) == 0 {
		return ""
	}
	if images[0].URLFullxFull != "" {
		return images[0].URLFullxFull
	}
	return images[0].URL570xN
}
