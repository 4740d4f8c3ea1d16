package dto

import (
	"encoding/json"
	"storefront-commerce/internal/model"
	"strings"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type HealthConfig struct {
	EtsyAPIConfigured bool `json:"etsy_api_configured"`
	JWTConfigured     bool `json:"jwt_configured"`
	AdminConfigured   bool `json:"admin_configured"`
}

type HealthResponse struct {
	Status string       `json:"status"`
	Config HealthConfig `json:"config"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type ProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type CustomerAuthResponse struct {
	Token    string          `json:"token"`
	Customer *model.Customer `json:"customer"`
}

// CreateItemRequest carries a listing id or url under any of the names the
// admin tools send.
type CreateItemRequest struct {
	EtsyListingID  string `json:"etsy_listing_id" form:"etsy_listing_id"`
	EtsyURL        string `json:"etsy_url" form:"etsy_url"`
	ListingValue   string `json:"listing_value" form:"listing_value"`
	ListingID      string `json:"listing_id" form:"listing_id"`
	ListingIDCamel string `json:"listingId" form:"listingId"`
}

// Value returns the first non-empty listing reference.
func (r *CreateItemRequest) Value() string {
	for _, v := range []string{r.EtsyListingID, r.EtsyURL, r.ListingValue, r.ListingID, r.ListingIDCamel} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ManualProductRequest is used for both create and update. Price and
// Quantity are pointers so that a missing value can be told apart from zero.
// Images left out of an update keep the stored images.
type ManualProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    any              `json:"category"`
	Materials   any              `json:"materials"`
	Width       *float64         `json:"width"`
	Height      *float64         `json:"height"`
	Depth       *float64         `json:"depth"`
	Price       *float64         `json:"price"`
	Quantity    *int             `json:"quantity"`
	IsFeatured  bool             `json:"is_featured"`
	Images      []model.ImageRef `json:"images"`
}

type AddressRequest struct {
	Label      string `json:"label"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// ProductID accepts a product id sent either as a JSON string or a number.
type ProductID string

func (p *ProductID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = ProductID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = ProductID(n.String())
	return nil
}

type ProductRef struct {
	ProductType string    `json:"product_type"`
	ProductID   ProductID `json:"product_id"`
}

type CartRequest struct {
	ProductRef
	// Quantity is the amount to add; negative values remove. Defaults to 1.
	Quantity *int `json:"quantity"`
}

type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ReviewRequest struct {
	ProductRef
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type CreatedResponse struct {
	ID uint `json:"id"`
}
