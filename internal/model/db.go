package model

// Tables lists every model in dependency order for AutoMigrate.
func Tables() []any {
	return []any{
		&Item{},
		&ManualProduct{},
		&ProductImage{},
		&Customer{},
		&CustomerAddress{},
		&Favorite{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Review{},
	}
}

// Item mirrors a marketplace listing. It is only ever written through an
// upsert keyed by EtsyListingID.
type Item struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	EtsyListingID string `gorm:"size:255;not null;uniqueIndex" json:"etsy_listing_id"`
	Title         string `gorm:"type:text" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	PriceAmount   string `gorm:"size:50" json:"price_amount"`
	PriceCurrency string `gorm:"size:10" json:"price_currency"`
	ImageURL      string `gorm:"type:text" json:"image_url"`
	EtsyURL       string `gorm:"type:text" json:"etsy_url"`
	UpdatedAt     string `gorm:"size:50;index" json:"updated_at"`
}

func (Item) TableName() string { return "items" }

type ManualProduct struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:500;not null" json:"name"`
	Description string   `gorm:"type:text;not null" json:"description"`
	Category    *string  `gorm:"type:text" json:"-"`
	Materials   *string  `gorm:"type:text" json:"-"`
	Width       *float64 `json:"width"`
	Height      *float64 `json:"height"`
	Depth       *float64 `json:"depth"`
	Price       float64  `gorm:"not null" json:"price"`
	Quantity    int      `gorm:"not null" json:"quantity"`
	IsFeatured  bool     `gorm:"not null" json:"is_featured"`
	CreatedAt   string   `gorm:"size:50;index" json:"created_at"`
	UpdatedAt   string   `gorm:"size:50" json:"updated_at"`

	// Decoded forms of Category and Materials, filled on read.
	CategoryValue  any `gorm:"-" json:"category"`
	MaterialsValue any `gorm:"-" json:"materials"`

	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
}

func (ManualProduct) TableName() string { return "manual_products" }

const (
	MediaImage = "image"
	MediaVideo = "video"
)

type ProductImage struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	ProductID    uint   `gorm:"not null;index" json:"-"`
	ImageURL     string `gorm:"type:text;not null" json:"image_url"`
	MediaType    string `gorm:"size:50;not null" json:"media_type"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`
}

func (ProductImage) TableName() string { return "product_images" }

// ImageRef is an image as supplied by a caller. New uploads use url/type,
// round-tripped images use the stored image_url/media_type names.
type ImageRef struct {
	URL       string `json:"url,omitempty"`
	Type      string `json:"type,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

func (r ImageRef) Location() string {
	if r.URL != "" {
		return r.URL
	}
	return r.ImageURL
}

func (r ImageRef) Kind() string {
	switch {
	case r.Type != "":
		return r.Type
	case r.MediaType != "":
		return r.MediaType
	}
	return MediaImage
}
