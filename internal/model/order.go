package model

const (
	ProductTypeEtsy   = "etsy"
	ProductTypeManual = "manual"
)

func ValidProductType(t string) bool {
	return t == ProductTypeEtsy || t == ProductTypeManual
}

type Favorite struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CustomerID  uint   `gorm:"not null;uniqueIndex:uq_favorite_product" json:"customer_id"`
	ProductType string `gorm:"size:20;not null;uniqueIndex:uq_favorite_product" json:"product_type"`
	ProductID   string `gorm:"size:64;not null;uniqueIndex:uq_favorite_product" json:"product_id"`
	CreatedAt   string `gorm:"size:50" json:"created_at"`
}

func (Favorite) TableName() string { return "customer_favorites" }

type CartItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CustomerID  uint   `gorm:"not null;uniqueIndex:uq_cart_product" json:"customer_id"`
	ProductType string `gorm:"size:20;not null;uniqueIndex:uq_cart_product" json:"product_type"`
	ProductID   string `gorm:"size:64;not null;uniqueIndex:uq_cart_product" json:"product_id"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	CreatedAt   string `gorm:"size:50" json:"created_at"`
	UpdatedAt   string `gorm:"size:50" json:"updated_at"`
}

func (CartItem) TableName() string { return "customer_cart_items" }

const OrderStatusPending = "pending"

type Order struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	CustomerID  uint    `gorm:"not null;index" json:"customer_id"`
	OrderNumber string  `gorm:"size:50" json:"order_number"`
	Status      string  `gorm:"size:30;not null" json:"status"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `gorm:"size:10;not null" json:"currency"`
	CreatedAt   string  `gorm:"size:50" json:"created_at"`
	UpdatedAt   string  `gorm:"size:50" json:"updated_at"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Order) TableName() string { return "customer_orders" }

// OrderItem fields other than the product key are snapshots taken when the
// order was placed.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"not null;index" json:"order_id"`
	ProductType string  `gorm:"size:20;not null;index:idx_order_item_product" json:"product_type"`
	ProductID   string  `gorm:"size:64;not null;index:idx_order_item_product" json:"product_id"`
	Title       string  `gorm:"type:text" json:"title"`
	Price       float64 `json:"price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	ImageURL    string  `gorm:"type:text" json:"image_url"`
}

func (OrderItem) TableName() string { return "customer_order_items" }

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
)

type Review struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	CustomerID       uint   `gorm:"not null;uniqueIndex:uq_review_product" json:"customer_id"`
	ProductType      string `gorm:"size:20;not null;uniqueIndex:uq_review_product" json:"product_type"`
	ProductID        string `gorm:"size:64;not null;uniqueIndex:uq_review_product" json:"product_id"`
	Rating           int    `gorm:"not null" json:"rating"`
	Title            string `gorm:"size:200" json:"title"`
	Body             string `gorm:"type:text" json:"body"`
	VerifiedPurchase bool   `gorm:"not null" json:"verified_purchase"`
	Status           string `gorm:"size:20;not null;index" json:"status"`
	CreatedAt        string `gorm:"size:50" json:"created_at"`
	UpdatedAt        string `gorm:"size:50" json:"updated_at"`
}

func (Review) TableName() string { return "customer_reviews" }

// ProductReview is a published review with the reviewer's display name.
type ProductReview struct {
	Review
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
