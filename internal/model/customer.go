package model

// Customer owns every customer scoped row below; deleting it cascades.
type Customer struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	FirstName    string  `gorm:"size:120" json:"first_name"`
	LastName     string  `gorm:"size:120" json:"last_name"`
	Phone        string  `gorm:"size:50" json:"phone"`
	CreatedAt    string  `gorm:"size:50" json:"created_at"`
	UpdatedAt    string  `gorm:"size:50" json:"updated_at"`
	LastLoginAt  *string `gorm:"size:50" json:"last_login_at"`

	Addresses []CustomerAddress `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Favorites []Favorite        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CartItems []CartItem        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Orders    []Order           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reviews   []Review          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Customer) TableName() string { return "customers" }

type CustomerAddress struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CustomerID uint   `gorm:"not null;index" json:"customer_id"`
	Label      string `gorm:"size:120" json:"label"`
	Line1      string `gorm:"size:255;not null" json:"line1"`
	Line2      string `gorm:"size:255" json:"line2"`
	City       string `gorm:"size:120" json:"city"`
	State      string `gorm:"size:120" json:"state"`
	PostalCode string `gorm:"size:40" json:"postal_code"`
	Country    string `gorm:"size:80" json:"country"`
	IsDefault  bool   `gorm:"not null" json:"is_default"`
	CreatedAt  string `gorm:"size:50" json:"created_at"`
	UpdatedAt  string `gorm:"size:50" json:"updated_at"`
}

func (CustomerAddress) TableName() string { return "customer_addresses" }
