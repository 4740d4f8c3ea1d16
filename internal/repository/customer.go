package repository

import (
	"context"
	"errors"
	"fmt"
	"storefront-commerce/internal/apperror"
	"storefront-commerce/internal/client"
	"storefront-commerce/internal/model"
	"strings"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (uint, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	TouchLogin(ctx context.Context, id uint) error
	UpdateProfile(ctx context.Context, id uint, firstName, lastName, phone string) error
	Delete(ctx context.Context, id uint) (bool, error)

	AddAddress(ctx context.Context, address *model.CustomerAddress) error
	ListAddresses(ctx context.Context, customerID uint) ([]*model.CustomerAddress, error)
}

type customerRepoImpl struct {
	store *client.Store
}

func NewCustomerRepository(store *client.Store) CustomerRepository {
	return &customerRepoImpl{
		store: store,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *customerRepoImpl) Create(ctx context.Context, customer *model.Customer) (uint, error) {
	row := *customer
	row.ID = 0
	row.Email = normalizeEmail(row.Email)
	if row.Email == "" {
		return 0, apperror.Validation("email", "required")
	}
	now := model.Now()
	row.CreatedAt = now
	row.UpdatedAt = now
	row.LastLoginAt = nil

	err := r.store.DB().WithContext(ctx).Create(&row).Error
	if err != nil {
		if r.store.Dialect().IsUniqueViolation(err) {
			return 0, apperror.Conflict("customer", "email_exists", err)
		}
		return 0, fmt.Errorf("create customer: %w", err)
	}

	return row.ID, nil
}

func (r *customerRepoImpl) find(ctx context.Context, column string, value interface{}) (*model.Customer, error) {
	var customer model.Customer
	err := r.store.DB().WithContext(ctx).
		Where(column+" = ?", value).
		First(&customer).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("customer")
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}

	return &customer, nil
}

func (r *customerRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.find(ctx, "email", normalizeEmail(email))
}

func (r *customerRepoImpl) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	return r.find(ctx, "id", id)
}

func (r *customerRepoImpl) TouchLogin(ctx context.Context, id uint) error {
	now := model.Now()
	result := r.store.DB().WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login_at": now,
			"updated_at":    now,
		})
	if result.Error != nil {
		return fmt.Errorf("touch customer login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("customer")
	}

	return nil
}

func (r *customerRepoImpl) UpdateProfile(ctx context.Context, id uint, firstName, lastName, phone string) error {
	result := r.store.DB().WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"phone":      phone,
			"updated_at": model.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update customer profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("customer")
	}

	return nil
}

// Delete removes the customer. Addresses, favorites, cart, orders and reviews
// go with it through the foreign key cascade.
func (r *customerRepoImpl) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.store.DB().WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Customer{})
	if result.Error != nil {
		return false, fmt.Errorf("delete customer: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// AddAddress stores a new address and fills its id and timestamps. A new
// default address clears the flag on the customer's other addresses.
func (r *customerRepoImpl) AddAddress(ctx context.Context, address *model.CustomerAddress) error {
	address.ID = 0
	now := model.Now()
	address.CreatedAt = now
	address.UpdatedAt = now

	return r.store.Transaction(ctx, func(tx *gorm.DB) error {
		if address.IsDefault {
			err := tx.Model(&model.CustomerAddress{}).
				Where("customer_id = ? AND is_default = ?", address.CustomerID, true).
				Updates(map[string]interface{}{
					"is_default": false,
					"updated_at": now,
				}).Error
			if err != nil {
				return fmt.Errorf("clear default address: %w", err)
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("create address: %w", err)
		}
		return nil
	})
}

func (r *customerRepoImpl) ListAddresses(ctx context.Context, customerID uint) ([]*model.CustomerAddress, error) {
	addresses := []*model.CustomerAddress{}
	err := r.store.DB().WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_default DESC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&addresses).
		Error
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	return addresses, nil
}
