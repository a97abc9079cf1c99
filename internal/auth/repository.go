// internal/auth/repository.go
package auth

import (
	"context"
	"errors"

	"stadly/internal/customers"

	"gorm.io/gorm"
)

type Repository interface {
	CreateCustomer(ctx context.Context, customer *customers.Customer) error
	GetCustomerByEmail(ctx context.Context, email string) (*customers.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*customers.Customer, error)
	UpdateCustomerPassword(ctx context.Context, customerID string, hashedPassword string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateCustomer(ctx context.Context, customer *customers.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return err
	}
	return nil
}

func (r *repository) GetCustomerByEmail(ctx context.Context, email string) (*customers.Customer, error) {
	var customer customers.Customer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) GetCustomerByID(ctx context.Context, id string) (*customers.Customer, error) {
	var customer customers.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repository) UpdateCustomerPassword(ctx context.Context, customerID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&customers.Customer{}).
		Where("id = ?", customerID).
		Update("password", hashedPassword)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&customers.Customer{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
