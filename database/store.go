package database

import (
	"context"
	"errors"

	"github.com/barrelborn/digital-menu/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid record id")
)

// Store is the persistence contract behind the record services. Every menu
// collection is addressed by name; the reserved cart, user and customer
// collections have dedicated methods.
//
// IncrementCartItem, CreateCustomerIfAbsent and CreateUserIfAbsent must be
// atomic conditional writes: concurrent callers never produce two rows for
// the same key.
type Store interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	// CollectionNames lists every persisted menu collection, reserved
	// collections excluded. Order is stable across calls.
	CollectionNames(ctx context.Context) ([]string, error)
	MenuItems(ctx context.Context, collection string) ([]models.MenuItem, error)
	// SearchMenuItems matches name or description against term as a
	// case-insensitive literal substring.
	SearchMenuItems(ctx context.Context, collection, term string) ([]models.MenuItem, error)
	FindMenuItem(ctx context.Context, collection, id string) (*models.MenuItem, error)
	InsertMenuItem(ctx context.Context, collection string, item *models.MenuItem) error
	ClearCollection(ctx context.Context, collection string) error

	CartItems(ctx context.Context) ([]models.CartItem, error)
	IncrementCartItem(ctx context.Context, menuItemID string, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id string) error
	ClearCart(ctx context.Context) error

	Customers(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, int64, error)
	CustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	// CreateCustomerIfAbsent inserts c unless a customer with the same phone
	// exists, and returns the stored record either way.
	CreateCustomerIfAbsent(ctx context.Context, c *models.Customer) (*models.Customer, bool, error)

	UserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUserIfAbsent(ctx context.Context, u *models.User) (*models.User, error)
}

var (
	_ Store = (*SQLStore)(nil)
	_ Store = (*MongoStore)(nil)
)
