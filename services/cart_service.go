package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/models"
)

type CartItemInput struct {
	MenuItemID string `json:"menuItemId" validate:"required"`
	Quantity   *int   `json:"quantity" validate:"omitempty,gte=1"`
}

type CartService struct {
	store database.Store
}

func NewCartService(store database.Store) *CartService {
	return &CartService{store: store}
}

func (s *CartService) List(ctx context.Context) ([]models.CartItem, error) {
	items, err := s.store.CartItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// Add increments the row for the menu item, creating it on first add.
// Quantity defaults to 1.
func (s *CartService) Add(ctx context.Context, in CartItemInput) (*models.CartItem, error) {
	in.MenuItemID = strings.TrimSpace(in.MenuItemID)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}

	item, err := s.store.IncrementCartItem(ctx, in.MenuItemID, quantity)
	if errors.Is(err, database.ErrInvalidID) {
		return nil, invalid("menuItemId", "is not a valid id")
	}
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return item, nil
}

// Remove deletes one row; a missing id is not an error.
func (s *CartService) Remove(ctx context.Context, id string) error {
	if err := s.store.DeleteCartItem(ctx, id); err != nil {
		return fmt.Errorf("remove cart item %s: %w", id, err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context) error {
	if err := s.store.ClearCart(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
