package cart

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrInvalidProductID      = errors.New("invalid product id")
	ErrInvalidQuantity       = errors.New("quantity must be greater than 0")

	ErrCartNotFound       = errors.New("cart not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrItemNotFound       = errors.New("item not found in cart")

	// ErrItemsUnavailable — проверка перед checkout нашла недоступные позиции.
	ErrItemsUnavailable = errors.New("some items are no longer available")

	// ErrPublishUnavailable — событие не удалось опубликовать, операция
	// повторяема, корзина осталась активной.
	ErrPublishUnavailable = errors.New("checkout service is temporarily unavailable")
)

type UnavailableItem struct {
	ProductID         string
	Name              string
	RequestedQuantity int64
	AvailableStock    int64
}

// UnavailableItemsError несёт структурированный список недоступных позиций,
// чтобы HTTP-слой мог вернуть его клиенту.
type UnavailableItemsError struct {
	Items []UnavailableItem
}

func (e *UnavailableItemsError) Error() string {
	return fmt.Sprintf("%v: %d item(s)", ErrItemsUnavailable, len(e.Items))
}

func (e *UnavailableItemsError) Unwrap() error {
	return ErrItemsUnavailable
}
