package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/events"
)

type Cart struct {
	repository   Repository
	productStore ProductStore
	publisher    EventPublisher
	txManager    TxManager
}

func New(
	repository Repository,
	productStore ProductStore,
	publisher EventPublisher,
	txManager TxManager,
) *Cart {
	return &Cart{
		repository:   repository,
		productStore: productStore,
		publisher:    publisher,
		txManager:    txManager,
	}
}

// GetOrCreateCart возвращает активную корзину пользователя,
// создавая пустую при её отсутствии.
func (s *Cart) GetOrCreateCart(ctx context.Context, userID int64) (*entities.Cart, error) {
	if !isValidUserID(userID) {
		return nil, ErrInvalidUserID
	}

	cart, err := s.repository.GetActiveByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, fmt.Errorf("get active cart: %w", err)
	}

	created, err := s.repository.Create(ctx, &entities.Cart{
		UserID: userID,
		Status: entities.CartActive,
	})
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return created, nil
}

func (s *Cart) AddItem(ctx context.Context, userID int64, productID string, quantity int64) (*entities.Cart, error) {
	if !isValidUserID(userID) {
		return nil, ErrInvalidUserID
	}
	if !isValidProductID(productID) {
		return nil, ErrInvalidProductID
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productStore.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if !product.IsPublished {
		return nil, ErrProductUnavailable
	}
	if product.Stock < quantity {
		return nil, fmt.Errorf("%w: available %d", ErrInsufficientStock, product.Stock)
	}

	var result *entities.Cart
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		cart, err := s.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		applyItem(cart, product, quantity)
		cart.RecalculateTotals()

		result, err = s.repository.Update(ctx, cart)
		if err != nil {
			return fmt.Errorf("update cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Cart) UpdateItemQuantity(ctx context.Context, userID int64, productID string, quantity int64) (*entities.Cart, error) {
	if !isValidUserID(userID) {
		return nil, ErrInvalidUserID
	}
	if !isValidProductID(productID) {
		return nil, ErrInvalidProductID
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	if quantity > 0 {
		product, err := s.productStore.GetByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		if product.Stock < quantity {
			return nil, fmt.Errorf("%w: available %d", ErrInsufficientStock, product.Stock)
		}
	}

	var result *entities.Cart
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		cart, err := s.repository.GetActiveByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get active cart: %w", err)
		}

		if err := setItemQuantity(cart, productID, quantity); err != nil {
			return err
		}
		cart.RecalculateTotals()

		result, err = s.repository.Update(ctx, cart)
		if err != nil {
			return fmt.Errorf("update cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Cart) RemoveItem(ctx context.Context, userID int64, productID string) (*entities.Cart, error) {
	return s.UpdateItemQuantity(ctx, userID, productID, 0)
}

func (s *Cart) ClearCart(ctx context.Context, userID int64) (*entities.Cart, error) {
	if !isValidUserID(userID) {
		return nil, ErrInvalidUserID
	}

	var result *entities.Cart
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		cart, err := s.repository.GetActiveByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get active cart: %w", err)
		}

		cart.Items = nil
		cart.RecalculateTotals()

		result, err = s.repository.Update(ctx, cart)
		if err != nil {
			return fmt.Errorf("update cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type CheckoutDetails struct {
	ShippingAddress entities.ShippingAddress
	PaymentMethod   entities.PaymentMethodType
	CustomerInfo    entities.CustomerInfo
}

// Checkout перепроверяет каждую позицию корзины по актуальному состоянию
// товаров и публикует UserCheckout. Корзина помечается checkout только
// после успешной публикации: упавший publish оставляет её active,
// а вызывающему возвращается повторяемая ошибка.
func (s *Cart) Checkout(ctx context.Context, userID int64, details CheckoutDetails) (*entities.Cart, error) {
	if !isValidUserID(userID) {
		return nil, ErrInvalidUserID
	}
	if details.ShippingAddress.Address == "" ||
		details.CustomerInfo.Name == "" ||
		!details.PaymentMethod.Valid() {
		return nil, ErrMissingRequiredFields
	}

	cart, err := s.repository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get active cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	unavailable, err := s.revalidateItems(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(unavailable) > 0 {
		return nil, &UnavailableItemsError{Items: unavailable}
	}

	event := buildCheckoutEvent(cart, details, time.Now().UTC())
	if err := s.publisher.Publish(ctx, events.TopicUserEvents, event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPublishUnavailable, err)
	}

	// Событие уже в шине: провал записи ниже не отменяет checkout,
	// расхождение закроет переобработка (корзина останется active,
	// но заказ по событию будет создан).
	if err := s.repository.UpdateStatus(ctx, cart.ID, entities.CartCheckout); err != nil {
		return nil, fmt.Errorf("mark cart checkout: %w", err)
	}

	cart.Status = entities.CartCheckout
	return cart, nil
}

func (s *Cart) revalidateItems(ctx context.Context, cart *entities.Cart) ([]UnavailableItem, error) {
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productStore.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}

	byID := make(map[string]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var unavailable []UnavailableItem
	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok || !product.Available(item.Quantity) {
			unavailable = append(unavailable, UnavailableItem{
				ProductID:         item.ProductID,
				Name:              item.Snapshot.Name,
				RequestedQuantity: item.Quantity,
				AvailableStock:    product.Stock,
			})
		}
	}
	return unavailable, nil
}

func applyItem(cart *entities.Cart, product *entities.Product, quantity int64) {
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity += quantity
			// цена всегда актуализируется по текущей цене товара
			cart.Items[i].Price = product.Price
			return
		}
	}

	cart.Items = append(cart.Items, entities.CartItem{
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.Price,
		Snapshot: entities.ProductSnapshot{
			Name:        product.Name,
			Description: product.Description,
			Images:      product.Images,
			Category:    product.Category,
		},
	})
}

func setItemQuantity(cart *entities.Cart, productID string, quantity int64) error {
	for i := range cart.Items {
		if cart.Items[i].ProductID != productID {
			continue
		}
		if quantity == 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
		return nil
	}
	return ErrItemNotFound
}

func buildCheckoutEvent(cart *entities.Cart, details CheckoutDetails, now time.Time) events.UserCheckout {
	items := make([]events.Item, 0, len(cart.Items))
	for _, item := range cart.Items {
		snapshot := events.ProductSnapshot{
			Name:        item.Snapshot.Name,
			Description: item.Snapshot.Description,
			Images:      item.Snapshot.Images,
			Category:    item.Snapshot.Category,
		}
		items = append(items, events.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Snapshot:  &snapshot,
		})
	}

	return events.UserCheckout{
		EventType:  events.TypeUserCheckout,
		UserID:     cart.UserID,
		CartID:     cart.ID,
		Items:      items,
		TotalItems: cart.TotalItems,
		TotalPrice: cart.TotalPrice,
		ShippingAddress: events.ShippingAddress{
			FullName:     details.ShippingAddress.FullName,
			Phone:        details.ShippingAddress.Phone,
			Address:      details.ShippingAddress.Address,
			City:         details.ShippingAddress.City,
			State:        details.ShippingAddress.State,
			ZipCode:      details.ShippingAddress.ZipCode,
			Country:      details.ShippingAddress.Country,
			Longitude:    details.ShippingAddress.Longitude,
			Latitude:     details.ShippingAddress.Latitude,
			Instructions: details.ShippingAddress.Instructions,
		},
		PaymentMethod: details.PaymentMethod.String(),
		CustomerInfo: events.CustomerInfo{
			Name:  details.CustomerInfo.Name,
			Email: details.CustomerInfo.Email,
			Phone: details.CustomerInfo.Phone,
		},
		Timestamp: events.Now(now),
	}
}
