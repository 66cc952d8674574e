//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cart_test
package cart

import (
	"context"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/events"
)

type Repository interface {
	GetActiveByUserID(ctx context.Context, userID int64) (*entities.Cart, error)
	Create(ctx context.Context, cart *entities.Cart) (*entities.Cart, error)
	Update(ctx context.Context, cart *entities.Cart) (*entities.Cart, error)
	UpdateStatus(ctx context.Context, cartID string, status entities.CartStatusType) error
}

type ProductStore interface {
	GetByID(ctx context.Context, productID string) (*entities.Product, error)
	GetByIDs(ctx context.Context, productIDs []string) ([]entities.Product, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Event) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
