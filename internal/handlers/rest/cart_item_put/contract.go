//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=cart_item_put_test
package cart_item_put

import (
	"context"

	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	UpdateItemQuantity(ctx context.Context, userID int64, productID string, quantity int64) (*entities.Cart, error)
}
