package order_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/peterPain01/SA-Microserices/internal/dto"
	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/service/order"
	"github.com/peterPain01/SA-Microserices/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var orderDTO dto.OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderDTO)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	items := make([]entities.OrderItem, 0, len(orderDTO.Items))
	for _, item := range orderDTO.Items {
		items = append(items, entities.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Snapshot: entities.ProductSnapshot{
				Name:        item.Snapshot.Name,
				Description: item.Snapshot.Description,
				Images:      item.Snapshot.Images,
				Category:    item.Snapshot.Category,
			},
		})
	}

	req := order.CreateOrderRequest{
		UserID: orderDTO.UserID,
		CartID: orderDTO.CartID,
		Items:  items,
		ShippingAddress: entities.ShippingAddress{
			FullName:     orderDTO.ShippingAddress.FullName,
			Phone:        orderDTO.ShippingAddress.Phone,
			Address:      orderDTO.ShippingAddress.Address,
			City:         orderDTO.ShippingAddress.City,
			State:        orderDTO.ShippingAddress.State,
			ZipCode:      orderDTO.ShippingAddress.ZipCode,
			Country:      orderDTO.ShippingAddress.Country,
			Longitude:    orderDTO.ShippingAddress.Longitude,
			Latitude:     orderDTO.ShippingAddress.Latitude,
			Instructions: orderDTO.ShippingAddress.Instructions,
		},
		CustomerInfo: entities.CustomerInfo{
			Name:  orderDTO.CustomerInfo.Name,
			Email: orderDTO.CustomerInfo.Email,
			Phone: orderDTO.CustomerInfo.Phone,
		},
		PaymentMethod: entities.PaymentMethodType(orderDTO.PaymentMethod),
		Notes:         orderDTO.Notes,
	}

	orderEntity, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingRequiredFields):
			h.writeJSON(w, http.StatusBadRequest, dto.Fail(err.Error()))
		default:
			h.writeJSON(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, dto.OK(dto.FromOrder(orderEntity)))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, response dto.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
