package checkout_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/peterPain01/SA-Microserices/internal/dto"
	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/service/cart"
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
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid user id"))
		return
	}

	var checkoutDTO dto.CheckoutRequest
	err = json.NewDecoder(r.Body).Decode(&checkoutDTO)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	details := cart.CheckoutDetails{
		ShippingAddress: entities.ShippingAddress{
			FullName:     checkoutDTO.ShippingAddress.FullName,
			Phone:        checkoutDTO.ShippingAddress.Phone,
			Address:      checkoutDTO.ShippingAddress.Address,
			City:         checkoutDTO.ShippingAddress.City,
			State:        checkoutDTO.ShippingAddress.State,
			ZipCode:      checkoutDTO.ShippingAddress.ZipCode,
			Country:      checkoutDTO.ShippingAddress.Country,
			Longitude:    checkoutDTO.ShippingAddress.Longitude,
			Latitude:     checkoutDTO.ShippingAddress.Latitude,
			Instructions: checkoutDTO.ShippingAddress.Instructions,
		},
		CustomerInfo: entities.CustomerInfo{
			Name:  checkoutDTO.CustomerInfo.Name,
			Email: checkoutDTO.CustomerInfo.Email,
			Phone: checkoutDTO.CustomerInfo.Phone,
		},
		PaymentMethod: entities.PaymentMethodType(checkoutDTO.PaymentMethod),
	}

	cartEntity, err := h.service.Checkout(r.Context(), userID, details)
	if err != nil {
		var unavailable *cart.UnavailableItemsError
		switch {
		case errors.Is(err, cart.ErrInvalidUserID),
			errors.Is(err, cart.ErrMissingRequiredFields):
			h.writeJSON(w, http.StatusBadRequest, dto.Fail(err.Error()))
		case errors.Is(err, cart.ErrCartNotFound):
			h.writeJSON(w, http.StatusNotFound, dto.Fail(err.Error()))
		case errors.Is(err, cart.ErrCartEmpty):
			h.writeJSON(w, http.StatusConflict, dto.Fail(err.Error()))
		case errors.As(err, &unavailable):
			h.writeJSON(w, http.StatusConflict, dto.Response{
				Success: false,
				Error:   cart.ErrItemsUnavailable.Error(),
				Data:    dto.FromUnavailableItems(unavailable.Items),
			})
		case errors.Is(err, cart.ErrPublishUnavailable):
			// корзина осталась active, клиент может повторить checkout
			h.writeJSON(w, http.StatusServiceUnavailable, dto.Fail(cart.ErrPublishUnavailable.Error()))
		default:
			h.writeJSON(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	h.writeJSON(w, http.StatusOK, dto.OKWithMessage("checkout accepted", dto.FromCart(cartEntity)))
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
