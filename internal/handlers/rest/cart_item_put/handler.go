package cart_item_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/peterPain01/SA-Microserices/internal/dto"
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
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid user id"))
		return
	}
	productID := vars["productId"]

	var itemDTO dto.CartItemUpdate
	err = json.NewDecoder(r.Body).Decode(&itemDTO)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	cartEntity, err := h.service.UpdateItemQuantity(r.Context(), userID, productID, itemDTO.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidUserID),
			errors.Is(err, cart.ErrInvalidProductID),
			errors.Is(err, cart.ErrInvalidQuantity):
			h.writeJSON(w, http.StatusBadRequest, dto.Fail(err.Error()))
		case errors.Is(err, cart.ErrCartNotFound),
			errors.Is(err, cart.ErrItemNotFound),
			errors.Is(err, cart.ErrProductNotFound):
			h.writeJSON(w, http.StatusNotFound, dto.Fail(err.Error()))
		case errors.Is(err, cart.ErrInsufficientStock):
			h.writeJSON(w, http.StatusConflict, dto.Fail(err.Error()))
		default:
			h.writeJSON(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	h.writeJSON(w, http.StatusOK, dto.OK(dto.FromCart(cartEntity)))
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
