package cart_get

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
	userIDStr := mux.Vars(r)["userId"]
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid user id"))
		return
	}

	cartEntity, err := h.service.GetOrCreateCart(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidUserID):
			h.writeJSON(w, http.StatusBadRequest, dto.Fail(err.Error()))
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
