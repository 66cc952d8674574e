package delivery_status_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/peterPain01/SA-Microserices/internal/dto"
	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/service/delivery"
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
	id := mux.Vars(r)["id"]

	var statusDTO dto.DeliveryStatusUpdate
	err := json.NewDecoder(r.Body).Decode(&statusDTO)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	deliveryEntity, err := h.service.UpdateDeliveryStatus(r.Context(), delivery.UpdateStatusRequest{
		DeliveryID: id,
		Status:     entities.DeliveryStatusType(statusDTO.Status),
		Longitude:  statusDTO.Longitude,
		Latitude:   statusDTO.Latitude,
		Notes:      statusDTO.Notes,
		UpdatedBy:  entities.ActorType(statusDTO.UpdatedBy),
	})
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidDeliveryID),
			errors.Is(err, delivery.ErrInvalidStatus):
			h.writeJSON(w, http.StatusBadRequest, dto.Fail(err.Error()))
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			h.writeJSON(w, http.StatusNotFound, dto.Fail(err.Error()))
		case errors.Is(err, delivery.ErrTerminalStatus):
			h.writeJSON(w, http.StatusConflict, dto.Fail(err.Error()))
		default:
			h.writeJSON(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	h.writeJSON(w, http.StatusOK, dto.OK(dto.FromDelivery(deliveryEntity)))
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
