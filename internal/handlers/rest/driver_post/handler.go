package driver_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/peterPain01/SA-Microserices/internal/dto"
	"github.com/peterPain01/SA-Microserices/internal/entities"
	"github.com/peterPain01/SA-Microserices/internal/service/driver"
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
	var driverDTO dto.DriverCreate
	err := json.NewDecoder(r.Body).Decode(&driverDTO)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	vehicle := entities.Vehicle{
		Type:         entities.VehicleType(driverDTO.Vehicle.Type),
		LicensePlate: driverDTO.Vehicle.LicensePlate,
		Model:        driverDTO.Vehicle.Model,
		Color:        driverDTO.Vehicle.Color,
	}
	driverModify := entities.DriverModify{
		Name:      &driverDTO.Name,
		Phone:     &driverDTO.Phone,
		Email:     &driverDTO.Email,
		Vehicle:   &vehicle,
		Longitude: driverDTO.Longitude,
		Latitude:  driverDTO.Latitude,
	}

	id, err := h.service.RegisterDriver(r.Context(), driverModify)
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrMissingRequiredFields),
			errors.Is(err, driver.ErrInvalidName),
			errors.Is(err, driver.ErrInvalidPhone),
			errors.Is(err, driver.ErrInvalidEmail),
			errors.Is(err, driver.ErrInvalidVehicle),
			errors.Is(err, driver.ErrInvalidLocation):
			h.writeJSON(w, http.StatusBadRequest, dto.Fail(err.Error()))
		case errors.Is(err, driver.ErrConflict):
			h.writeJSON(w, http.StatusConflict, dto.Fail(err.Error()))
		default:
			h.writeJSON(w, http.StatusInternalServerError, dto.Fail("internal error"))
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, dto.OK(dto.DriverCreateResponse{ID: id}))
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
