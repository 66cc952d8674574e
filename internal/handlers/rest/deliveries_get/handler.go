package deliveries_get

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/peterPain01/SA-Microserices/internal/dto"
	"github.com/peterPain01/SA-Microserices/internal/entities"
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

// Список доставок фильтруется либо по driverId, либо по userId,
// ровно один из параметров обязателен.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	driverID, err := queryInt(r, "driverId")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid driverId"))
		return
	}
	userID, err := queryInt(r, "userId")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid userId"))
		return
	}
	if (driverID == 0) == (userID == 0) {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("exactly one of driverId or userId is required"))
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid limit"))
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, dto.Fail("invalid offset"))
		return
	}

	var deliveries []entities.Delivery
	if driverID != 0 {
		deliveries, err = h.service.ListByDriver(r.Context(), driverID, limit, offset)
	} else {
		deliveries, err = h.service.ListByUser(r.Context(), userID, limit, offset)
	}
	if err != nil {
		h.writeJSON(w, http.StatusInternalServerError, dto.Fail("internal error"))
		return
	}

	h.writeJSON(w, http.StatusOK, dto.OK(dto.FromDeliveries(deliveries)))
}

func queryInt(r *http.Request, name string) (int64, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return 0, nil
	}
	return strconv.ParseInt(val, 10, 64)
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
