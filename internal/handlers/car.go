package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"car-catalog-api/internal/constants"
	apperrors "car-catalog-api/internal/errors"
	"car-catalog-api/internal/models"
	"car-catalog-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CarHandler struct {
	service        *service.CarService
	notFoundStatus int
	logger         *zap.Logger
}

// NewCarHandler creates the /cars handlers. notFoundStatus is the status sent
// along with {"error": "Car not found"}; 200 keeps the historical contract.
func NewCarHandler(service *service.CarService, notFoundStatus int, logger *zap.Logger) *CarHandler {
	if notFoundStatus == 0 {
		notFoundStatus = http.StatusOK
	}
	return &CarHandler{
		service:        service,
		notFoundStatus: notFoundStatus,
		logger:         logger,
	}
}

func (h *CarHandler) ListCars(c *gin.Context) {
	resp, err := h.service.ListCars(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CarHandler) GetCar(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}

	car, err := h.service.GetCar(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(h.notFoundStatus, gin.H{"error": apperrors.AsAppError(err).Message})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) CarsByYear(c *gin.Context) {
	year, ok := h.intParam(c, "year")
	if !ok {
		return
	}

	resp, err := h.service.CarsByYear(c.Request.Context(), year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CarHandler) CarsByMaxPrice(c *gin.Context) {
	price, ok := h.intParam(c, "price")
	if !ok {
		return
	}

	resp, err := h.service.CarsByMaxPrice(c.Request.Context(), price)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	var req models.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn(fmt.Sprintf("%s Invalid car payload", constants.APIName()), zap.Error(err))
		h.respondError(c, apperrors.NewValidationError(fmt.Sprintf("Invalid car payload: %v", err)))
		return
	}

	resp, err := h.service.CreateCar(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CarHandler) int64Param(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondError(c, apperrors.NewValidationError(fmt.Sprintf("Invalid %s: %q is not an integer", name, raw)))
		return 0, false
	}
	return value, true
}

func (h *CarHandler) intParam(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	value, err := strconv.Atoi(raw)
	if err != nil {
		h.respondError(c, apperrors.NewValidationError(fmt.Sprintf("Invalid %s: %q is not an integer", name, raw)))
		return 0, false
	}
	return value, true
}

func (h *CarHandler) respondError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Error(fmt.Sprintf("%s Request failed", constants.APIName()), zap.Error(err))
		_ = c.Error(err)
		// storage details stay in the log
		c.JSON(appErr.StatusCode, gin.H{
			"error":  "Internal server error",
			"status": appErr.StatusCode,
		})
		return
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error":  appErr.Message,
		"status": appErr.StatusCode,
	})
}
