package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/infrastructure/qr"
	"kangenshare/internal/usecase"
	"kangenshare/pkg/errors"
	"kangenshare/pkg/response"
	"kangenshare/pkg/utils"
)

type RequestHandler struct {
	requestUseCase *usecase.RequestUseCase
	qrGenerator    *qr.Generator
}

func NewRequestHandler(requestUseCase *usecase.RequestUseCase, qrGenerator *qr.Generator) *RequestHandler {
	return &RequestHandler{
		requestUseCase: requestUseCase,
		qrGenerator:    qrGenerator,
	}
}

type createRequestRequest struct {
	HostID     string  `json:"host_id" validate:"required"`
	PhLevel    float64 `json:"ph_level" validate:"required,gt=0"`
	Liters     float64 `json:"liters" validate:"required,gt=0"`
	PickupDate string  `json:"pickup_date" validate:"required"`
	PickupTime string  `json:"pickup_time" validate:"required"`
	Notes      string  `json:"notes,omitempty"`
}

func (h *RequestHandler) CreateRequest(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	pickupDate, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid pickup date, expected YYYY-MM-DD", err))
	}

	request, err := h.requestUseCase.CreateRequest(c.Request().Context(), uid, usecase.CreateRequestInput{
		HostID:     req.HostID,
		PhLevel:    req.PhLevel,
		Liters:     req.Liters,
		PickupDate: pickupDate,
		PickupTime: req.PickupTime,
		Notes:      req.Notes,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

type createChatThreadRequest struct {
	HostID      string `json:"host_id" validate:"required"`
	RequesterID string `json:"requester_id" validate:"required"`
}

func (h *RequestHandler) CreateChatThread(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createChatThreadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	thread, err := h.requestUseCase.CreateChatThread(c.Request().Context(), uid, req.HostID, req.RequesterID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, thread)
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	uid := c.Get("uid").(string)
	requestID := c.Param("requestId")

	request, err := h.requestUseCase.GetRequestByID(c.Request().Context(), uid, requestID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined cancelled"`
}

func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	uid := c.Get("uid").(string)
	requestID := c.Param("requestId")

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.requestUseCase.UpdateStatus(c.Request().Context(), uid, requestID, entity.RequestStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

type confirmPickupRequest struct {
	Payload string `json:"payload" validate:"required"`
}

func (h *RequestHandler) ConfirmPickup(c echo.Context) error {
	uid := c.Get("uid").(string)
	requestID := c.Param("requestId")

	var req confirmPickupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	request, err := h.requestUseCase.ConfirmPickup(c.Request().Context(), uid, requestID, req.Payload)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

// GetPickupCode returns the QR image URL the host shows at pickup. The
// encoded payload is the bare request id.
func (h *RequestHandler) GetPickupCode(c echo.Context) error {
	uid := c.Get("uid").(string)
	requestID := c.Param("requestId")

	request, err := h.requestUseCase.GetRequestByID(c.Request().Context(), uid, requestID)
	if err != nil {
		return response.Error(c, err)
	}
	if request.Status != entity.RequestAccepted {
		return response.Error(c, errors.BadRequest("Pickup code is only available for accepted requests", nil))
	}

	return response.Success(c, map[string]string{
		"payload":   request.ID,
		"image_url": h.qrGenerator.ImageURL(request.ID),
	})
}

func (h *RequestHandler) ListOutgoing(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.requestUseCase.ListByRequester(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

func (h *RequestHandler) ListIncoming(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.requestUseCase.ListByHost(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}
