package handler

import (
	"github.com/labstack/echo/v4"

	"kangenshare/internal/domain/entity"
	"kangenshare/internal/usecase"
	"kangenshare/pkg/errors"
	"kangenshare/pkg/response"
	"kangenshare/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	user, err := h.userUseCase.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.ListUsers(c.Request().Context(), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.PageSize)
}

func (h *UserHandler) ListHosts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	hosts, total, err := h.userUseCase.ListHosts(
		c.Request().Context(),
		c.QueryParam("city"),
		c.QueryParam("country"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, hosts, total, pagination.Page, pagination.PageSize)
}

type updateProfileRequest struct {
	Name         string                        `json:"name,omitempty"`
	DisplayName  string                        `json:"display_name,omitempty"`
	Phone        string                        `json:"phone,omitempty"`
	Bio          string                        `json:"bio,omitempty"`
	Instagram    *string                       `json:"instagram,omitempty"`
	Facebook     *string                       `json:"facebook,omitempty"`
	LinkedIn     *string                       `json:"linkedin,omitempty"`
	Website      *string                       `json:"website,omitempty"`
	Address      *entity.Address               `json:"address,omitempty"`
	PhLevels     []float64                     `json:"ph_levels,omitempty"`
	Availability map[string]entity.DaySchedule `json:"availability,omitempty"`
	Maintenance  *entity.Maintenance           `json:"maintenance,omitempty"`

	IsAcceptingRequests *bool `json:"is_accepting_requests,omitempty"`
	OnboardingCompleted *bool `json:"onboarding_completed,omitempty"`
	OnboardingStep      *int  `json:"onboarding_step,omitempty"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Name:                req.Name,
		DisplayName:         req.DisplayName,
		Phone:               req.Phone,
		Bio:                 req.Bio,
		Instagram:           req.Instagram,
		Facebook:            req.Facebook,
		LinkedIn:            req.LinkedIn,
		Website:             req.Website,
		Address:             req.Address,
		PhLevels:            req.PhLevels,
		Availability:        req.Availability,
		Maintenance:         req.Maintenance,
		IsAcceptingRequests: req.IsAcceptingRequests,
		OnboardingCompleted: req.OnboardingCompleted,
		OnboardingStep:      req.OnboardingStep,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) ToggleFollow(c echo.Context) error {
	uid := c.Get("uid").(string)
	targetID := c.Param("userId")
	if targetID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	following, err := h.userUseCase.ToggleFollow(c.Request().Context(), uid, targetID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"following": following})
}

func (h *UserHandler) SubmitVerification(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.SubmitDistributorVerification(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
