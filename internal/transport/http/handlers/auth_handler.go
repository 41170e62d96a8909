package handlers

import (
	"errors"

	"github.com/agentos/backend/internal/core/ports"
	"github.com/agentos/backend/internal/core/services"
	"github.com/agentos/backend/internal/infrastructure/logger"
	"github.com/agentos/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth   ports.AuthService
	logger *logger.Logger
}

func NewAuthHandler(auth ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("auth_register_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	token, err := h.auth.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			h.logger.Warnw("auth_register_conflict", "email", req.Email)
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: "email already registered",
			})
		}
		if errors.Is(err, services.ErrWeakPassword) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("auth_register_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "registration failed",
		})
	}

	h.logger.Infow("auth_register_success", "email", req.Email)
	return c.Status(fiber.StatusCreated).JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Warnw("auth_login_rejected", "email", req.Email)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "invalid email or password",
			})
		}
		h.logger.Errorw("auth_login_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "login failed",
		})
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
