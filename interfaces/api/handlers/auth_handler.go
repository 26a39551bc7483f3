package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"catsofasia/domain/services"
	"catsofasia/pkg/logger"
	"catsofasia/pkg/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Username == "" || req.Password == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "username and password are required", nil)
	}

	token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.UnauthorizedResponse(c, "Invalid username or password")
		}
		logger.AuthError("login", "login failed", err, map[string]interface{}{
			"username": req.Username,
		})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", err)
	}

	return utils.SuccessResponse(c, "Logged in successfully", fiber.Map{
		"token": token,
	})
}

// CSRFToken mints a short-lived token for the mutating RPC methods.
// The route is behind the auth middleware.
func (h *AuthHandler) CSRFToken(c *fiber.Ctx) error {
	token, err := h.authService.IssueCSRFToken(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to issue csrf token", err)
	}

	return utils.SuccessResponse(c, "Token issued", fiber.Map{
		"csrf_token": token,
	})
}
