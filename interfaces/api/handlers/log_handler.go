package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catsofasia/pkg/config"
	"catsofasia/pkg/logger"
)

// LogHandler serves log entries to operators.
type LogHandler struct {
	adminToken string
}

func NewLogHandler(cfg *config.Config) *LogHandler {
	adminToken := cfg.Admin.Token
	if adminToken == "" {
		adminToken = cfg.JWT.Secret
	}
	return &LogHandler{
		adminToken: adminToken,
	}
}

func (h *LogHandler) checkToken(c *fiber.Ctx) bool {
	token := c.Get("X-Admin-Token")
	if token == "" {
		token = c.Query("token")
	}
	return token == h.adminToken
}

// GetLogs returns log entries filtered by the query parameters.
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	if !h.checkToken(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid admin token",
		})
	}

	opts := logger.ReadLogsOptions{
		Lines:    c.QueryInt("lines", 100),
		Level:    logger.Level(c.Query("level")),
		Category: logger.Category(c.Query("category")),
		Search:   c.Query("search"),
	}

	entries, err := logger.ReadLogs(opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"entries": entries,
			"count":   len(entries),
		},
	})
}

// GetLogFiles lists the per-category log files.
func (h *LogHandler) GetLogFiles(c *fiber.Ctx) error {
	if !h.checkToken(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid admin token",
		})
	}

	files, err := logger.ListLogFiles()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"files": files,
		},
	})
}
