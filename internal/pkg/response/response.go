package response

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func init() {
	// Money goes out as JSON numbers, matching the documented schema.
	decimal.MarshalJSONWithoutQuotes = true
}

// Response is the JSON envelope of every API reply
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func write(c *fiber.Ctx, status int, body Response) error {
	return c.Status(status).JSON(body)
}

// Success replies 200 with data
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return write(c, fiber.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created replies 201 with the new resource
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return write(c, fiber.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Error replies with a failure envelope and the given status
func Error(c *fiber.Ctx, status int, message string) error {
	return write(c, status, Response{Error: message})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalServerError replies 500. message must not carry internal detail.
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
