package utils

import "github.com/gofiber/fiber/v2"

// MessageResponse is the body of every error and of message-only successes.
type MessageResponse struct {
	Message string `json:"message"`
}

// SendMessage sends a 200 response carrying a message plus optional extra fields.
func SendMessage(c *fiber.Ctx, message string, fields fiber.Map) error {
	return SendMessageWithStatus(c, fiber.StatusOK, message, fields)
}

// SendMessageWithStatus sends a message payload using the provided HTTP status code.
func SendMessageWithStatus(c *fiber.Ctx, status int, message string, fields fiber.Map) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	body := fiber.Map{}
	for key, value := range fields {
		body[key] = value
	}
	body["message"] = message

	return c.Status(status).JSON(body)
}

// SendData sends the payload as the JSON body with a 200 status.
func SendData(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(MessageResponse{Message: message})
}
