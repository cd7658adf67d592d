package handler

import "github.com/gofiber/fiber/v2"

// Greeting is the fixed body served on the root path.
const Greeting = "Hello, world!"

// Index responds to GET / with the greeting as plain text.
//
// @Summary Greeting
// @Description Returns a static greeting.
// @Tags root
// @Produce plain
// @Success 200 {string} string "Hello, world!"
// @Router / [get]
func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(Greeting)
	}
}
