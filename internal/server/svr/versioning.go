package svr

import "github.com/gofiber/fiber/v2"

// V1 is the game API.
type V1 struct {
	fiber.Router
}

// Meta serves operational endpoints.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*V1, *Meta) {
	api := app.Group("/api")

	v1 := api.Group("/v1")
	meta := api.Group("/_")

	return &V1{Router: v1}, &Meta{Router: meta}
}
