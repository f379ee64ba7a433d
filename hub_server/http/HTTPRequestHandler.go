package http

import (
	"net/http"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"

	"qhub/hub_server/services"
)

// HTTPRequestHandler serves the REST surface. It plugs into the websocket
// server as the handler for non-upgradable requests, so one listener serves
// both the live channel and the REST routes.
type HTTPRequestHandler struct {
	echo *echo.Echo
}

func NewHTTPRequestHandler(questionService *services.QuestionService, responseService *services.ResponseService) *HTTPRequestHandler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	registerQuestionRoutes(e, NewQuestionController(questionService))
	registerResponseRoutes(e, NewResponseController(responseService))
	return &HTTPRequestHandler{echo: e}
}

func (h *HTTPRequestHandler) Handle(w http.ResponseWriter, r *http.Request) {
	h.echo.ServeHTTP(w, r)
}

func registerQuestionRoutes(e *echo.Echo, controller *QuestionController) {
	e.POST("/questions", controller.Create)
	e.GET("/questions", controller.List)
	e.GET("/questions/:id", controller.Get)
	e.PUT("/questions/:id", controller.Update)
	e.DELETE("/questions/:id", controller.Delete)
}

func registerResponseRoutes(e *echo.Echo, controller *ResponseController) {
	e.POST("/questions/:id/responses", controller.Create)
	e.GET("/questions/:id/responses", controller.List)
	e.PUT("/responses/:id", controller.Update)
	e.DELETE("/responses/:id", controller.Delete)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
