package http

import (
	"net/http"

	"github.com/labstack/echo"

	"qhub/hub_server/model"
	"qhub/hub_server/services"
)

type createResponseRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type ResponseController struct {
	service *services.ResponseService
}

func NewResponseController(service *services.ResponseService) *ResponseController {
	return &ResponseController{service: service}
}

func (c *ResponseController) Create(ctx echo.Context) error {
	var req createResponseRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody("malformed request body"))
	}
	if req.Text == "" {
		return ctx.JSON(http.StatusBadRequest, errorBody("text is required"))
	}
	response, err := c.service.Create(ctx.Request().Context(), ctx.Param("id"), req.Text, req.Author)
	if err == services.ErrQuestionNotFound {
		return ctx.JSON(http.StatusNotFound, errorBody("question not found"))
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	return ctx.JSON(http.StatusCreated, response.Payload())
}

func (c *ResponseController) List(ctx echo.Context) error {
	responses, err := c.service.List(ctx.Request().Context(), ctx.Param("id"))
	if err == services.ErrQuestionNotFound {
		return ctx.JSON(http.StatusNotFound, errorBody("question not found"))
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	payloads := make([]*model.ResponsePayload, 0, len(responses))
	for _, r := range responses {
		payloads = append(payloads, r.Payload())
	}
	return ctx.JSON(http.StatusOK, payloads)
}

func (c *ResponseController) Update(ctx echo.Context) error {
	var update services.ResponseUpdate
	if err := ctx.Bind(&update); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody("malformed request body"))
	}
	response, err := c.service.Update(ctx.Request().Context(), ctx.Param("id"), &update)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	if response == nil {
		return ctx.JSON(http.StatusNotFound, errorBody("response not found"))
	}
	return ctx.JSON(http.StatusOK, response.Payload())
}

func (c *ResponseController) Delete(ctx echo.Context) error {
	deleted, err := c.service.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	if !deleted {
		return ctx.JSON(http.StatusNotFound, errorBody("response not found"))
	}
	return ctx.NoContent(http.StatusNoContent)
}
