package http

import (
	"net/http"

	"github.com/labstack/echo"

	"qhub/hub_server/model"
	"qhub/hub_server/services"
)

type createQuestionRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category"`
}

type QuestionController struct {
	service *services.QuestionService
}

func NewQuestionController(service *services.QuestionService) *QuestionController {
	return &QuestionController{service: service}
}

func (c *QuestionController) Create(ctx echo.Context) error {
	var req createQuestionRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody("malformed request body"))
	}
	if req.Title == "" {
		return ctx.JSON(http.StatusBadRequest, errorBody("title is required"))
	}
	question, err := c.service.Create(ctx.Request().Context(), req.Title, req.Body, req.Category)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	return ctx.JSON(http.StatusCreated, question.Payload())
}

func (c *QuestionController) List(ctx echo.Context) error {
	questions, err := c.service.List(ctx.Request().Context(), ctx.QueryParam("category"))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	payloads := make([]*model.QuestionPayload, 0, len(questions))
	for _, q := range questions {
		payloads = append(payloads, q.Payload())
	}
	return ctx.JSON(http.StatusOK, payloads)
}

func (c *QuestionController) Get(ctx echo.Context) error {
	question, err := c.service.Get(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	if question == nil {
		return ctx.JSON(http.StatusNotFound, errorBody("question not found"))
	}
	return ctx.JSON(http.StatusOK, question.Payload())
}

func (c *QuestionController) Update(ctx echo.Context) error {
	var update services.QuestionUpdate
	if err := ctx.Bind(&update); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody("malformed request body"))
	}
	question, err := c.service.Update(ctx.Request().Context(), ctx.Param("id"), &update)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	if question == nil {
		return ctx.JSON(http.StatusNotFound, errorBody("question not found"))
	}
	return ctx.JSON(http.StatusOK, question.Payload())
}

func (c *QuestionController) Delete(ctx echo.Context) error {
	deleted, err := c.service.Delete(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody(err.Error()))
	}
	if !deleted {
		return ctx.JSON(http.StatusNotFound, errorBody("question not found"))
	}
	return ctx.NoContent(http.StatusNoContent)
}
