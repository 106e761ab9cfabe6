package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"poster_events/internal/extract"
	"poster_events/internal/response"
)

// AnalyzePoster обрабатывает загрузку афиши
// @Summary		Загрузка афиши
// @Description	Извлекает данные мероприятия из изображения афиши с помощью модели и сохраняет их
// @Tags			posters
// @Accept			multipart/form-data
// @Produce		json
// @Param			file	formData	file	true	"Изображение афиши"
// @Security		BearerAuth
// @Success		200	{object}	response.AnalyzeResponse	"Мероприятие сохранено"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка входных данных (MISSING_FILE, INVALID_IMAGE, INVALID_DATETIME)"
// @Failure		401	{object}	response.ErrorResponse	"Нет или неверный токен (NO_AUTH_HEADER, INVALID_TOKEN)"
// @Failure		413	{object}	response.ErrorResponse	"Файл слишком большой (FILE_TOO_LARGE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (MODEL_ERROR, MODEL_RESPONSE_MALFORMED, DB_ERROR)"
// @Router			/analyze-poster [post]
func (h *Handler) AnalyzePoster(c *gin.Context) {
	if h.maxUpload > 0 {
		if c.Request.ContentLength > h.maxUpload {
			c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{
				Code:    "FILE_TOO_LARGE",
				Message: "Файл слишком большой",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponse{
				Code:    "FILE_TOO_LARGE",
				Message: "Файл слишком большой",
			})
			return
		}
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FILE",
			Message: "Файл афиши не передан",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FILE",
			Message: "Не удалось прочитать файл афиши",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	img, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FILE",
			Message: "Не удалось прочитать файл афиши",
			Details: err.Error(),
		})
		return
	}

	poster, err := h.extractor.Extract(c.Request.Context(), img)
	if err != nil {
		h.writeExtractError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.AnalyzeResponse{
		Message: "Афиша успешно обработана",
		Data:    response.NewEvent(poster),
	})
}

// writeExtractError сопоставляет ошибку конвейера с кодом ответа:
// 400 для данных, которые прислал пользователь или вернула модель, 500 для всего остального.
func (h *Handler) writeExtractError(c *gin.Context, err error) {
	var (
		status int
		resp   response.ErrorResponse
	)
	switch {
	case errors.Is(err, extract.ErrInvalidImage):
		status = http.StatusBadRequest
		resp = response.ErrorResponse{Code: "INVALID_IMAGE", Message: "Файл не является изображением"}
	case errors.Is(err, extract.ErrDateTimeInvalid):
		status = http.StatusBadRequest
		resp = response.ErrorResponse{Code: "INVALID_DATETIME", Message: "Некорректная дата или время в ответе модели"}
	case errors.Is(err, extract.ErrModelResponseMalformed):
		status = http.StatusInternalServerError
		resp = response.ErrorResponse{Code: "MODEL_RESPONSE_MALFORMED", Message: "Модель вернула некорректный JSON"}
	case errors.Is(err, extract.ErrModelUnavailable):
		status = http.StatusInternalServerError
		resp = response.ErrorResponse{Code: "MODEL_ERROR", Message: "Ошибка обращения к модели"}
	default:
		status = http.StatusInternalServerError
		resp = response.ErrorResponse{Code: "DB_ERROR", Message: "Ошибка сохранения мероприятия"}
	}
	resp.Details = err.Error()

	log.Printf("[%s] Ошибка обработки афиши: %v", requestID(c), err)
	c.JSON(status, resp)
}
