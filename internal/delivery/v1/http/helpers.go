package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse — ответ 422 с полным списком нарушений по полям.
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Message: message}
}

// ToHTTPResponse переводит ошибку доменного слоя в статус и сообщение.
// Тексты 404 различаются намеренно: "не найден" и "не принадлежит аутлету" —
// разные ответы с одинаковым статусом.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrUnauthenticated):
		return http.StatusUnauthorized, e.ErrUnauthenticated.Error()
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, e.ErrInvalidCredentials.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	case errors.Is(err, e.ErrUserNotFound):
		return http.StatusNotFound, e.ErrUserNotFound.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrNotOutletProduct):
		return http.StatusNotFound, e.ErrNotOutletProduct.Error()
	case errors.Is(err, e.ErrResourceNotFound):
		return http.StatusNotFound, e.ErrResourceNotFound.Error()
	case errors.Is(err, e.ErrEmailTaken):
		return http.StatusConflict, e.ErrEmailTaken.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrNoImage):
		return http.StatusBadRequest, e.ErrNoImage.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusBadRequest, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrBadRequest):
		return http.StatusBadRequest, e.ErrBadRequest.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	var verr *e.ValidationError
	if errors.As(err, &verr) {
		WriteSuccess(w, http.StatusUnprocessableEntity, &ValidationErrorResponse{
			Message: "the given data was invalid",
			Errors:  verr.Fields,
		})
		return
	}

	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON разбирает тело запроса; синтаксически битый JSON — 400.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.ErrBadRequest
	}
	return nil
}

// idFromURL извлекает числовой идентификатор из пути.
func idFromURL(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrBadRequest
	}
	return id, nil
}

func readImageFile(fh *multipart.FileHeader, maxSize int64) (*usecase.ProductImage, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return &usecase.ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Name:     fh.Filename,
	}, nil
}
