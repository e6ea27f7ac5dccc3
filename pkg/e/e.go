package e

import (
	"fmt"
	"sort"
	"strings"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrInternalServerError  = fmt.Errorf("internal server error")

	// 401 Unauthorized
	ErrUnauthenticated    = fmt.Errorf("unauthenticated")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// 403 Forbidden
	ErrForbidden = fmt.Errorf("forbidden")

	// 404 Not Found
	ErrUserNotFound     = fmt.Errorf("user not found")
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrResourceNotFound = fmt.Errorf("resource not found")
	// Продукт существует, но не принадлежит аутлету. Наружу уходит тем же 404.
	ErrNotOutletProduct = fmt.Errorf("this product does not belong to the outlet")

	// 409 Conflict
	ErrEmailTaken = fmt.Errorf("email is already registered")

	// 400 Bad Request
	ErrBadRequest        = fmt.Errorf("bad request")
	ErrExpectedMultipart = fmt.Errorf("expected multipart/form-data")
	ErrNoImage           = fmt.Errorf("no image provided")
	ErrFileTooLarge      = fmt.Errorf("file is too large")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// ValidationError агрегирует все нарушения валидации по полям запроса.
// Запрос отклоняется целиком (422), клиент получает полный список нарушений,
// а не первое найденное.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add регистрирует нарушение для поля.
func (v *ValidationError) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

// Empty сообщает, были ли зарегистрированы нарушения.
func (v *ValidationError) Empty() bool {
	return len(v.Fields) == 0
}

// AsError возвращает nil, если нарушений нет.
func (v *ValidationError) AsError() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
