package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	errNotFound                 = NewAppError("NOT_FOUND", "Recurso não encontrado", http.StatusNotFound)
	ErrUnauthorized             = NewAppError("UNAUTHORIZED", "Não autorizado", http.StatusUnauthorized)
	errBadRequest               = NewAppError("BAD_REQUEST", "Requisição inválida", http.StatusBadRequest)
	ErrInternalServer           = NewAppError("INTERNAL_SERVER_ERROR", "Erro interno do servidor", http.StatusInternalServerError)
	ErrValidation               = NewAppError("VALIDATION_ERROR", "Erro de validação", http.StatusBadRequest)
	ErrUserNotFound             = NewAppError("USER_NOT_FOUND", "Usuário não encontrado", http.StatusNotFound)
	ErrAccountNotFound          = NewAppError("ACCOUNT_NOT_FOUND", "Conta não encontrada", http.StatusNotFound)
	ErrTransactionNotFound      = NewAppError("TRANSACTION_NOT_FOUND", "Transação não encontrada", http.StatusNotFound)
	ErrGoalNotFound             = NewAppError("GOAL_NOT_FOUND", "Meta não encontrada", http.StatusNotFound)
	ErrCategoryNotFound         = NewAppError("CATEGORY_NOT_FOUND", "Categoria não encontrada", http.StatusNotFound)
	ErrPlaceNotFound            = NewAppError("PLACE_NOT_FOUND", "Local não encontrado", http.StatusNotFound)
	ErrRequiredReferenceMissing = NewAppError("REQUIRED_REFERENCE_MISSING", "Referência obrigatória não encontrada", http.StatusUnprocessableEntity)
	ErrRateLimited              = NewAppError("RATE_LIMIT_EXCEEDED", "Muitas requisicoes. Tente novamente em alguns minutos.", http.StatusTooManyRequests)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	if details == nil {
		clone.Details = make(map[string]interface{})
		return clone
	}
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func wrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]interface{}, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	} else {
		clone.Details = make(map[string]interface{})
	}
	return &clone
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errNotFound.WithError(err)
	}

	if errors.Is(err, context.Canceled) {
		return wrapError(err, "REQUEST_CANCELED", "Requisição cancelada pelo cliente", http.StatusRequestTimeout)
	}

	return wrapError(err, "UNKNOWN_ERROR", "Erro desconhecido", http.StatusInternalServerError)
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    fmt.Sprintf("%s: %s", translateFieldName(field), message),
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"field": field,
		},
	}
}

func NewRequiredReferenceError(field string, id fmt.Stringer) *AppError {
	return ErrRequiredReferenceMissing.WithDetails(map[string]interface{}{
		"field": field,
		"id":    id.String(),
	})
}

func NewDatabaseError(err error) *AppError {
	return wrapError(err, "DATABASE_ERROR", "Erro ao executar operação no banco de dados", http.StatusInternalServerError)
}

func NewConflictError(resource string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    fmt.Sprintf("%s já existe", resource),
		StatusCode: http.StatusConflict,
		Details: map[string]interface{}{
			"resource": resource,
		},
	}
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		translatedField := translateFieldName(fieldErr.Field())
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   translatedField,
			"message": translateValidationError(fieldErr),
		})
	}

	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Erro de validação nos campos",
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func translateFieldName(field string) string {
	fieldLower := strings.ToLower(field)
	fieldMap := map[string]string{
		"amount":         "valor",
		"account_id":     "conta",
		"accountid":      "conta",
		"category_id":    "categoria",
		"categoryid":     "categoria",
		"subcategory_id": "subcategoria",
		"subcategoryid":  "subcategoria",
		"place_id":       "local",
		"placeid":        "local",
		"goal_id":        "meta",
		"goalid":         "meta",
		"from_acc":       "conta de origem",
		"fromacc":        "conta de origem",
		"to_acc":         "conta de destino",
		"toacc":          "conta de destino",
		"type":           "tipo",
		"description":    "descrição",
		"name":           "nome",
		"email":          "email",
		"date":           "data",
		"target":         "valor alvo",
		"targetamount":   "valor alvo",
		"deadline":       "prazo",
	}
	if translated, ok := fieldMap[fieldLower]; ok {
		return translated
	}
	return field
}

func translateValidationError(fe validator.FieldError) string {
	fieldName := translateFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fieldName)
	case "email":
		return "Email inválido"
	case "min":
		return fmt.Sprintf("%s deve ter no mínimo %s caracteres", fieldName, fe.Param())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", fieldName, fe.Param())
	case "gte":
		return fmt.Sprintf("%s deve ser maior ou igual a %s", fieldName, fe.Param())
	case "lte":
		return fmt.Sprintf("%s deve ser menor ou igual a %s", fieldName, fe.Param())
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", fieldName, fe.Param())
	case "lt":
		return fmt.Sprintf("%s deve ser menor que %s", fieldName, fe.Param())
	case "ne":
		return fmt.Sprintf("%s deve ser diferente de %s", fieldName, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um dos valores: %s", fieldName, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s deve estar no formato AAAA-MM-DD", fieldName)
	default:
		return fmt.Sprintf("Validação '%s' falhou para %s", fe.Tag(), fieldName)
	}
}
