package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrCodeNotFound возвращается, когда код скидки не существует
	ErrCodeNotFound = errors.New("pricing: discount code not found")

	// ErrCodeNotApplicable возвращается, когда код существует, но правило
	// неактивно, вне окна действия или не матчится по области действия
	ErrCodeNotApplicable = errors.New("pricing: discount code not applicable")

	// ErrDuplicateCode возвращается при повторении кода в одном запросе
	ErrDuplicateCode = errors.New("pricing: duplicate discount code in request")

	// ErrCodeExists возвращается при создании правила с уже занятым кодом
	ErrCodeExists = errors.New("pricing: discount code already exists")

	// ErrRuleNotFound возвращается, когда правило скидки не найдено
	ErrRuleNotFound = errors.New("pricing: rule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)

// CodeError ошибка конкретного кода скидки: сохраняет код для ответа клиенту
type CodeError struct {
	Code string
	Err  error
}

// Error возвращает текст ошибки с кодом
func (e *CodeError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Code)
}

// Unwrap возвращает базовую sentinel-ошибку
func (e *CodeError) Unwrap() error {
	return e.Err
}
