package errors

import "fmt"

// Error codes
const (
	CodeAppError   = "APP_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeDownstream = "DOWNSTREAM_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
	CodeConfig     = "CONFIG_ERROR"
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewAppError(message, code string, statusCode int, context map[string]any) *AppError {
	return &AppError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// ValidationError covers malformed caller input (missing image field,
// unparseable style filter). Never retried, surfaced as 4xx.
type ValidationError struct {
	*AppError
	Field string
	Value any
}

func (e *ValidationError) Unwrap() error { return e.AppError }

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// DownstreamError marks a failure of an external collaborator (vision model,
// object storage, geocoder). Callers on the classification path recover with
// a documented default instead of propagating it.
type DownstreamError struct {
	*AppError
	System string
}

func (e *DownstreamError) Unwrap() error { return e.AppError }

func NewDownstreamError(message, system string, statusCode int, cause error) *DownstreamError {
	return &DownstreamError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeDownstream,
			StatusCode: statusCode,
			Context: map[string]any{
				"system": system,
			},
			Cause: cause,
		},
		System: system,
	}
}

type CacheError struct {
	*AppError
	Operation string
	Key       string
}

func (e *CacheError) Unwrap() error { return e.AppError }

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AppError
	Service   string
	Operation string
}

func (e *ServiceError) Unwrap() error { return e.AppError }

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// ConfigError is fatal: retrying cannot succeed without operator action.
type ConfigError struct {
	*AppError
	Setting string
}

func (e *ConfigError) Unwrap() error { return e.AppError }

func NewConfigError(message, setting string) *ConfigError {
	return &ConfigError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeConfig,
			StatusCode: 500,
			Context: map[string]any{
				"setting": setting,
			},
		},
		Setting: setting,
	}
}
