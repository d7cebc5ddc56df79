package apperrors

// ValidationErrorType is the payload type the backend uses for field validation failures.
const ValidationErrorType = "validationError"

// ValidationErrorCode identifies a validation failure by domain and name,
// e.g. account:emailAlreadyRegistered.
type ValidationErrorCode struct {
	Domain string `json:"domain" mapstructure:"domain" validate:"required"`
	Name   string `json:"name" mapstructure:"name" validate:"required"`
}

// ValidationError is the structured validation payload carried inside a GraphQL
// error message.
type ValidationError struct {
	Type    string              `json:"type" mapstructure:"type" validate:"required"`
	Path    string              `json:"path,omitempty" mapstructure:"path"`
	Code    ValidationErrorCode `json:"code" mapstructure:"code"`
	Message string              `json:"message,omitempty" mapstructure:"message"`
}

// Key returns the registry key "{domain}:{name}".
func (ve ValidationError) Key() string {
	return ValidationKey(ve.Code.Domain, ve.Code.Name)
}

// Error allows ValidationError to satisfy the error interface.
func (ve ValidationError) Error() string {
	if ve.Message != "" {
		return ve.Key() + ": " + ve.Message
	}
	return ve.Key()
}

// ValidationKey builds a registry key from a domain and a name.
func ValidationKey(domain, name string) string {
	return domain + ":" + name
}
