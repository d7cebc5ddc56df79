package parseerror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/thrown"
	"github.com/tansive/walleterrors/pkg/liberrors"
)

const validationErrorSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["type", "code"],
	"properties": {
		"type": { "type": "string" },
		"path": { "type": "string" },
		"message": { "type": "string" },
		"code": {
			"type": "object",
			"required": ["domain", "name"],
			"properties": {
				"domain": { "type": "string", "minLength": 1 },
				"name": { "type": "string", "minLength": 1 }
			}
		}
	}
}`

var validationErrorSchemaCompiled = mustCompileSchema(validationErrorSchema)

func mustCompileSchema(schema string) *jsonschema.Schema {
	compiled, err := compileSchema(schema)
	if err != nil {
		panic(fmt.Sprintf("compiling validation error schema: %v", err))
	}
	return compiled
}

// compileSchema compiles a JSON schema string into a jsonschema.Schema
func compileSchema(schema string) (*jsonschema.Schema, error) {
	if !gjson.Valid(schema) {
		return nil, fmt.Errorf("invalid JSON schema")
	}
	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		if url == "inline://schema" {
			return io.NopCloser(strings.NewReader(schema)), nil
		}
		return nil, fmt.Errorf("unsupported schema ref: %s", url)
	}
	if err := compiler.AddResource("inline://schema", strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile("inline://schema")
}

type graphQLMatcher struct {
	registry *Registry
}

// Match recognizes GraphQL client errors: a non-empty graphQLErrors array, or a
// Go error carrying raw GraphQL errors. Only the first entry is considered.
func (g *graphQLMatcher) Match(v *thrown.Value, defaultError string) apperrors.Error {
	msg, ok := firstGraphQLMessage(v)
	if !ok {
		return nil
	}
	payload := gjson.Parse(msg)
	if !gjson.Valid(msg) || !payload.IsObject() {
		return apperrors.NewAppError(msg)
	}
	if payload.Get("type").String() != apperrors.ValidationErrorType {
		log.Debug().Str("type", payload.Get("type").String()).Msg("unhandled graphql error payload type")
		return nil
	}
	ve, err := decodeValidationError(msg)
	if err != nil {
		log.Warn().Err(err).Msg("validation error payload does not match schema")
		return apperrors.NewAppError(msg)
	}
	return validationAppError(g.registry, ve, defaultError)
}

// decodeValidationError checks a validation payload against the schema and
// decodes it.
func decodeValidationError(msg string) (apperrors.ValidationError, error) {
	var doc any
	if err := json.Unmarshal([]byte(msg), &doc); err != nil {
		return apperrors.ValidationError{}, err
	}
	if err := validationErrorSchemaCompiled.Validate(doc); err != nil {
		return apperrors.ValidationError{}, err
	}
	r := gjson.Parse(msg)
	return apperrors.ValidationError{
		Type: r.Get("type").String(),
		Path: stringField(r, "path"),
		Code: apperrors.ValidationErrorCode{
			Domain: stringField(r, "code.domain"),
			Name:   stringField(r, "code.name"),
		},
		Message: stringField(r, "message"),
	}, nil
}

func stringField(r gjson.Result, path string) string {
	f := r.Get(path)
	if f.Type != gjson.String {
		return ""
	}
	return f.Str
}

// validationAppError builds the normalized error for a validation payload. A
// payload with a path is field scoped: the resolved message goes to the field
// and the top-level message stays the default.
func validationAppError(registry *Registry, ve apperrors.ValidationError, defaultError string) apperrors.Error {
	resolved := registry.Resolve(ve, defaultError)
	var appErr *apperrors.AppError
	if ve.Path != "" {
		appErr = apperrors.NewAppError(defaultError).
			WithFormikError(apperrors.FormikErrors{ve.Path: resolved})
	} else {
		appErr = apperrors.NewAppError(resolved)
	}
	return appErr.WithValidationError(&ve)
}
