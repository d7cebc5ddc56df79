package liberrors

import "strings"

// GraphQLError is a single entry of a GraphQL response "errors" array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// GraphQLErrorCarrier is implemented by errors that carry raw GraphQL errors.
type GraphQLErrorCarrier interface {
	GraphQLErrors() []GraphQLError
}

// GraphQLErrors is the error raised by the GraphQL client when a response
// contains errors.
type GraphQLErrors struct {
	Errors []GraphQLError `json:"graphQLErrors"`
}

// NewGraphQLErrors creates a GraphQLErrors from messages.
func NewGraphQLErrors(messages ...string) *GraphQLErrors {
	e := &GraphQLErrors{}
	for _, m := range messages {
		e.Errors = append(e.Errors, GraphQLError{Message: m})
	}
	return e
}

func (e *GraphQLErrors) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// GraphQLErrors returns the raw errors.
func (e *GraphQLErrors) GraphQLErrors() []GraphQLError {
	return e.Errors
}
