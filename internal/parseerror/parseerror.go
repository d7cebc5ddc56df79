// Package parseerror normalizes values of unknown shape into apperrors.Error.
//
// A Parser runs an ordered list of matchers, each recognizing the errors of one
// source (HTTP client, GraphQL API, EVM libraries, Ledger transport, Solana RPC),
// and returns the first match. Structural matchers run before the generic
// "has a message" matcher because library errors usually also carry a verbose
// message that is less suitable for display than their specialized one. When no
// matcher recognizes the value the caller's default message is used, so Parse
// always returns a displayable error.
package parseerror

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/thrown"
)

// DefaultErrorMessage is used when the caller supplies no default.
const DefaultErrorMessage = "We ran into an unexpected problem. Please try again."

// Matcher recognizes one family of errors. Match returns nil when the value is
// not recognized so the next matcher can try.
type Matcher interface {
	Match(v *thrown.Value, defaultError string) apperrors.Error
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(v *thrown.Value, defaultError string) apperrors.Error

var _ Matcher = MatcherFunc(nil)

// Match implements Matcher.
func (f MatcherFunc) Match(v *thrown.Value, defaultError string) apperrors.Error {
	return f(v, defaultError)
}

type namedMatcher struct {
	name    string
	matcher Matcher
}

// Parser classifies thrown values with a fixed matcher order.
type Parser struct {
	registry       *Registry
	defaultMessage string
	matchers       []namedMatcher
}

// Option configures a Parser.
type Option func(*Parser)

// WithRegistry sets the validation handler registry. The default registry is
// used otherwise.
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		p.registry = r
	}
}

// WithDefaultMessage sets the message used when a call passes no default.
func WithDefaultMessage(msg string) Option {
	return func(p *Parser) {
		if msg != "" {
			p.defaultMessage = msg
		}
	}
}

// NewParser creates a Parser with the standard matcher order.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		registry:       DefaultRegistry(),
		defaultMessage: DefaultErrorMessage,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.matchers = []namedMatcher{
		{"http", MatcherFunc(matchHTTPError)},
		{"normalized", MatcherFunc(matchNormalized)},
		{"graphql", &graphQLMatcher{registry: p.registry}},
		{"evm-shape", MatcherFunc(matchEVMShape)},
		{"viem", MatcherFunc(matchViemError)},
		{"ledger", MatcherFunc(matchLedgerError)},
		{"solana", MatcherFunc(matchSolanaError)},
		{"message", MatcherFunc(matchMessage)},
	}
	return p
}

// Registry returns the validation handler registry the parser resolves against.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// DefaultMessage returns the parser's fallback message.
func (p *Parser) DefaultMessage() string {
	return p.defaultMessage
}

// Parse returns the normalized error for err. The first non-empty defaultError
// replaces the parser's default message. Parse never returns nil.
func (p *Parser) Parse(err any, defaultError ...string) apperrors.Error {
	def := p.defaultMessage
	if len(defaultError) > 0 && defaultError[0] != "" {
		def = defaultError[0]
	}
	v := thrown.New(err)
	for _, nm := range p.matchers {
		if res := p.try(nm, v, def); res != nil {
			log.Debug().Str("matcher", nm.name).Str("message", res.Message()).Msg("error classified")
			return res
		}
	}
	log.Debug().Str("type", fmt.Sprintf("%T", err)).Msg("error not recognized, using default message")
	return apperrors.NewAppError(def)
}

// try runs one matcher. A panicking matcher counts as no match.
func (p *Parser) try(nm namedMatcher, v *thrown.Value, def string) (res apperrors.Error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("matcher", nm.name).Str("panic", fmt.Sprintf("%v", r)).Msg("error matcher panicked")
			res = nil
		}
	}()
	res = nm.matcher.Match(v, def)
	if res != nil && res.Message() == "" {
		return nil
	}
	return res
}

var defaultParser atomic.Pointer[Parser]

func init() {
	defaultParser.Store(NewParser())
}

// SetDefaultMessage replaces the default parser's fallback message. Calls that
// are already classifying keep the parser they started with.
func SetDefaultMessage(msg string) {
	if msg == "" {
		return
	}
	defaultParser.Store(NewParser(WithDefaultMessage(msg)))
}

// Parse classifies err with the default parser.
func Parse(err any, defaultError ...string) apperrors.Error {
	return defaultParser.Load().Parse(err, defaultError...)
}

// matchNormalized passes through values that are already normalized.
func matchNormalized(v *thrown.Value, _ string) apperrors.Error {
	if v.IsNil() {
		return nil
	}
	if e, ok := v.Raw().(apperrors.Error); ok {
		return e
	}
	return nil
}

// matchMessage wraps any object carrying a message. Must stay last before the
// default.
func matchMessage(v *thrown.Value, _ string) apperrors.Error {
	m, ok := v.Message()
	if !ok {
		return nil
	}
	return apperrors.NewAppError(m)
}
