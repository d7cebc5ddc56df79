// Package httpx provides HTTP request/response handling for the classification
// service: JSON request decoding with a body limit, standardized JSON responses,
// and the HTTP-facing error types the classifier passes through unchanged.
package httpx

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/tansive/walleterrors/internal/common/apperrors"
)

// DefaultMaxBodySize bounds request bodies when the caller passes no limit.
const DefaultMaxBodySize int64 = 1 << 20

// GetRequestData parses the JSON request body into data. Only POST and PUT are
// accepted. Bodies larger than limit bytes are rejected.
func GetRequestData(r *http.Request, data any, limit int64) error {
	body, err := ReadRequestBody(r, limit)
	if err != nil {
		return err
	}
	return DecodeRequestData(r, body, data)
}

// ReadRequestBody reads a POST or PUT body of at most limit bytes.
func ReadRequestBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return nil, ErrReqMethodNotSupported()
	}
	if r.Body == nil {
		log.Ctx(r.Context()).Error().Msg("empty request body")
		return nil, ErrUnableToParseReqData()
	}
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, ErrUnableToParseReqData()
	}
	if int64(len(body)) > limit {
		return nil, ErrRequestTooLarge(limit)
	}
	return body, nil
}

// DecodeRequestData decodes a body read with ReadRequestBody into data.
func DecodeRequestData(r *http.Request, body []byte, data any) error {
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, data); err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("unable to decode request body")
		return ErrUnableToParseReqData()
	}
	return nil
}

// Response represents an HTTP response with configurable status code and content type.
type Response struct {
	StatusCode  int
	Response    any
	ContentType string
}

// RequestHandler defines a function type for handling HTTP requests.
type RequestHandler func(r *http.Request) (*Response, error)

// WrapHttpRsp wraps a RequestHandler to provide standardized HTTP response
// handling, including error handling and content type management.
func WrapHttpRsp(handler RequestHandler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rsp, err := handler(r)
		if err != nil {
			var statusErr StatusError
			var appErr apperrors.Error
			switch {
			case errors.As(err, &statusErr):
				SendError(w, statusErr)
			case errors.As(err, &appErr):
				SendError(w, appErr)
			default:
				ErrApplicationError(err.Error()).Send(w)
			}
			return
		}
		if rsp == nil {
			ErrApplicationError().Send(w)
			return
		}
		if rsp.ContentType == "" {
			rsp.ContentType = "application/json"
		}
		switch rsp.ContentType {
		case "application/json":
			SendJsonRsp(r.Context(), w, rsp.StatusCode, rsp.Response)
		case "text/plain":
			s, ok := rsp.Response.(string)
			if !ok {
				ErrApplicationError("unsupported response body").Send(w)
				return
			}
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(rsp.StatusCode)
			w.Write([]byte(s))
		default:
			ErrApplicationError("unsupported response type").Send(w)
		}
	})
}
