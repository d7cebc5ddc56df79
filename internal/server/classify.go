package server

import (
	"encoding/json"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/tansive/walleterrors/internal/common/httpx"
	"github.com/tansive/walleterrors/internal/common/logtrace"
	"github.com/tansive/walleterrors/internal/parseerror"
	"github.com/tansive/walleterrors/internal/thrown"
)

// ClassifyReq is the body of POST /classify.
type ClassifyReq struct {
	Error        json.RawMessage `json:"error"`
	DefaultError string          `json:"defaultError"`
}

func (s *ClassifierServer) classify(r *http.Request) (*httpx.Response, error) {
	if v := r.Header.Get(ApiVersionHeader); v != "" && !IsVersionCompatible(v) {
		return nil, httpx.ErrInvalidRequest("unsupported client version: " + v)
	}

	body, err := httpx.ReadRequestBody(r, s.cfg.MaxRequestBodySize)
	if err != nil {
		return nil, err
	}
	req := &ClassifyReq{}
	if err := httpx.DecodeRequestData(r, body, req); err != nil {
		return nil, err
	}
	// A thrown null is classified like any other value; only a missing key is
	// rejected.
	thrownField := gjson.GetBytes(body, "error")
	if !thrownField.Exists() {
		return nil, httpx.ErrInvalidRequest("error is required")
	}
	if len(req.Error) == 0 {
		req.Error = json.RawMessage(thrownField.Raw)
	}

	value := thrown.New(req.Error)
	fingerprint := thrown.Fingerprint(value)
	res := s.parser.Parse(value.Raw(), req.DefaultError)
	desc := parseerror.Describe(res)

	log.Ctx(r.Context()).Info().
		Str("fingerprint", fingerprint).
		Str("kind", desc.Kind).
		Bool("validation", desc.ValidationError != nil).
		Msg("error classified")

	body, err = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(desc)
	if err != nil {
		return nil, httpx.ErrApplicationError("unable to encode classification")
	}
	if body, err = sjson.SetBytes(body, "fingerprint", fingerprint); err != nil {
		return nil, httpx.ErrApplicationError("unable to encode classification")
	}
	if id := logtrace.RequestIdFromContext(r.Context()); id != "" {
		if body, err = sjson.SetBytes(body, "requestId", id); err != nil {
			return nil, httpx.ErrApplicationError("unable to encode classification")
		}
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   body,
	}, nil
}

// ValidationHandlersRsp lists the registered validation keys.
type ValidationHandlersRsp struct {
	Keys []string `json:"keys"`
}

func (s *ClassifierServer) listValidationHandlers(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   &ValidationHandlersRsp{Keys: s.parser.Registry().Keys()},
	}, nil
}
