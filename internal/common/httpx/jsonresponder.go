package httpx

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/tansive/walleterrors/internal/common/logtrace"
)

// SendJsonRsp sends a JSON response with the given status code. Pre-marshaled
// JSON passed as string or []byte is written as is when valid.
func SendJsonRsp(ctx context.Context, w http.ResponseWriter, statusCode int, msg any) {
	var msgJson []byte
	switch m := msg.(type) {
	case string:
		if jsoniter.Valid([]byte(m)) {
			msgJson = []byte(m)
		}
	case []byte:
		if jsoniter.Valid(m) {
			msgJson = m
		}
	default:
		var err error
		msgJson, err = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(msg)
		if err != nil {
			log.Ctx(ctx).Err(err).Msg("unable to marshal json")
			ErrApplicationError("Id: " + logtrace.RequestIdFromContext(ctx)).Send(w)
			return
		}
	}
	if msgJson == nil {
		ErrApplicationError("invalid json response").Send(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(msgJson)
}
