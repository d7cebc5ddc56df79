package logtrace

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", DefaultLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", DefaultLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestInitLogger(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	initLogger(&buf, "warn")
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestRequestId(t *testing.T) {
	assert.Empty(t, RequestIdFromContext(context.Background()))
	//nolint:staticcheck
	assert.Empty(t, RequestIdFromContext(nil))
	ctx := WithRequestId(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIdFromContext(ctx))
}
