package parseerror

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/common/httpx"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		in   apperrors.Error
		want string
	}{
		{
			name: "http",
			in:   httpx.NewHTTPError(http.StatusForbidden, "forbidden"),
			want: `{"message":"forbidden","formikError":{},"kind":"http","code":403}`,
		},
		{
			name: "ledger",
			in:   NewLedgerError(LedgerUserRejected),
			want: `{"message":"User rejected the transaction","formikError":{},"kind":"ledger","code":"LedgerUserRejected"}`,
		},
		{
			name: "validation",
			in:   Parse(graphQLInput(`{"type":"validationError","path":"email","code":{"domain":"account","name":"invalidEmail"}}`), "D"),
			want: `{
				"message":"D",
				"formikError":{"email":"The email address you entered is not valid."},
				"validationError":{"type":"validationError","path":"email","code":{"domain":"account","name":"invalidEmail"}},
				"kind":"app"
			}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(Describe(tt.in))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}
