package parseerror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansive/walleterrors/internal/common/apperrors"
	"github.com/tansive/walleterrors/internal/common/httpx"
	"github.com/tansive/walleterrors/internal/thrown"
	"github.com/tansive/walleterrors/pkg/liberrors"
)

const testDefault = "D"

func validationPayload(t *testing.T, path string) string {
	t.Helper()
	payload := map[string]any{
		"type": "validationError",
		"code": map[string]any{"domain": "account", "name": "emailAlreadyRegistered"},
	}
	if path != "" {
		payload["path"] = path
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(b)
}

func graphQLInput(messages ...string) map[string]any {
	entries := make([]any, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, map[string]any{"message": m})
	}
	return map[string]any{"graphQLErrors": entries}
}

func TestParseAlwaysReturnsMessage(t *testing.T) {
	var nilPtr *liberrors.ViemBaseError
	inputs := []struct {
		name string
		in   any
	}{
		{"nil", nil},
		{"typed nil", nilPtr},
		{"string", "boom"},
		{"number", 42},
		{"bool", true},
		{"empty map", map[string]any{}},
		{"empty message", map[string]any{"message": ""}},
		{"non string message", map[string]any{"message": 12}},
		{"empty graphql list", map[string]any{"graphQLErrors": []any{}}},
		{"slice", []any{1, 2}},
		{"go error", errors.New("x")},
		{"empty go error", errors.New("")},
		{"unencodable", map[string]any{"fn": func() {}}},
	}
	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.in, testDefault)
			require.NotNil(t, res)
			assert.NotEmpty(t, res.Message())
			assert.NotNil(t, res.FormikError())
		})
	}
}

func TestParseSelfReferencingValue(t *testing.T) {
	withMessage := map[string]any{"message": "boom"}
	withMessage["self"] = withMessage
	assert.Equal(t, "boom", Parse(withMessage, testDefault).Message())

	ledger := map[string]any{"statusCode": float64(0x6511)}
	ledger["cause"] = map[string]any{"parent": ledger}
	res := Parse(ledger, testDefault)
	ledgerErr, ok := res.(*LedgerError)
	require.True(t, ok)
	assert.Equal(t, LedgerNotRunningEthApp, ledgerErr.Code)

	loop := []any{nil}
	loop[0] = loop
	assert.Equal(t, testDefault, Parse(loop, testDefault).Message())
}

func TestSetDefaultMessageWhileParsing(t *testing.T) {
	t.Cleanup(func() { SetDefaultMessage(DefaultErrorMessage) })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NotEmpty(t, Parse(nil).Message())
			}
		}()
	}
	for i := 0; i < 100; i++ {
		SetDefaultMessage(fmt.Sprintf("fallback %d", i))
	}
	wg.Wait()

	SetDefaultMessage("Configured fallback")
	assert.Equal(t, "Configured fallback", Parse(nil).Message())
	SetDefaultMessage("")
	assert.Equal(t, "Configured fallback", Parse(nil).Message())
}

func TestParseDefaults(t *testing.T) {
	assert.Equal(t, DefaultErrorMessage, Parse(nil).Message())
	assert.Equal(t, DefaultErrorMessage, Parse(nil, "").Message())
	assert.Equal(t, testDefault, Parse(42, testDefault).Message())

	p := NewParser(WithDefaultMessage("custom default"))
	assert.Equal(t, "custom default", p.DefaultMessage())
	assert.Equal(t, "custom default", p.Parse("x").Message())
	assert.Equal(t, "override", p.Parse("x", "override").Message())
}

func TestParseHTTPError(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		httpErr := httpx.NewHTTPError(http.StatusNotFound, "not found")
		res := Parse(httpErr, testDefault)
		require.Same(t, httpErr, res)
		assert.Equal(t, http.StatusNotFound, res.(*httpx.HTTPError).Code)
		assert.Equal(t, http.StatusNotFound, res.StatusCode())
	})
	t.Run("authorization", func(t *testing.T) {
		authErr := httpx.NewAuthorizationError("session expired")
		res := Parse(authErr, testDefault)
		require.Same(t, authErr, res)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode())
		assert.Equal(t, "session expired", res.Message())
	})
	t.Run("wrapped", func(t *testing.T) {
		httpErr := httpx.NewHTTPError(http.StatusBadGateway, "bad gateway")
		res := Parse(fmt.Errorf("fetching balances: %w", httpErr), testDefault)
		require.Same(t, httpErr, res)
	})
	t.Run("empty message keeps status", func(t *testing.T) {
		for _, in := range []httpx.StatusError{
			httpx.NewHTTPError(http.StatusServiceUnavailable, ""),
			httpx.NewAuthorizationError(""),
		} {
			res := Parse(in, testDefault)
			se, ok := res.(httpx.StatusError)
			require.True(t, ok)
			assert.Equal(t, in.HTTPStatus(), se.HTTPStatus())
			assert.Equal(t, testDefault, res.Message())
			assert.Equal(t, KindHTTP, Describe(res).Kind)
		}
	})
}

func TestParseNormalizedPassthrough(t *testing.T) {
	ledgerErr := NewLedgerError(LedgerLocked)
	assert.Same(t, ledgerErr, Parse(ledgerErr))

	appErr := apperrors.NewAppError("already normalized").
		WithFormikError(apperrors.FormikErrors{"name": "required"})
	res := Parse(appErr)
	require.Same(t, appErr, res)
	assert.Equal(t, "required", res.FormikError()["name"])
}

func TestParseGraphQLError(t *testing.T) {
	t.Run("validation with path", func(t *testing.T) {
		res := Parse(graphQLInput(validationPayload(t, "email")), testDefault)
		assert.Equal(t, testDefault, res.Message())
		assert.Equal(t, "The email address you entered is already in use.", res.FormikError()["email"])
		require.NotNil(t, res.ValidationError())
		assert.Equal(t, "email", res.ValidationError().Path)
		assert.Equal(t, "account", res.ValidationError().Code.Domain)
		assert.Equal(t, "emailAlreadyRegistered", res.ValidationError().Code.Name)
	})
	t.Run("validation without path", func(t *testing.T) {
		res := Parse(graphQLInput(validationPayload(t, "")), testDefault)
		assert.Equal(t, "The email address you entered is already in use.", res.Message())
		assert.Empty(t, res.FormikError())
		require.NotNil(t, res.ValidationError())
		assert.Equal(t, apperrors.ValidationErrorType, res.ValidationError().Type)
	})
	t.Run("unregistered key uses server message", func(t *testing.T) {
		msg := `{"type":"validationError","code":{"domain":"account","name":"somethingNew"},"message":"custom server text"}`
		res := Parse(graphQLInput(msg), testDefault)
		assert.Equal(t, "custom server text", res.Message())
	})
	t.Run("unregistered key without message uses default", func(t *testing.T) {
		msg := `{"type":"validationError","code":{"domain":"account","name":"somethingNew"}}`
		res := Parse(graphQLInput(msg), testDefault)
		assert.Equal(t, testDefault, res.Message())
		assert.NotNil(t, res.ValidationError())
	})
	t.Run("payload failing the schema is a plain message", func(t *testing.T) {
		for _, payload := range []string{
			`{"type":"validationError","path":"name"}`,
			`{"type":"validationError","code":{"name":"x"}}`,
			`{"type":"validationError","code":{"domain":"","name":"x"}}`,
			`{"type":"validationError","path":7,"code":{"domain":"account","name":"invalidEmail"}}`,
		} {
			res := Parse(graphQLInput(payload), testDefault)
			assert.Equal(t, payload, res.Message(), payload)
			assert.Nil(t, res.ValidationError(), payload)
			assert.Empty(t, res.FormikError(), payload)
		}
	})
	t.Run("plain message", func(t *testing.T) {
		res := Parse(graphQLInput("Not authorized", "second"), testDefault)
		assert.Equal(t, "Not authorized", res.Message())
		assert.Nil(t, res.ValidationError())
	})
	t.Run("json that is not an object", func(t *testing.T) {
		res := Parse(graphQLInput("123"), testDefault)
		assert.Equal(t, "123", res.Message())
	})
	t.Run("other payload type falls through", func(t *testing.T) {
		in := graphQLInput(`{"type":"rateLimited"}`)
		in["message"] = "outer message"
		res := Parse(in, testDefault)
		assert.Equal(t, "outer message", res.Message())
		assert.Nil(t, res.ValidationError())
	})
	t.Run("other payload type without fallback uses default", func(t *testing.T) {
		res := Parse(graphQLInput(`{"type":"rateLimited"}`), testDefault)
		assert.Equal(t, testDefault, res.Message())
	})
	t.Run("go carrier", func(t *testing.T) {
		gqlErr := liberrors.NewGraphQLErrors(validationPayload(t, "email"))
		res := Parse(errors.Wrap(gqlErr, "creating account"), testDefault)
		assert.Equal(t, "The email address you entered is already in use.", res.FormikError()["email"])
	})
}

func TestParseEVMShape(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "short message wins",
			in: map[string]any{
				"shortMessage": "User rejected the request.",
				"message":      "User rejected the request.\n\nDetails: ...\nVersion: viem@2",
				"error":        map[string]any{"message": "nested"},
			},
			want: "User rejected the request.",
		},
		{
			name: "nested error message",
			in:   map[string]any{"error": map[string]any{"message": "insufficient funds for gas * price + value"}, "message": "long"},
			want: "insufficient funds for gas * price + value",
		},
		{
			name: "doubly nested info message",
			in:   map[string]any{"info": map[string]any{"error": map[string]any{"message": "execution reverted"}}, "message": "long"},
			want: "execution reverted",
		},
		{
			name: "empty short message skipped",
			in:   map[string]any{"shortMessage": "", "error": map[string]any{"message": "nested"}},
			want: "nested",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in, testDefault).Message())
		})
	}
}

func TestParseViemError(t *testing.T) {
	t.Run("wrapped base error", func(t *testing.T) {
		viemErr := &liberrors.ViemBaseError{ShortMessage: "Execution reverted", Details: "reverted with reason"}
		res := Parse(fmt.Errorf("sending transaction: %w", viemErr), testDefault)
		assert.Equal(t, "Execution reverted", res.Message())
	})
	t.Run("details when short message is empty", func(t *testing.T) {
		viemErr := &liberrors.ViemBaseError{Details: "nonce too low"}
		res := Parse(fmt.Errorf("wrapped: %w", viemErr), testDefault)
		assert.Equal(t, "nonce too low", res.Message())
	})
}

func TestParseLedgerError(t *testing.T) {
	tests := []struct {
		name string
		in   any
		code LedgerErrorCode
	}{
		{"app not open", map[string]any{"statusCode": float64(0x6511)}, LedgerNotRunningEthApp},
		{"cla not supported", map[string]any{"statusCode": float64(0x6e00)}, LedgerNotRunningEthApp},
		{"unknown apdu", &liberrors.TransportStatusError{StatusCode: liberrors.StatusUnknownAPDU}, LedgerNotRunningEthApp},
		{"ins not supported hex string", map[string]any{"statusCode": "0x6d00"}, LedgerNotRunningEthApp},
		{"security status", map[string]any{"statusCode": float64(0x6982), "name": "TransportStatusError"}, LedgerLocked},
		{"locked device go error", fmt.Errorf("signing: %w", &liberrors.LockedDeviceError{}), LedgerLocked},
		{"locked device by name", map[string]any{"name": "LockedDeviceError", "message": "locked"}, LedgerLocked},
		{"locked device status", map[string]any{"statusCode": float64(0x5515)}, LedgerLocked},
		{"user rejected", &liberrors.TransportStatusError{StatusCode: liberrors.StatusConditionsOfUseNotSatisfied}, LedgerUserRejected},
		{"failed to open", map[string]any{"message": "Failed to open the device (HID)"}, LedgerDisconnected},
		{"user cancelled", &liberrors.TransportOpenUserCancelled{}, LedgerDisconnected},
		{"disconnected by name", map[string]any{"name": "DisconnectedDevice"}, LedgerDisconnected},
		{"blind signing", errors.Wrap(&liberrors.EthAppPleaseEnableContractData{}, "sign"), LedgerBlindSigningDisabled},
		{"unknown transport status", map[string]any{"name": "TransportStatusError", "statusCode": float64(0x6a80)}, LedgerUnknownError},
		{"unknown transport status go error", &liberrors.TransportStatusError{StatusCode: 0x6a80}, LedgerUnknownError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.in, testDefault)
			ledgerErr, ok := res.(*LedgerError)
			require.True(t, ok, "expected *LedgerError, got %T (%s)", res, res.Message())
			assert.Equal(t, tt.code, ledgerErr.Code)
			assert.Equal(t, ledgerMessages[tt.code], ledgerErr.Message())
		})
	}

	t.Run("wrong app status word", func(t *testing.T) {
		res := Parse(map[string]any{"statusCode": float64(0x6511)})
		ledgerErr, ok := res.(*LedgerError)
		require.True(t, ok)
		assert.Equal(t, LedgerNotRunningEthApp, ledgerErr.Code)
		assert.Equal(t, "Please open the correct app on your Ledger and try again", ledgerErr.Message())
	})

	t.Run("unrelated status code", func(t *testing.T) {
		res := Parse(map[string]any{"statusCode": float64(404), "message": "not found"}, testDefault)
		_, ok := res.(*LedgerError)
		assert.False(t, ok)
		assert.Equal(t, "not found", res.Message())
	})
}

func TestLedgerErrorCode(t *testing.T) {
	assert.Equal(t, "LedgerNotRunningEthApp", LedgerNotRunningEthApp.String())
	assert.Equal(t, "LedgerUnknownError", LedgerErrorCode(99).String())
	b, err := json.Marshal(map[string]any{"code": LedgerLocked})
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"LedgerLocked"}`, string(b))

	unknown := NewLedgerError(LedgerErrorCode(99))
	assert.Equal(t, LedgerUnknownError, unknown.Code)
	assert.Equal(t, "Unknown error - please reconnect your Ledger", unknown.Message())
}

func TestParseSolanaError(t *testing.T) {
	const slippage = "Transaction simulation failed: Slippage tolerance exceeded"
	const funds = "Transaction simulation failed: Insufficient funds for transaction"
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"slippage message", map[string]any{"message": "Transaction simulation failed: custom program error: 0x1771"}, slippage},
		{"insufficient funds message", map[string]any{"message": "Transaction simulation failed: Error processing Instruction 2: custom program error: 0x1"}, funds},
		{"go error message", errors.New("Transaction simulation failed: custom program error: 0x1771"), slippage},
		{"instruction error tuple", map[string]any{"InstructionError": []any{float64(4), map[string]any{"Custom": float64(6001)}}}, slippage},
		{"nested instruction error", map[string]any{"err": map[string]any{"InstructionError": []any{float64(0), map[string]any{"Custom": float64(1)}}}}, funds},
		{"instruction error go value", fmt.Errorf("confirm: %w", liberrors.NewCustomInstructionError(3, 6001)), slippage},
		{"unknown code keeps message", map[string]any{"message": "Transaction simulation failed: custom program error: 0x2"}, "Transaction simulation failed: custom program error: 0x2"},
		{"code without simulation failure", map[string]any{"message": "custom program error: 0x1771"}, "custom program error: 0x1771"},
		{"unknown custom tuple", map[string]any{"InstructionError": []any{float64(1), map[string]any{"Custom": float64(7)}}}, testDefault},
		{"custom code wider than u32", map[string]any{"InstructionError": []any{float64(0), map[string]any{"Custom": float64(1<<32 + 6001)}}}, testDefault},
		{"custom code wider than u32 as raw json", json.RawMessage(`{"InstructionError":[0,{"Custom":4294973297}]}`), testDefault},
		{"fractional custom code", map[string]any{"InstructionError": []any{float64(0), map[string]any{"Custom": 6001.5}}}, testDefault},
		{"negative custom code", map[string]any{"InstructionError": []any{float64(0), map[string]any{"Custom": float64(-6001)}}}, testDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in, testDefault).Message())
		})
	}
}

func TestRegisterProgramError(t *testing.T) {
	const code uint32 = 0x1772
	t.Cleanup(func() {
		programErrorsMu.Lock()
		delete(programErrors, code)
		programErrorsMu.Unlock()
	})
	in := map[string]any{"message": "Transaction simulation failed: custom program error: 0x1772"}
	assert.Equal(t, in["message"], Parse(in).Message())

	RegisterProgramError(code, "Pool is paused")
	assert.Equal(t, "Transaction simulation failed: Pool is paused", Parse(in).Message())
	assert.Equal(t, "Transaction simulation failed: Pool is paused",
		Parse(map[string]any{"InstructionError": []any{float64(0), map[string]any{"Custom": float64(code)}}}).Message())
}

func TestParseMessageFallback(t *testing.T) {
	assert.Equal(t, "plain", Parse(map[string]any{"message": "plain"}, testDefault).Message())
	assert.Equal(t, "go error text", Parse(errors.New("go error text"), testDefault).Message())
}

func TestParseIdempotent(t *testing.T) {
	inputs := []any{
		graphQLInput(validationPayload(t, "email")),
		map[string]any{"shortMessage": "short"},
		map[string]any{"statusCode": float64(0x6511)},
		map[string]any{"InstructionError": []any{float64(4), map[string]any{"Custom": float64(6001)}}},
		"nothing",
	}
	for i, in := range inputs {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			a := Parse(in, testDefault)
			b := Parse(in, testDefault)
			assert.NotSame(t, a, b)
			assert.Equal(t, a.Message(), b.Message())
			assert.Equal(t, a.FormikError(), b.FormikError())
		})
	}
}

func TestParserRecoversFromPanickingMatcher(t *testing.T) {
	p := NewParser()
	p.matchers = append([]namedMatcher{{
		name: "boom",
		matcher: MatcherFunc(func(*thrown.Value, string) apperrors.Error {
			panic("boom")
		}),
	}}, p.matchers...)
	assert.Equal(t, "still works", p.Parse(map[string]any{"message": "still works"}).Message())
}

func TestParserRegistryIsolation(t *testing.T) {
	reg := NewRegistryWithBuiltins()
	p := NewParser(WithRegistry(reg))
	assert.Same(t, reg, p.Registry())

	newKey := `{"type":"validationError","code":{"domain":"wallet","name":"chainUnsupported"}}`
	existing := validationPayload(t, "")

	before := p.Parse(graphQLInput(existing), testDefault).Message()
	assert.Equal(t, testDefault, p.Parse(graphQLInput(newKey), testDefault).Message())

	reg.Register("wallet:chainUnsupported", func(apperrors.ValidationError) string {
		return "This network is not supported yet."
	})
	assert.Equal(t, "This network is not supported yet.", p.Parse(graphQLInput(newKey), testDefault).Message())
	assert.Equal(t, before, p.Parse(graphQLInput(existing), testDefault).Message())

	_, ok := DefaultRegistry().Lookup("wallet:chainUnsupported")
	assert.False(t, ok)
}
