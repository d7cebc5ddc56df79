// Package jsruntime evaluates JavaScript snippets and captures what they throw,
// so values raised by browser wallet libraries can be reproduced and classified
// from Go.
package jsruntime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dop251/goja"

	"github.com/tansive/walleterrors/internal/common/apperrors"
)

// DefaultTimeout bounds a script run when Options.Timeout is zero.
const DefaultTimeout = 500 * time.Millisecond

// Options for controlling execution
type Options struct {
	Timeout time.Duration              // max execution time
	Globals map[string]json.RawMessage // JSON values bound as global variables
}

// Result is the outcome of a script run. When Thrown is set, Value is what the
// script threw (or the reason of a rejected promise); otherwise it is the
// script's completion value.
type Result struct {
	Thrown bool
	Value  any
}

// errorProperties are read from thrown objects even when not enumerable, as is
// the case for Error instances.
var errorProperties = []string{"name", "message", "code", "shortMessage", "details", "statusCode", "statusText"}

// Eval runs script in a fresh VM. Throwing is not an error: the thrown value is
// returned in the Result. Errors are returned for scripts that fail to compile,
// time out or cannot be set up.
func Eval(ctx context.Context, script string, opts Options) (*Result, apperrors.Error) {
	prog, err := goja.Compile("eval.js", script, false)
	if err != nil {
		return nil, ErrInvalidScript.Err(err)
	}

	vm := goja.New()
	bindConsole(ctx, vm)
	for name, raw := range opts.Globals {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, ErrInvalidGlobal.Msg(fmt.Sprintf("%s: %v", name, err))
		}
		if err := vm.Set(name, v); err != nil {
			return nil, ErrInvalidGlobal.Err(err)
		}
	}

	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	done := make(chan struct{})
	var result goja.Value
	var runErr error

	go func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("panic: %v", r)
			}
			close(done)
		}()
		result, runErr = vm.RunProgram(prog)
	}()

	select {
	case <-ctx.Done():
		vm.Interrupt(ErrJSRuntimeTimeout)
		<-done
		return nil, ErrJSRuntimeTimeout
	case <-done:
	}

	if runErr != nil {
		var jsErr *goja.Exception
		if errors.As(runErr, &jsErr) {
			return &Result{Thrown: true, Value: exportValue(jsErr.Value())}, nil
		}
		return nil, ErrJSExecutionError.Err(runErr)
	}

	if p, ok := result.Export().(*goja.Promise); ok {
		switch p.State() {
		case goja.PromiseStateRejected:
			return &Result{Thrown: true, Value: exportValue(p.Result())}, nil
		case goja.PromiseStateFulfilled:
			return &Result{Value: exportValue(p.Result())}, nil
		default:
			return nil, ErrJSExecutionError.Msg("promise did not settle")
		}
	}
	return &Result{Value: exportValue(result)}, nil
}

// exportValue converts a JS value to plain Go data. Objects become maps that
// also carry the well-known error properties; functions are dropped. A
// property that points back to an enclosing object is dropped as well.
func exportValue(v goja.Value) any {
	return exportWithin(v, map[*goja.Object]struct{}{})
}

func exportWithin(v goja.Value, ancestors map[*goja.Object]struct{}) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return v.Export()
	}
	if _, isFunc := goja.AssertFunction(obj); isFunc {
		return nil
	}
	if _, seen := ancestors[obj]; seen {
		return nil
	}
	ancestors[obj] = struct{}{}
	defer delete(ancestors, obj)

	if obj.ClassName() == "Array" {
		n := int(obj.Get("length").ToInteger())
		out := make([]any, n)
		for i := 0; i < n; i++ {
			out[i] = exportWithin(obj.Get(strconv.Itoa(i)), ancestors)
		}
		return out
	}

	out := make(map[string]any)
	for _, key := range obj.Keys() {
		if ev := exportWithin(obj.Get(key), ancestors); ev != nil {
			out[key] = ev
		}
	}
	for _, key := range errorProperties {
		if _, exists := out[key]; exists {
			continue
		}
		if ev := obj.Get(key); ev != nil && !goja.IsUndefined(ev) && !goja.IsNull(ev) {
			if _, isObj := ev.(*goja.Object); !isObj {
				out[key] = ev.Export()
			}
		}
	}
	return out
}
