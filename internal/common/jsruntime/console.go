package jsruntime

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// bindConsole routes console.log, console.warn and console.error to the
// context logger.
func bindConsole(ctx context.Context, vm *goja.Runtime) {
	console := vm.NewObject()
	_ = console.Set("log", consoleFunc(ctx, zerolog.InfoLevel))
	_ = console.Set("warn", consoleFunc(ctx, zerolog.WarnLevel))
	_ = console.Set("error", consoleFunc(ctx, zerolog.ErrorLevel))
	_ = vm.Set("console", console)
}

func consoleFunc(ctx context.Context, level zerolog.Level) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		args := make([]any, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.Export()
		}
		log.Ctx(ctx).WithLevel(level).Str("source", "js").Msg(fmt.Sprintf("%v", args))
		return goja.Undefined()
	}
}
