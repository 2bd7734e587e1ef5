//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"kr/colors"
	"kr/internal/cmd"
	"kr/internal/context"
	"kr/internal/eval"
)

// evalCode evaluates one program in a fresh session and returns the value
// with the diagnostics rendered as HTML.
func evalCode(code string, overflow string) map[string]interface{} {
	mode, err := eval.ParseOverflowMode(overflow)
	if err != nil {
		return map[string]interface{}{
			"success":  false,
			"exitCode": cmd.ExitFailure,
			"error":    err.Error(),
		}
	}

	p := context.NewPipeline(&context.Options{Overflow: mode, Checks: true}, nil)
	v, err := p.RunSource("main.kr", code)
	output := p.Session.Diagnostics.EmitAllToHTML()

	if err != nil {
		return map[string]interface{}{
			"success":     false,
			"exitCode":    cmd.ExitCode(err),
			"diagnostics": output,
		}
	}
	return map[string]interface{}{
		"success":     true,
		"result":      fmt.Sprint(v), // int64 does not fit a JS number
		"diagnostics": output,
	}
}

// krEvalJS is the JavaScript-callable function: krEval(code, overflow?)
func krEvalJS(this js.Value, args []js.Value) interface{} {
	defer func() {
		if r := recover(); r != nil {
			js.Global().Get("console").Call("error", "panic in krEval:", fmt.Sprint(r))
		}
	}()

	if len(args) < 1 {
		return map[string]interface{}{
			"success": false,
			"error":   "Expected at least 1 argument (code string)",
		}
	}

	overflow := ""
	if len(args) > 1 {
		overflow = args[1].String()
	}
	return evalCode(args[0].String(), overflow)
}

func main() {
	colors.SetMode("always")

	js.Global().Set("krEval", js.FuncOf(krEvalJS))
	js.Global().Set("krWasmVersion", cmd.Version)
	fmt.Println("kr wasm ready")

	select {}
}
