//go:build !(js && wasm)

package main

import (
	"os"

	"kr/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
