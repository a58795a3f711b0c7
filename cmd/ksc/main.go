package main

import (
	"os"

	"github.com/example/keepstack-chart/pkg/exitcodes"
	"github.com/example/keepstack-chart/pkg/log"
)

func main() {
	if err := Execute(); err != nil {
		log.Error("command failed", "error", err)
		if code, ok := exitcodes.IsExitCodeError(err); ok {
			os.Exit(code)
		}
		os.Exit(exitcodes.ExitGeneralRuntimeError)
	}
}
