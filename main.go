// main is the entry point for the rigkpi CLI.
package main

import (
	"rigkpi/cmd"
	"rigkpi/internal/contract"
	"rigkpi/internal/kpistore"
)

func main() {
	err := cmd.Execute()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	kpistore.CloseStore()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
