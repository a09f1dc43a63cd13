package main

import (
	"fmt"
	"os"
)

func main() {
	rt := &cliRuntime{}
	rootCmd := SetupCommands(rt)

	err := rootCmd.Execute()
	rt.closeAndLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
