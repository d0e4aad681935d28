// Command llamadocs serves the LlamaIndex documentation to MCP clients.
package main

import (
	"fmt"
	"os"

	"github.com/ka2n/llamadocs/cli"
	"github.com/ka2n/llamadocs/log"
	"github.com/morikuni/failure/v2"
)

func main() {
	if err := cli.Run(); err != nil {
		var userMessage string
		if fmsg := failure.MessageOf(err); fmsg != "" {
			userMessage = fmsg.String()
		} else {
			userMessage = err.Error()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", userMessage)
		log.Debug("Command failed", "error", err)
		os.Exit(1)
	}
}
