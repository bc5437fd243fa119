package main

import (
	"fmt"
	"os"

	"github.com/printdesk/printdesk/cmd/printdesk/commands"
)

func main() {
	if err := commands.Execute(commands.NewRootCommand()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
