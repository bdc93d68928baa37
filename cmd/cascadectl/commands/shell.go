package commands

import (
	"fmt"

	"github.com/reeflective/console"
	"github.com/spf13/cobra"
)

// Shell starts the interactive cascadectl console. Unlike gobfdctl's
// hand-rolled bufio REPL, this uses reeflective/console: it owns
// readline editing, history, and completion, and asks InspectorCmd for
// the command tree on every loop iteration so command state (the
// installed run, outputFormat) is always current.
func Shell() error {
	app := console.New("cascadectl")

	menu := app.ActiveMenu()
	menu.SetCommands(func() *cobra.Command {
		return InspectorCmd()
	})

	menu.Prompt().Primary = func() string {
		return "cascadectl> "
	}

	fmt.Println("cascadectl interactive shell. Type 'help' for commands, 'exit' to quit.")

	return app.Start()
}
