package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/zeusync/schemaver/internal/commands"
)

func main() {
	app := kingpin.New("schemaver", "Validate versioned records and upgrade them between schema versions.")
	app.Version("0.1.0")
	app.HelpFlag.Short('h')

	cmd := commands.New(os.Stdout)
	cmd.Register(app)
	_, err := app.Parse(os.Args[1:])
	cmd.Close()
	app.FatalIfError(err, "")
}
