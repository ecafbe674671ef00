package main

import (
	"os"
	"runtime"

	"github.com/flowtag/flowtag/commands"
	"github.com/flowtag/flowtag/config"

	"github.com/urfave/cli"
)

// Entry point of flowtag
func main() {
	app := cli.NewApp()
	app.Name = "flowtag"
	app.Usage = "Tag flow log traffic by port and protocol."

	app.Version = config.Version

	// Define commands used with this application
	app.Commands = commands.Commands()

	runtime.GOMAXPROCS(runtime.NumCPU())
	app.Run(os.Args)
}
