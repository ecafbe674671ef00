package commands

import (
	"github.com/urfave/cli"
)

var (
	// allCommands holds the commands registered by each command file's init
	allCommands []cli.Command

	// below are prebuilt flags shared between commands

	// configFlag allows users to specify an alternate config file to use
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "Use a given `CONFIG_FILE` when running this command",
		Value: "",
	}

	// humanFlag prints results in a human readable format
	humanFlag = cli.BoolFlag{
		Name:  "human-readable, H",
		Usage: "print a human readable table",
	}

	// threadFlag sets the number of parse workers
	threadFlag = cli.IntFlag{
		Name:  "threads, t",
		Usage: "use `N` worker threads when parsing the flow log",
		Value: 1,
	}
)

// bootstrapCommands adds a given command to the allCommands slice
func bootstrapCommands(commands ...cli.Command) {
	allCommands = append(allCommands, commands...)
}

// Commands provides all of the defined commands to the front end
func Commands() []cli.Command {
	return allCommands
}
