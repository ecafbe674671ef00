package commands

import (
	"fmt"

	"github.com/flowtag/flowtag/config"

	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "version",
		Usage: "Show flowtag version",
		Flags: []cli.Flag{
			configFlag,
		},
		Action: showVersion,
	}

	bootstrapCommands(command)
}

func showVersion(c *cli.Context) error {
	fmt.Printf("flowtag version %s\n", config.Version)
	fmt.Print(updateCheck(c.String("config")))
	return nil
}
