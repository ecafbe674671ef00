package commands

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/flowtag/flowtag/gen"

	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "generate",
		Usage: "Generate a synthetic lookup table and flow log for testing",
		Flags: []cli.Flag{
			cli.IntFlag{
				Name:  "lookup-count, l",
				Usage: "number of lookup table rows to generate",
				Value: 10000,
			},
			cli.IntFlag{
				Name:  "flow-count, f",
				Usage: "number of flow log records to generate",
				Value: 100000,
			},
			cli.StringFlag{
				Name:  "lookup-out",
				Usage: "lookup table output `FILE`",
				Value: "lookup_table.csv",
			},
			cli.StringFlag{
				Name:  "flow-out",
				Usage: "flow log output `FILE`",
				Value: "flow_log.txt",
			},
			cli.Int64Flag{
				Name:  "seed, s",
				Usage: "random seed; 0 seeds from the clock",
			},
		},
		Action: doGenerate,
	}

	bootstrapCommands(command)
}

func doGenerate(c *cli.Context) error {
	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	lookupFile, err := os.Create(c.String("lookup-out"))
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	defer lookupFile.Close()
	if err := gen.WriteLookupTable(lookupFile, c.Int("lookup-count"), rng); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	flowFile, err := os.Create(c.String("flow-out"))
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	defer flowFile.Close()
	if err := gen.WriteFlowLog(flowFile, c.Int("flow-count"), rng); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	fmt.Printf("Wrote %d lookup rows to %s\n", c.Int("lookup-count"), c.String("lookup-out"))
	fmt.Printf("Wrote %d flow records to %s\n", c.Int("flow-count"), c.String("flow-out"))
	return nil
}
