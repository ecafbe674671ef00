package commands

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/flowtag/flowtag/report"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{

		Name:      "show-report",
		Usage:     "Print a saved tagging report",
		ArgsUsage: "<report-file>",
		Flags: []cli.Flag{
			humanFlag,
		},
		Action: func(c *cli.Context) error {
			reportPath := c.Args().Get(0)
			if reportPath == "" {
				return cli.NewExitError("Specify a report file", -1)
			}

			f, err := os.Open(reportPath)
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			defer f.Close()

			rep, err := report.ParseText(f)
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}

			if len(rep.Tags) == 0 && len(rep.PortProtocols) == 0 {
				return cli.NewExitError("No results were found in "+reportPath, -1)
			}

			if c.Bool("human-readable") {
				showReportHuman(rep)
				return nil
			}
			err = showReport(rep)
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}
	bootstrapCommands(command)
}

func showReport(rep *report.Report) error {
	csvWriter := csv.NewWriter(os.Stdout)

	csvWriter.Write([]string{"Tag", "Count"})
	for _, row := range rep.Tags {
		csvWriter.Write([]string{row.Tag, strconv.Itoa(row.Count)})
	}

	csvWriter.Write([]string{"Port", "Protocol", "Count"})
	for _, row := range rep.PortProtocols {
		csvWriter.Write([]string{strconv.Itoa(row.Port), row.Protocol, strconv.Itoa(row.Count)})
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// showReportHuman prints both report sections as tables
func showReportHuman(rep *report.Report) {
	tagTable := tablewriter.NewWriter(os.Stdout)
	tagTable.SetHeader([]string{"Tag", "Count"})
	for _, row := range rep.Tags {
		tagTable.Append([]string{row.Tag, strconv.Itoa(row.Count)})
	}
	tagTable.Render()

	comboTable := tablewriter.NewWriter(os.Stdout)
	comboTable.SetHeader([]string{"Port", "Protocol", "Count"})
	for _, row := range rep.PortProtocols {
		comboTable.Append([]string{strconv.Itoa(row.Port), row.Protocol, strconv.Itoa(row.Count)})
	}
	comboTable.Render()
}
