package commands

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/flowtag/flowtag/classify"
	"github.com/flowtag/flowtag/intern"
	"github.com/flowtag/flowtag/lookup"
	"github.com/flowtag/flowtag/protocols"
	"github.com/flowtag/flowtag/report"
	"github.com/flowtag/flowtag/resources"

	log "github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/urfave/cli"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

func init() {
	command := cli.Command{
		Name:      "tag",
		Usage:     "Tag a flow log against a lookup table and count matches",
		ArgsUsage: "<lookup-table> <flow-log>",
		Flags: []cli.Flag{
			threadFlag,
			configFlag,
			humanFlag,
			cli.StringFlag{
				Name:  "output, o",
				Usage: "write the report to `FILE` instead of a timestamped file in the report directory",
			},
			cli.BoolFlag{
				Name:  "json, j",
				Usage: "write the report as JSON instead of text",
			},
			cli.BoolFlag{
				Name:  "html",
				Usage: "also write an HTML report and open it in the browser",
			},
		},
		Action: doTag,
	}

	bootstrapCommands(command)
}

// doTag runs the tagging pipeline: reference tables load fully before the
// flow log streams through, and the report renders only after the log is
// drained.
func doTag(c *cli.Context) error {
	lookupPath := c.Args().Get(0)
	flowPath := c.Args().Get(1)
	if lookupPath == "" || flowPath == "" {
		return cli.NewExitError("Specify a lookup table and a flow log", -1)
	}

	res := resources.InitResources(c.String("config"))
	start := time.Now()

	protoTable := loadProtocolTable(res)
	pool := intern.NewPool()

	lookupTable, err := lookup.LoadFile(lookupPath, pool, res.Log)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	flowFile, err := os.Open(flowPath)
	if err != nil {
		// nothing can be aggregated without the flow log
		return cli.NewExitError("Could not open flow log: "+err.Error(), -1)
	}
	defer flowFile.Close()

	agg := classify.NewAggregator(protoTable, lookupTable, pool)

	progress, bar, total := newParseBar(flowFile)
	err = agg.Process(bar.ProxyReader(flowFile), c.Int("threads"))
	bar.SetTotal(total, true)
	progress.Wait()
	if err != nil {
		return cli.NewExitError("Error reading flow log: "+err.Error(), -1)
	}
	elapsed := time.Since(start)

	res.Log.WithFields(log.Fields{
		"flow_log":     flowPath,
		"records":      agg.Records(),
		"tags":         len(agg.TagCounts()),
		"combinations": len(agg.PortProtocolCounts()),
	}).Info("Finished tagging flow log")

	rep := report.New(agg.TagCounts(), agg.PortProtocolCounts(), agg.Keys())
	outPath := writeReport(c, res, rep)

	fmt.Printf("Parsed %s in %.2f seconds\n", flowPath, elapsed.Seconds())
	if outPath != "" {
		fmt.Println("Result saved to", outPath)
	}

	if c.Bool("html") {
		htmlDir := path.Join(res.Config.S.Report.OutputDir, "html")
		indexPath, err := rep.WriteHTML(htmlDir)
		if err != nil {
			res.Log.WithFields(log.Fields{
				"error": err.Error(),
				"path":  htmlDir,
			}).Error("Error writing HTML report")
		} else {
			fmt.Println("HTML report saved to", indexPath)
			open.Run(indexPath)
		}
	}

	if c.Bool("human-readable") {
		showReportHuman(rep)
	}
	return nil
}

// loadProtocolTable prefers a configured assignments file over the builtin
// IANA table.
func loadProtocolTable(res *resources.Resources) *protocols.Table {
	if res.Config.S.Protocols.TablePath != "" {
		return protocols.LoadFile(res.Config.S.Protocols.TablePath, res.Log)
	}
	return protocols.Default()
}

// writeReport renders the report to the selected output file and returns its
// path, or "" if the write failed. Write failures are logged rather than
// fatal: the counts were already computed and the human-readable view can
// still print them.
func writeReport(c *cli.Context, res *resources.Resources, rep *report.Report) string {
	outPath := c.String("output")
	if outPath == "" {
		ext := ".log"
		if c.Bool("json") {
			ext = ".json"
		}
		millis := time.Now().UnixNano() / int64(time.Millisecond)
		outPath = path.Join(res.Config.S.Report.OutputDir, strconv.FormatInt(millis, 10)+ext)
	}

	if err := os.MkdirAll(path.Dir(outPath), 0755); err != nil {
		res.Log.WithFields(log.Fields{
			"error": err.Error(),
			"path":  outPath,
		}).Error("Error writing output")
		return ""
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		res.Log.WithFields(log.Fields{
			"error": err.Error(),
			"path":  outPath,
		}).Error("Error writing output")
		return ""
	}
	defer outFile.Close()

	if c.Bool("json") {
		err = rep.WriteJSON(outFile)
	} else {
		err = rep.WriteText(outFile)
	}
	if err != nil {
		res.Log.WithFields(log.Fields{
			"error": err.Error(),
			"path":  outPath,
		}).Error("Error writing output")
		return ""
	}
	return outPath
}

// newParseBar builds a byte-count progress bar over the flow log file. Size
// may be unknown for pipes; the bar still renders, it just can't show a
// percentage.
func newParseBar(flowFile *os.File) (*mpb.Progress, *mpb.Bar, int64) {
	var total int64
	if info, err := flowFile.Stat(); err == nil {
		total = info.Size()
	}

	p := mpb.New(mpb.WithWidth(20))
	bar := p.AddBar(total,
		mpb.PrependDecorators(
			decor.Name("\t[-] Tagging flow log:", decor.WC{W: 30, C: decor.DidentRight}),
			decor.CountersKibiByte("% .1f / % .1f", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return p, bar, total
}
