package report

import (
	"bufio"
	"fmt"
	"html/template"
	"io"
	"io/ioutil"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/flowtag/flowtag/intern"
	"github.com/flowtag/flowtag/report/templates"

	jsoniter "github.com/json-iterator/go"
)

// TagRow is one line of the tag count section.
type TagRow struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// PortProtocolRow is one line of the combination count section.
type PortProtocolRow struct {
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	Count    int    `json:"count"`
}

// Report holds the rendered rows of one tagging run, already sorted: tags
// ascending lexicographically, combinations ascending by port with ties kept
// in the order the keys were first seen.
type Report struct {
	Tags          []TagRow          `json:"tag_counts"`
	PortProtocols []PortProtocolRow `json:"port_protocol_counts"`
}

// New builds a sorted Report from the two count maps. keyOrder supplies a
// deterministic pre-sort order for the combination rows; the stable sort
// leaves same-port rows in that order.
func New(tagCounts map[string]int, portProtocolCounts map[*intern.Key]int, keyOrder []*intern.Key) *Report {
	r := &Report{}

	for tag, count := range tagCounts {
		r.Tags = append(r.Tags, TagRow{Tag: tag, Count: count})
	}
	sort.Slice(r.Tags, func(i, j int) bool {
		return r.Tags[i].Tag < r.Tags[j].Tag
	})

	for _, key := range keyOrder {
		r.PortProtocols = append(r.PortProtocols, PortProtocolRow{
			Port:     key.Port,
			Protocol: key.Protocol,
			Count:    portProtocolCounts[key],
		})
	}
	sort.SliceStable(r.PortProtocols, func(i, j int) bool {
		return r.PortProtocols[i].Port < r.PortProtocols[j].Port
	})

	return r
}

// WriteText renders the fixed two-section layout:
//
//	Tag Counts:
//	<tag>,<count>
//
//	Port/Protocol Combination Counts:
//	<port>,<protocol>,<count>
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Tag Counts:")
	for _, row := range r.Tags {
		fmt.Fprintf(bw, "%s,%d\n", row.Tag, row.Count)
	}

	fmt.Fprintln(bw, "\nPort/Protocol Combination Counts:")
	for _, row := range r.PortProtocols {
		fmt.Fprintf(bw, "%d,%s,%d\n", row.Port, row.Protocol, row.Count)
	}

	return bw.Flush()
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// WriteHTML writes a browsable report (index.html plus stylesheet) into
// outDir, creating the directory if needed, and returns the path of the
// index page.
func (r *Report) WriteHTML(outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	if err := ioutil.WriteFile(path.Join(outDir, "style.css"), templates.CSStempl, 0644); err != nil {
		return "", err
	}

	indexPath := path.Join(outDir, "index.html")
	f, err := os.Create(indexPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	out, err := template.New("report.html").Parse(templates.ReportTempl)
	if err != nil {
		return "", err
	}
	return indexPath, out.Execute(f, r)
}

// ParseText reads a report in the WriteText layout back into a Report, used
// by the show-report command to re-render saved runs.
func ParseText(rd io.Reader) (*Report, error) {
	r := &Report{}
	section := ""

	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "Tag Counts:":
			section = "tags"
			continue
		case line == "Port/Protocol Combination Counts:":
			section = "combinations"
			continue
		}

		parts := strings.Split(line, ",")
		switch section {
		case "tags":
			if len(parts) != 2 {
				return nil, fmt.Errorf("bad tag count line: %q", line)
			}
			count, err := strconv.Atoi(parts[1])
			if err != nil {
				return nil, fmt.Errorf("bad tag count line: %q: %s", line, err.Error())
			}
			r.Tags = append(r.Tags, TagRow{Tag: parts[0], Count: count})
		case "combinations":
			if len(parts) != 3 {
				return nil, fmt.Errorf("bad combination count line: %q", line)
			}
			port, err := strconv.Atoi(parts[0])
			if err != nil {
				return nil, fmt.Errorf("bad combination count line: %q: %s", line, err.Error())
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("bad combination count line: %q: %s", line, err.Error())
			}
			r.PortProtocols = append(r.PortProtocols, PortProtocolRow{Port: port, Protocol: parts[1], Count: count})
		default:
			return nil, fmt.Errorf("unexpected line before any section header: %q", line)
		}
	}
	return r, scanner.Err()
}
