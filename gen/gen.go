// Package gen produces synthetic lookup tables and flow logs for testing
// the tagging pipeline at configurable sizes.
package gen

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
)

// commonPorts weights generated traffic toward ports that appear in the
// generated lookup table so runs produce a healthy mix of tagged and
// untagged records.
var commonPorts = []int{22, 23, 25, 53, 68, 80, 110, 143, 443, 993, 3389, 8080}

// protocolNumbers maps generated protocol numbers to the keywords written
// into the lookup table. 253 is "Use for experimentation and testing" in the
// IANA registry and deliberately has no keyword here, so a slice of
// generated records always resolves to the unknown protocol.
var protocolNumbers = []struct {
	number  int
	keyword string
}{
	{6, "tcp"},
	{17, "udp"},
	{1, "icmp"},
	{253, ""},
}

// WriteLookupTable emits a header plus n well-formed port,protocol,tag rows.
func WriteLookupTable(w io.Writer, n int, rng *rand.Rand) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "dstport,protocol,tag")
	for i := 0; i < n; i++ {
		port := commonPorts[rng.Intn(len(commonPorts))]
		if rng.Intn(4) == 0 {
			port = rng.Intn(65536)
		}
		proto := protocolNumbers[rng.Intn(3)].keyword
		fmt.Fprintf(bw, "%d,%s,sv_P%d\n", port, proto, rng.Intn(n/10+2))
	}

	return bw.Flush()
}

// WriteFlowLog emits n version 2 flow records, one per line, with the
// destination port and protocol number at their schema positions.
func WriteFlowLog(w io.Writer, n int, rng *rand.Rand) error {
	bw := bufio.NewWriter(w)

	for i := 0; i < n; i++ {
		srcPort := 1024 + rng.Intn(64512)
		dstPort := commonPorts[rng.Intn(len(commonPorts))]
		if rng.Intn(4) == 0 {
			dstPort = rng.Intn(65536)
		}
		proto := protocolNumbers[rng.Intn(len(protocolNumbers))].number
		packets := 1 + rng.Intn(100)
		bytes := packets * (40 + rng.Intn(1400))
		start := 1620000000 + rng.Intn(1000000)
		end := start + rng.Intn(300)
		action := "ACCEPT"
		if rng.Intn(10) == 0 {
			action = "REJECT"
		}

		fmt.Fprintf(bw, "2 123456789012 eni-%08x 10.0.%d.%d 198.51.100.%d %d %d %d %d %d %d %d %s OK\n",
			rng.Uint32(), rng.Intn(256), 1+rng.Intn(254), 1+rng.Intn(254),
			srcPort, dstPort, proto, packets, bytes, start, end, action)
	}

	return bw.Flush()
}
