package classify

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/flowtag/flowtag/intern"
	"github.com/flowtag/flowtag/lookup"
	"github.com/flowtag/flowtag/protocols"
	"github.com/flowtag/flowtag/util"

	"github.com/pbnjay/memory"
)

// Flow log fields follow the version 2 schema: the destination port and the
// protocol number sit at fixed positions in each whitespace-delimited record.
const (
	minFields     = 8
	dstPortField  = 6
	protocolField = 7

	batchSize = 4096
)

// Aggregator streams flow log records and accumulates two counts: how many
// records resolved to each tag, and how many carried each distinct
// (port, protocol) combination. Reference tables are read only during
// processing; the count maps grow monotonically until read for reporting.
type Aggregator struct {
	protocols *protocols.Table
	lookup    *lookup.Table
	pool      *intern.Pool

	tagCounts          map[string]int
	portProtocolCounts map[*intern.Key]int
	keyOrder           []*intern.Key
	records            int
}

// partial holds one worker's private counts so that workers never contend on
// the shared maps. Partials are merged after the log has been drained.
type partial struct {
	tagCounts          map[string]int
	portProtocolCounts map[*intern.Key]int
	keyOrder           []*intern.Key
	records            int
}

func newPartial() *partial {
	return &partial{
		tagCounts:          make(map[string]int),
		portProtocolCounts: make(map[*intern.Key]int),
	}
}

// NewAggregator creates an Aggregator over the given reference tables. The
// pool must be the same one the lookup table was loaded with, otherwise no
// record will ever match a tag.
func NewAggregator(protoTable *protocols.Table, lookupTable *lookup.Table, pool *intern.Pool) *Aggregator {
	return &Aggregator{
		protocols:          protoTable,
		lookup:             lookupTable,
		pool:               pool,
		tagCounts:          make(map[string]int),
		portProtocolCounts: make(map[*intern.Key]int),
	}
}

// classify derives the interned key and tag for one record. Malformed
// records (fewer than 8 fields or a non-numeric destination port) return
// ok=false and are deliberately not logged: skipping them silently is part
// of the expected counting behavior, not an error path.
func (a *Aggregator) classify(line string) (key *intern.Key, tag string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return nil, "", false
	}
	dstPort, err := strconv.Atoi(fields[dstPortField])
	if err != nil {
		return nil, "", false
	}

	keyword := a.protocols.Lookup(fields[protocolField])
	key = a.pool.Intern(dstPort, keyword)
	return key, a.lookup.Lookup(key), true
}

func (p *partial) count(key *intern.Key, tag string) {
	if _, seen := p.portProtocolCounts[key]; !seen {
		p.keyOrder = append(p.keyOrder, key)
	}
	p.portProtocolCounts[key]++
	p.tagCounts[tag]++
	p.records++
}

func (a *Aggregator) merge(p *partial) {
	for tag, count := range p.tagCounts {
		a.tagCounts[tag] += count
	}
	for _, key := range p.keyOrder {
		if _, seen := a.portProtocolCounts[key]; !seen {
			a.keyOrder = append(a.keyOrder, key)
		}
		a.portProtocolCounts[key] += p.portProtocolCounts[key]
	}
	a.records += p.records
}

// Process consumes the flow log stream line by line. With threads <= 1 the
// stream is processed inline, preserving first-seen key order exactly.
// Larger values fan batches of lines out to a worker pool; each worker keeps
// private partial counts which are merged once the stream is drained, so the
// final counts are identical either way.
func (a *Aggregator) Process(r io.Reader, threads int) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if threads <= 1 {
		p := newPartial()
		for scanner.Scan() {
			if key, tag, ok := a.classify(scanner.Text()); ok {
				p.count(key, tag)
			}
		}
		a.merge(p)
		return scanner.Err()
	}

	batches := make(chan []string, batchDepth())
	partials := make([]*partial, threads)

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		p := newPartial()
		partials[i] = p
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batches {
				for _, line := range batch {
					if key, tag, ok := a.classify(line); ok {
						p.count(key, tag)
					}
				}
			}
		}()
	}

	batch := make([]string, 0, batchSize)
	for scanner.Scan() {
		batch = append(batch, scanner.Text())
		if len(batch) == batchSize {
			batches <- batch
			batch = make([]string, 0, batchSize)
		}
	}
	if len(batch) > 0 {
		batches <- batch
	}
	close(batches)
	wg.Wait()

	for _, p := range partials {
		a.merge(p)
	}
	return scanner.Err()
}

// batchDepth bounds the number of in-flight line batches by available
// memory so that a log read off fast storage cannot out-pace slow workers
// into an unbounded buffer.
func batchDepth() int {
	return util.Max(4, util.Min(64, int(memory.TotalMemory()/(1<<30))))
}

// TagCounts returns the per-tag record counts.
func (a *Aggregator) TagCounts() map[string]int {
	return a.tagCounts
}

// PortProtocolCounts returns the per-combination record counts.
func (a *Aggregator) PortProtocolCounts() map[*intern.Key]int {
	return a.portProtocolCounts
}

// Keys returns the distinct combinations in first-seen order. Reporting
// sorts these stably by port, so single-threaded runs produce byte-identical
// reports for identical input order.
func (a *Aggregator) Keys() []*intern.Key {
	return a.keyOrder
}

// Records returns the number of well-formed records processed.
func (a *Aggregator) Records() int {
	return a.records
}
