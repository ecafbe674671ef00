package lookup

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/flowtag/flowtag/intern"

	log "github.com/sirupsen/logrus"
)

// DefaultTag is returned for combinations with no table entry.
const DefaultTag = "Untagged"

// Table maps interned (port, protocol) keys to their assigned tags. A Table
// is populated once by Load and read only afterwards. Lookups only match
// keys interned through the same pool the table was loaded with.
type Table struct {
	pool *intern.Pool
	tags map[*intern.Key]string
}

// NewTable creates an empty Table whose keys come from the given pool.
func NewTable(pool *intern.Pool) *Table {
	return &Table{
		pool: pool,
		tags: make(map[*intern.Key]string),
	}
}

// Load reads port,protocol,tag assignments from a CSV stream. The first line
// is a header and is skipped, as are rows with fewer than three fields.
// Protocol keywords are matched case-insensitively; tags keep their case. A
// repeated combination overwrites the earlier tag. Unlike the protocol
// number loader, a non-numeric port is a hard error: the lookup table is
// user-maintained and a bad port there means the whole table is suspect.
func (t *Table) Load(scanner *bufio.Scanner) error {
	header := true
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if header {
			header = false
			continue
		}
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) < 3 {
			continue
		}
		port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return fmt.Errorf("lookup table line %d: bad port %q: %s", lineNum, parts[0], err.Error())
		}
		protocol := strings.ToLower(strings.TrimSpace(parts[1]))
		key := t.pool.Intern(port, protocol)
		t.tags[key] = strings.TrimSpace(parts[2])
	}
	return scanner.Err()
}

// Lookup resolves a key to its tag, or DefaultTag if the combination has no
// entry.
func (t *Table) Lookup(key *intern.Key) string {
	if tag, ok := t.tags[key]; ok {
		return tag
	}
	return DefaultTag
}

// Len returns the number of loaded assignments.
func (t *Table) Len() int {
	return len(t.tags)
}

// LoadFile builds a Table from a lookup table file. An unreadable file is
// logged and yields an empty table, matching the protocol loader; a parse
// failure inside the file is returned as an error.
func LoadFile(path string, pool *intern.Pool, logger *log.Logger) (*Table, error) {
	table := NewTable(pool)

	file, err := os.Open(path)
	if err != nil {
		logger.WithFields(log.Fields{
			"error": err.Error(),
			"path":  path,
		}).Error("Error reading lookup table, continuing with an empty table")
		return table, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return table, table.Load(scanner)
}
