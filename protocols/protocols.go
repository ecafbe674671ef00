package protocols

import (
	"bufio"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// UnknownKeyword is returned for protocol numbers with no table entry.
const UnknownKeyword = "unknown"

// Table maps IANA protocol numbers (as decimal strings) to lowercase keyword
// names. A Table is populated once by Load and read only afterwards.
type Table struct {
	keywords map[string]string
}

// NewTable creates an empty Table. All lookups against an empty table
// resolve to UnknownKeyword.
func NewTable() *Table {
	return &Table{
		keywords: make(map[string]string),
	}
}

// Load reads protocol assignments from a CSV stream. The first line is a
// header and is skipped. Rows must have at least two fields, an all-digit
// number and a non-empty keyword; rows that don't are dropped without
// comment since the IANA registry mixes ranges, reservations, and blank
// keywords into the same file. A repeated number overwrites the earlier
// keyword.
func (t *Table) Load(scanner *bufio.Scanner) {
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) >= 2 && isDigits(parts[0]) && parts[1] != "" {
			keyword := strings.ToLower(strings.TrimSpace(parts[1]))
			t.keywords[strings.TrimSpace(parts[0])] = keyword
		}
	}
}

// Lookup resolves a protocol number to its keyword, or UnknownKeyword if the
// number has no entry.
func (t *Table) Lookup(number string) string {
	if keyword, ok := t.keywords[number]; ok {
		return keyword
	}
	return UnknownKeyword
}

// Len returns the number of loaded assignments.
func (t *Table) Len() int {
	return len(t.keywords)
}

// LoadFile builds a Table from a protocol assignments file. An unreadable
// file is logged and yields an empty table rather than an error: the
// pipeline still runs, every protocol just resolves to UnknownKeyword.
func LoadFile(path string, logger *log.Logger) *Table {
	table := NewTable()

	file, err := os.Open(path)
	if err != nil {
		logger.WithFields(log.Fields{
			"error": err.Error(),
			"path":  path,
		}).Error("Error reading protocol numbers, continuing with an empty table")
		return table
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	table.Load(scanner)
	return table
}

// Default builds a Table from the builtin copy of the IANA assigned internet
// protocol numbers.
func Default() *Table {
	table := NewTable()
	table.Load(bufio.NewScanner(strings.NewReader(ianaProtocolNumbers)))
	return table
}

// isDigits reports whether s is non-empty and composed entirely of ASCII
// digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
