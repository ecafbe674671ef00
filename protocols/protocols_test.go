package protocols

import (
	"bufio"
	"io/ioutil"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func loadFromString(data string) *Table {
	table := NewTable()
	table.Load(bufio.NewScanner(strings.NewReader(data)))
	return table
}

func TestLoadSkipsHeader(t *testing.T) {
	table := loadFromString("Decimal,Keyword\n6,TCP\n")
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "tcp", table.Lookup("6"))
}

func TestLoadNormalizesKeywords(t *testing.T) {
	table := loadFromString("Decimal,Keyword\n6, TCP \n17,Udp\n")
	assert.Equal(t, "tcp", table.Lookup("6"))
	assert.Equal(t, "udp", table.Lookup("17"))
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	type testCase struct {
		row string
		msg string
	}
	testCases := []testCase{
		{"146-252", "rows without two fields should be skipped"},
		{"146-252,Unassigned", "non-numeric numbers should be skipped"},
		{"61,", "rows with an empty keyword should be skipped"},
		{"6a,TCP", "mixed alphanumeric numbers should be skipped"},
		{",TCP", "rows with an empty number should be skipped"},
	}

	for _, test := range testCases {
		table := loadFromString("Decimal,Keyword\n" + test.row + "\n")
		assert.Equal(t, 0, table.Len(), test.msg)
	}
}

func TestLoadLastWriteWins(t *testing.T) {
	table := loadFromString("Decimal,Keyword\n6,TCP\n6,TCP-NEW\n")
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "tcp-new", table.Lookup("6"))
}

func TestLoadIgnoresExtraColumns(t *testing.T) {
	table := loadFromString("Decimal,Keyword,Protocol,Reference\n6,TCP,Transmission Control,[RFC9293]\n")
	assert.Equal(t, "tcp", table.Lookup("6"))
}

func TestLookupMissResolvesToUnknown(t *testing.T) {
	table := loadFromString("Decimal,Keyword\n6,TCP\n")
	assert.Equal(t, UnknownKeyword, table.Lookup("999"))
	assert.Equal(t, UnknownKeyword, NewTable().Lookup("6"))
}

func TestLoadFileMissingFileYieldsEmptyTable(t *testing.T) {
	logger := log.New()
	logger.Out = ioutil.Discard

	table := LoadFile("./.does-not-exist-8234u", logger)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, UnknownKeyword, table.Lookup("6"))
}

func TestDefaultTable(t *testing.T) {
	table := Default()
	assert.Equal(t, "tcp", table.Lookup("6"))
	assert.Equal(t, "udp", table.Lookup("17"))
	assert.Equal(t, "icmp", table.Lookup("1"))
	assert.Equal(t, UnknownKeyword, table.Lookup("61"), "blank registry rows should not be loaded")
	assert.True(t, table.Len() > 100)
}
