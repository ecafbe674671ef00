package lookup

import (
	"bufio"
	"strings"
	"testing"

	"github.com/flowtag/flowtag/intern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromString(t *testing.T, pool *intern.Pool, data string) *Table {
	table := NewTable(pool)
	err := table.Load(bufio.NewScanner(strings.NewReader(data)))
	require.Nil(t, err)
	return table
}

func TestLoadAssignsTags(t *testing.T) {
	pool := intern.NewPool()
	table := loadFromString(t, pool, "dstport,protocol,tag\n23,tcp,sv_P1\n68,udp,sv_P2\n")

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "sv_P1", table.Lookup(pool.Intern(23, "tcp")))
	assert.Equal(t, "sv_P2", table.Lookup(pool.Intern(68, "udp")))
}

func TestLoadNormalizesProtocolCase(t *testing.T) {
	pool := intern.NewPool()
	table := loadFromString(t, pool, "dstport,protocol,tag\n443,TCP,sv_P2\n")
	assert.Equal(t, "sv_P2", table.Lookup(pool.Intern(443, "tcp")))
}

func TestLoadTrimsTagButKeepsCase(t *testing.T) {
	pool := intern.NewPool()
	table := loadFromString(t, pool, "dstport,protocol,tag\n25,tcp, Email \n")
	assert.Equal(t, "Email", table.Lookup(pool.Intern(25, "tcp")))
}

func TestLoadSkipsShortRows(t *testing.T) {
	pool := intern.NewPool()
	table := loadFromString(t, pool, "dstport,protocol,tag\n23,tcp\n\n80\n")
	assert.Equal(t, 0, table.Len())
}

func TestLoadLastWriteWins(t *testing.T) {
	pool := intern.NewPool()
	table := loadFromString(t, pool, "dstport,protocol,tag\n23,tcp,sv_P1\n23,TCP,sv_P4\n")
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "sv_P4", table.Lookup(pool.Intern(23, "tcp")))
}

func TestLoadBadPortIsAHardError(t *testing.T) {
	pool := intern.NewPool()
	table := NewTable(pool)
	err := table.Load(bufio.NewScanner(strings.NewReader("dstport,protocol,tag\ntelnet,tcp,sv_P1\n")))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "telnet")
}

func TestLookupMissResolvesToDefaultTag(t *testing.T) {
	pool := intern.NewPool()
	table := loadFromString(t, pool, "dstport,protocol,tag\n23,tcp,sv_P1\n")
	assert.Equal(t, DefaultTag, table.Lookup(pool.Intern(23, "udp")))
	assert.Equal(t, DefaultTag, NewTable(pool).Lookup(pool.Intern(23, "tcp")))
}

func TestLoadSharesInternedKeys(t *testing.T) {
	pool := intern.NewPool()
	preloaded := pool.Intern(23, "tcp")
	table := loadFromString(t, pool, "dstport,protocol,tag\n23,tcp,sv_P1\n")

	// the table must resolve keys interned before and after the load
	assert.Equal(t, "sv_P1", table.Lookup(preloaded))
	assert.Equal(t, 1, pool.Len())
}
