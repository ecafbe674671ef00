package intern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternSharesInstances(t *testing.T) {
	pool := NewPool()

	first := pool.Intern(80, "tcp")
	second := pool.Intern(80, "tcp")
	assert.Equal(t, first, second)
	assert.True(t, first == second, "equal combinations should share one instance")

	other := pool.Intern(80, "udp")
	assert.False(t, first == other, "different protocols should produce distinct keys")

	otherPort := pool.Intern(8080, "tcp")
	assert.False(t, first == otherPort, "different ports should produce distinct keys")

	assert.Equal(t, 3, pool.Len())
}

func TestInternKeyFields(t *testing.T) {
	pool := NewPool()
	key := pool.Intern(443, "tcp")
	assert.Equal(t, 443, key.Port)
	assert.Equal(t, "tcp", key.Protocol)
}

func TestPoolsAreIndependent(t *testing.T) {
	poolA := NewPool()
	poolB := NewPool()
	keyA := poolA.Intern(53, "udp")
	keyB := poolB.Intern(53, "udp")
	assert.Equal(t, keyA, keyB)
	assert.False(t, keyA == keyB, "separate pools must not share instances")
}

func TestInternConcurrent(t *testing.T) {
	pool := NewPool()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := 0; port < 100; port++ {
				pool.Intern(port, "tcp")
				pool.Intern(port, "udp")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, pool.Len())
	assert.True(t, pool.Intern(0, "tcp") == pool.Intern(0, "tcp"))
}
