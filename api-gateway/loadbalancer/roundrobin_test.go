package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundRobinRotation(t *testing.T) {
	lb := NewRoundRobin([]string{"http://a:8085", "http://b:8085", "http://c:8085"})

	assert.Equal(t, "http://a:8085", lb.Next())
	assert.Equal(t, "http://b:8085", lb.Next())
	assert.Equal(t, "http://c:8085", lb.Next())
	assert.Equal(t, "http://a:8085", lb.Next())
}

func TestRoundRobinEmptyFallback(t *testing.T) {
	lb := NewRoundRobin(nil)
	require.Len(t, lb.GetServers(), 1)
	assert.NotEmpty(t, lb.Next())
}

func TestRoundRobinAddRemove(t *testing.T) {
	lb := NewRoundRobin([]string{"http://a:8085"})

	lb.AddServer("http://b:8085")
	assert.Len(t, lb.GetServers(), 2)

	lb.RemoveServer("http://a:8085")
	servers := lb.GetServers()
	require.Len(t, servers, 1)
	assert.Equal(t, "http://b:8085", servers[0])
	assert.Equal(t, "http://b:8085", lb.Next())

	// Removing an unknown server is a no-op
	lb.RemoveServer("http://nope:8085")
	assert.Len(t, lb.GetServers(), 1)
}

func TestRoundRobinStats(t *testing.T) {
	lb := NewRoundRobin([]string{"http://a:8085", "http://b:8085"})
	stats := lb.GetStats()

	assert.Equal(t, "round-robin", stats["algorithm"])
	assert.Equal(t, 2, stats["server_count"])
}
