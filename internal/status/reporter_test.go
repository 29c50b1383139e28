package status

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxwatch/dxwatch/internal/bandplan"
	"github.com/dxwatch/dxwatch/internal/cache"
	"github.com/dxwatch/dxwatch/internal/cluster"
	"github.com/dxwatch/dxwatch/internal/logger"
	"github.com/dxwatch/dxwatch/internal/spot"
)

func TestSnapshotBeforeStart(t *testing.T) {
	spotCache := cache.New(10)
	m, err := cluster.New(cluster.Options{
		Host:     "cluster.example.net",
		Port:     7300,
		Callsign: "N0CALL",
		Region:   bandplan.Region1,
	}, spotCache, logger.Nop())
	require.NoError(t, err)

	spotCache.Append(spot.Spot{DXCall: "JA1XXX", Band: "20m"})
	spotCache.Append(spot.Spot{DXCall: "OH2BH", Band: "40m"})

	got := New(m, spotCache).Snapshot()

	assert.False(t, got.Connected)
	assert.Equal(t, "disconnected", got.State)
	assert.Equal(t, "cluster.example.net", got.Host)
	assert.Equal(t, 7300, got.Port)
	assert.Equal(t, "N0CALL", got.Callsign)
	assert.Equal(t, 1, got.IARURegion)
	assert.Equal(t, 2, got.CachedSpots)
}

func TestSnapshotTracksConnectivity(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				_, _ = bufio.NewReader(c).ReadString(0)
				c.Close()
			}(conn)
		}
	}()

	_, portStr, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	spotCache := cache.New(10)
	m, err := cluster.New(cluster.Options{
		Host:        "127.0.0.1",
		Port:        port,
		Callsign:    "N0CALL",
		Region:      bandplan.Region2,
		BackoffBase: 20 * time.Millisecond,
	}, spotCache, logger.Nop())
	require.NoError(t, err)

	reporter := New(m, spotCache)
	assert.False(t, reporter.Snapshot().Connected)

	m.Start(context.Background())

	require.Eventually(t, func() bool {
		return reporter.Snapshot().Connected
	}, 3*time.Second, 10*time.Millisecond, "never reported connected")

	m.Stop()
	got := reporter.Snapshot()
	assert.False(t, got.Connected)
	assert.Equal(t, "stopped", got.State)
}
