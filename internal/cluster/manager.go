package cluster

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dxwatch/dxwatch/internal/bandplan"
	"github.com/dxwatch/dxwatch/internal/cache"
	"github.com/dxwatch/dxwatch/internal/logger"
	"github.com/dxwatch/dxwatch/internal/metrics"
	"github.com/dxwatch/dxwatch/internal/spot"
)

// Options configures the cluster session.
type Options struct {
	Host           string
	Port           int
	Callsign       string
	Region         bandplan.Region
	ConnectTimeout time.Duration // bound on a single dial attempt
	IdleTimeout    time.Duration // silence threshold before the peer is presumed dead
	BackoffBase    time.Duration // first reconnect delay, doubles per consecutive failure
	BackoffMax     time.Duration // cap on the reconnect delay
}

func (o *Options) applyDefaults() {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = 10 * time.Second
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = 120 * time.Second
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = 2 * time.Second
	}
	if o.BackoffMax < o.BackoffBase {
		o.BackoffMax = 60 * time.Second
	}
}

// Validate checks the fields that have no usable default.
func (o Options) Validate() error {
	if o.Host == "" {
		return errors.New("cluster: host must not be empty")
	}
	if o.Port < 1 || o.Port > 65535 {
		return fmt.Errorf("cluster: invalid port %d", o.Port)
	}
	if o.Callsign == "" {
		return errors.New("cluster: callsign must not be empty")
	}
	if !o.Region.Valid() {
		return fmt.Errorf("cluster: invalid IARU region %d", int(o.Region))
	}
	return nil
}

// Snapshot is the read-only view of the manager handed to the status
// reporter. All counters are totals since the last successful connect
// (Reconnects) or process start (ParseFailures, SpotsIngested).
type Snapshot struct {
	State         State
	Host          string
	Port          int
	Callsign      string
	Region        bandplan.Region
	Reconnects    uint64
	ParseFailures uint64
	SpotsIngested uint64
}

// Manager owns the telnet session with the DX cluster: it dials, logs
// in with the configured callsign, feeds every received line through
// the parser into the cache, and reconnects with capped exponential
// backoff for as long as it is running. A single goroutine drives the
// whole lifecycle; it is the only writer to the cache and the only
// mutator of the connection state.
type Manager struct {
	opts  Options
	cache *cache.SpotCache
	log   logger.Logger

	mu         sync.Mutex
	state      State
	conn       net.Conn
	reconnects uint64
	parseFails uint64
	ingested   uint64

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// New creates a manager. Opts must pass Validate; zero timeouts take
// the defaults (10s connect, 120s idle, 2s..60s backoff).
func New(opts Options, c *cache.SpotCache, log logger.Logger) (*Manager, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	return &Manager{
		opts:   opts,
		cache:  c,
		log:    log,
		state:  Disconnected,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Start launches the connection loop in the background. The loop runs
// until Stop is called or ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go m.run(ctx)
}

// Stop requests shutdown: the live socket (if any) is closed, a pending
// backoff wait is interrupted immediately, and no further reconnection
// attempts are made. Stop returns once the loop has exited. Safe to
// call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.closeConn()
	})
	<-m.done
}

// Snapshot returns the current connection state and counters.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		State:         m.state,
		Host:          m.opts.Host,
		Port:          m.opts.Port,
		Callsign:      m.opts.Callsign,
		Region:        m.opts.Region,
		Reconnects:    m.reconnects,
		ParseFailures: m.parseFails,
		SpotsIngested: m.ingested,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) run(ctx context.Context) {
	defer close(m.done)
	defer m.setState(Stopped)

	addr := net.JoinHostPort(m.opts.Host, strconv.Itoa(m.opts.Port))
	backoff := m.opts.BackoffBase

	for {
		if m.stopping(ctx) {
			return
		}

		m.setState(Connecting)
		conn, err := m.dial(ctx, addr)
		if err != nil {
			m.log.Warn("cluster connect failed",
				logger.String("addr", addr),
				logger.Error(err))
			if !m.backoffWait(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, m.opts.BackoffMax)
			continue
		}

		m.setConn(conn)
		m.setState(LoggingIn)

		if err := m.login(conn); err != nil {
			m.log.Warn("cluster login failed", logger.Error(err))
			m.closeConn()
			if !m.backoffWait(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, m.opts.BackoffMax)
			continue
		}

		// Cluster banners vary too much to be a reliable login
		// acknowledgement, so the session counts as established as
		// soon as the callsign has been sent.
		m.setState(Connected)
		m.resetReconnects()
		backoff = m.opts.BackoffBase
		metrics.Connected.Set(1)
		m.log.Info("connected to cluster",
			logger.String("addr", addr),
			logger.String("callsign", m.opts.Callsign))

		err = m.readLoop(ctx, conn)
		m.closeConn()
		metrics.Connected.Set(0)

		if m.stopping(ctx) {
			return
		}

		m.log.Warn("cluster session lost", logger.Error(err))
		if !m.backoffWait(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff, m.opts.BackoffMax)
	}
}

func (m *Manager) dial(ctx context.Context, addr string) (net.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, m.opts.ConnectTimeout)
	defer cancel()

	var d net.Dialer
	return d.DialContext(dialCtx, "tcp", addr)
}

// login sends the callsign line the cluster uses to route its feed.
func (m *Manager) login(conn net.Conn) error {
	if err := conn.SetWriteDeadline(time.Now().Add(m.opts.ConnectTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := fmt.Fprintf(conn, "%s\n", m.opts.Callsign); err != nil {
		return fmt.Errorf("send callsign: %w", err)
	}
	return conn.SetWriteDeadline(time.Time{})
}

// readLoop consumes lines until the connection dies or shutdown is
// requested. Every read carries the idle deadline: a connected but
// silent peer surfaces as a timeout error rather than blocking forever.
func (m *Manager) readLoop(ctx context.Context, conn net.Conn) error {
	reader := bufio.NewReader(conn)
	for {
		select {
		case <-m.stopCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(m.opts.IdleTimeout)); err != nil {
			return err
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}

		m.ingest(strings.TrimRight(line, "\r\n"))
	}
}

// ingest parses one line and appends on success. Parse failures are
// counted and dropped; the feed carries plenty of non-spot traffic.
func (m *Manager) ingest(line string) {
	if line == "" {
		return
	}

	s, err := spot.Parse(line, m.opts.Region)
	if err != nil {
		var perr *spot.ParseError
		reason := "unknown"
		if errors.As(err, &perr) {
			reason = string(perr.Reason)
		}
		m.mu.Lock()
		m.parseFails++
		m.mu.Unlock()
		metrics.ParseFailures.WithLabelValues(reason).Inc()
		return
	}

	m.cache.Append(s)
	m.mu.Lock()
	m.ingested++
	m.mu.Unlock()
	metrics.SpotsIngested.Inc()
	metrics.CacheSize.Set(float64(m.cache.Len()))
}

// backoffWait sleeps for the jittered delay, counts the attempt, and
// reports false when shutdown interrupted the wait.
func (m *Manager) backoffWait(ctx context.Context, d time.Duration) bool {
	m.setState(Reconnecting)
	m.mu.Lock()
	m.reconnects++
	attempt := m.reconnects
	m.mu.Unlock()
	metrics.Reconnects.Inc()

	wait := jitter(d)
	m.log.Info("reconnecting to cluster",
		logger.Uint64("attempt", attempt),
		logger.Duration("wait", wait))

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-m.stopCh:
		return false
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (m *Manager) stopping(ctx context.Context) bool {
	select {
	case <-m.stopCh:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) resetReconnects() {
	m.mu.Lock()
	m.reconnects = 0
	m.mu.Unlock()
}

func (m *Manager) setConn(conn net.Conn) {
	m.mu.Lock()
	m.conn = conn
	m.mu.Unlock()
}

// closeConn closes the live socket at most once per connection.
func (m *Manager) closeConn() {
	m.mu.Lock()
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

// nextBackoff doubles the delay up to the cap.
func nextBackoff(current, maxWait time.Duration) time.Duration {
	next := current * 2
	if next > maxWait {
		next = maxWait
	}
	return next
}

// jitter spreads the delay over [d/2, d) so restarting fleets do not
// hammer the cluster in lockstep.
func jitter(d time.Duration) time.Duration {
	if d <= 1 {
		return d
	}
	half := d / 2
	return half + rand.N(half)
}
