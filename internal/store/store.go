// Package store provides the lazily-established, process-wide document store
// connection. Opening a client is expensive, so the handle is dialed once on
// first use and reused by every request for the life of the process; the
// populate step is guarded so a burst of cold-start requests shares a single
// dial attempt.
package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"

	"github.com/achievelist/achievelist/internal/errors"
)

// Domain identifier for store errors.
const domainStore = "store"

// Conn is a live client/database handle pair.
type Conn struct {
	// Client is the underlying store client, exposed for lifecycle control.
	Client *mongo.Client

	// DB is the selected database holding the application's collections.
	DB *mongo.Database
}

// Provider hands out a live connection handle.
// Repositories depend on this interface rather than dialing themselves,
// so tests can substitute a pre-built handle.
type Provider interface {
	// Get returns the cached connection, dialing on first use.
	//
	// Returns an ErrUnavailable domain error if no connection can be
	// established; the cache stays empty so a later call retries.
	Get(ctx context.Context) (*Conn, error)
}

// dialFunc opens a client connection and confirms it is reachable.
type dialFunc func(ctx context.Context, uri string) (*mongo.Client, error)

// Lazy is a connection handle with an explicit lifecycle: empty until the
// first Get, then populated until Close. It is safe for unlimited concurrent
// use once populated and safe for concurrent first use.
type Lazy struct {
	uri            string
	database       string
	connectTimeout time.Duration
	dial           dialFunc

	// group ensures the empty-to-populated transition runs at most one dial
	// at a time, with concurrent callers awaiting the same attempt.
	group singleflight.Group

	mu   sync.RWMutex
	conn *Conn
}

// NewLazy creates an unpopulated connection handle for the given target.
// No I/O happens until the first Get.
func NewLazy(uri, database string, connectTimeout time.Duration) *Lazy {
	return &Lazy{
		uri:            uri,
		database:       database,
		connectTimeout: connectTimeout,
		dial:           defaultDial,
	}
}

// Get returns the cached connection, dialing on first use.
func (l *Lazy) Get(ctx context.Context) (*Conn, error) {
	l.mu.RLock()
	conn := l.conn
	l.mu.RUnlock()
	if conn != nil {
		// Fast path: no I/O on a warm handle.
		return conn, nil
	}

	v, err, _ := l.group.Do("connect", func() (any, error) {
		// A caller that lost the race may arrive after the winner populated
		// the slot.
		l.mu.RLock()
		conn := l.conn
		l.mu.RUnlock()
		if conn != nil {
			return conn, nil
		}

		dialCtx, cancel := context.WithTimeout(ctx, l.connectTimeout)
		defer cancel()

		client, err := l.dial(dialCtx, l.uri)
		if err != nil {
			// Slot stays empty; the next Get retries.
			return nil, errors.New(domainStore, "Get", errors.ErrUnavailable, err)
		}

		conn = &Conn{
			Client: client,
			DB:     client.Database(l.database),
		}

		l.mu.Lock()
		l.conn = conn
		l.mu.Unlock()

		return conn, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Conn), nil
}

// Close tears down the active connection and resets the handle to empty.
// Intended for graceful shutdown, not per-request use.
func (l *Lazy) Close(ctx context.Context) error {
	l.mu.Lock()
	conn := l.conn
	l.conn = nil
	l.mu.Unlock()

	if conn == nil {
		return nil
	}

	if err := conn.Client.Disconnect(ctx); err != nil {
		return errors.New(domainStore, "Close", errors.ErrInternal, err)
	}
	return nil
}

// defaultDial opens a client and pings the primary to confirm reachability.
func defaultDial(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}
