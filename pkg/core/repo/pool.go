package repo

import "context"

type ConnHandler func(context.Context, Conn) error

// Pool of database connections. The Conn method acquires a connection,
// passes it to the handler, and releases it whenever handler returns.
// The Close method releases the pool resources and must be called once.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
