package repo

import "context"

type TxHandler func(context.Context, Tx) error

// Conn is a single database connection. Its Tx method begins a new
// transaction and commits it if handler returns nil, otherwise, it
// rolls the transaction back and returns the handler error.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn prevents a Tx to be mistakenly taken as a Conn.
	IsConn()
}
