package repo

import "context"

// Queryer runs raw SQL statements. Most repositories use their own
// ORM-level queries and unwrap Conn or Tx instances instead, so this
// interface is kept for statements which have no ORM counterpart.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
	Values() ([]any, error)
}
