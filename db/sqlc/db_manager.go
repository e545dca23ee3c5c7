package sqlc

import (
	"context"
	"time"
)

// Upper bound for a single audit query.
const QuerierCtxTimeout = time.Second * 10

// DbManager groups the stores built on one connection.
type DbManager struct {
	Audit   *AuditManager
	queries *Queries
}

func NewDbManager(db DBTX) DbManager {
	queries := New(db)
	return DbManager{
		Audit:   NewAuditManager(queries),
		queries: queries,
	}
}

// Queries exposes the raw queries for callers that need a transaction.
func (dm DbManager) Queries() *Queries {
	return dm.queries
}

func withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, QuerierCtxTimeout)
}
