package postgres

import (
	"context"
	_ "embed"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
)

//go:embed schema.sql
var schema string

// Ensure creates the advisory tables and their uniqueness constraints
// if they do not exist yet. Idempotent; safe to run on every startup.
//
// The partial unique indexes here are load-bearing: room provisioning
// and assignment writes rely on them to stay race-free (insert,
// on-conflict fetch-existing).
func Ensure(ctx context.Context, pool kpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	// no bind parameters: pgx sends this as a simple query,
	// so the whole multi-statement script runs in one round trip.
	if _, err := conn.Exec(ctx, schema); err != nil {
		return err
	}
	return nil
}
