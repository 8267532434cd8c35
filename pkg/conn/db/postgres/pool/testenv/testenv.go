package testenv

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/mentorlink/mentorlink/pkg/conn/db/postgres/pool"
	kpgschema "github.com/mentorlink/mentorlink/pkg/domain/schema/db/postgres"
)

// Name of the environment variable carrying the connection string of the
// database used by tests. Tests needing a database are skipped when unset.
const DBURIEnv = "MENTORLINK_TEST_DBURI"

type pg struct {
	pool *pgxpool.Pool
}

func (p *pg) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	t.Cleanup(func() {
		t.Helper()
		ClearTables(ctx, p.pool, t)
	})

	ClearTables(ctx, p.pool, t)
	return kpool.Wrap(p.pool)
}

// PoolBroaker is a interface to get a pool.
type PoolBroaker interface {
	// GetPool returns a pool.
	//
	// Tables are cleaned up before returning and after t.
	GetPool(ctx context.Context, t *testing.T) kpool.Pool
}

// NewPoolBroaker returns a PoolBroaker backed by the database named in
// the MENTORLINK_TEST_DBURI environment variable.
//
// The schema is ensured once per broaker. When the variable is not set,
// t is skipped.
func NewPoolBroaker(ctx context.Context, t *testing.T) PoolBroaker {
	t.Helper()

	dburi := os.Getenv(DBURIEnv)
	if dburi == "" {
		t.Skipf("set %s to run tests needing a database", DBURIEnv)
	}

	pool, err := pgxpool.Connect(ctx, dburi)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	if err := kpgschema.Ensure(ctx, kpool.Wrap(pool)); err != nil {
		t.Fatal(err)
	}

	return &pg{pool: pool}
}

func ClearTables(ctx context.Context, p *pgxpool.Pool, t *testing.T) {
	t.Helper()

	conn, err := p.Acquire(ctx)
	if err != nil {
		t.Errorf("fail to clean-up tables.: %v", err)
		return
	}
	defer conn.Release()

	for _, command := range []string{
		`truncate "user" RESTART IDENTITY cascade`,
		`truncate "mentor_assignment" RESTART IDENTITY cascade`,
		`truncate "chat_room" RESTART IDENTITY cascade`,
		// by cascade, all row in tables should be deleted.
	} {
		_, err = conn.Exec(ctx, command)
		if err != nil {
			t.Errorf("fail to clean-up tables.: %v", err)
		}
	}
}
