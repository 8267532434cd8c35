package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	domerr "github.com/mentorlink/mentorlink/pkg/domain/errors"
)

// requested data is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domerr.ErrMissing
}

// IsUniqueViolation tells whether err is a postgres unique-constraint
// violation, i.e. a concurrent writer already inserted the row.
//
// Provisioning code treats this as "already exists: fetch and return",
// never as a hard failure.
func IsUniqueViolation(err error) bool {
	pgerr := new(pgconn.PgError)
	return errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation
}
