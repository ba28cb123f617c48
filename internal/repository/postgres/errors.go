package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"sportify/internal/domain"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

func pqCode(err error) string {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return string(perr.Code)
	}
	return ""
}

// mapLookupErr turns a missing row, or an id that is not a valid uuid, into
// domain.ErrNotFound.
func mapLookupErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) || pqCode(err) == invalidTextRepresentation {
		return domain.ErrNotFound
	}
	return err
}

// mapWriteErr turns a unique violation into domain.ErrDuplicate.
func mapWriteErr(err error) error {
	if pqCode(err) == uniqueViolation {
		return domain.ErrDuplicate
	}
	return err
}

// expectOneRow returns domain.ErrNotFound when an UPDATE or DELETE matched nothing.
func expectOneRow(result sql.Result, err error) error {
	if err != nil {
		return mapLookupErr(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
