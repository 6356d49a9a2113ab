package db

import (
	"github.com/cockroachdb/errors"
	"github.com/ukydev/prevmaint/internal/apperr"
)

func notFound(kind, id string) error {
	return errors.Mark(errors.Newf("%s %s not found", kind, id), apperr.ErrNotFound)
}
