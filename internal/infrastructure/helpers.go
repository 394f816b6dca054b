package infrastructure

import (
	"errors"

	appErrors "Demonstra/internal/errors"
	"Demonstra/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// lookupError traduz a falha de uma busca por id: ausência vira notFound, o resto erro de banco.
func lookupError(err error, notFound *appErrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound.WithError(err)
	}
	return appErrors.NewDatabaseError(err)
}

func parseID(s string) (ulid.ULID, error) {
	id, err := pkg.ParseULID(s)
	if err != nil {
		return ulid.ULID{}, appErrors.ErrInternalServer.WithError(err)
	}
	return id, nil
}

func parseOptionalID(s *string) (*ulid.ULID, error) {
	id, err := pkg.MustParseULIDPtr(s)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return id, nil
}

func parseIDs(values []string) ([]ulid.ULID, error) {
	ids, err := pkg.ParseULIDs(values)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return ids, nil
}

func convertAll[DB any, Domain any](rows []DB, converter func(*DB) (*Domain, error)) ([]*Domain, error) {
	out := make([]*Domain, 0, len(rows))
	for i := range rows {
		item, err := converter(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
