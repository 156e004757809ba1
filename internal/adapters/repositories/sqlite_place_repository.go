package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
)

// SQLite-backed implementation of the PlaceRepository port.
type SqlitePlaceRepository struct{ DB *sql.DB }

func NewSqlitePlaceRepository(db *sql.DB) *SqlitePlaceRepository {
	return &SqlitePlaceRepository{DB: db}
}

// Return all places stored in the database.
func (s *SqlitePlaceRepository) ListPlaces(ctx context.Context) (_ []*domain.Point, err error) {
	defer obs.Time(ctx, "places.sqlite.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite place repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, lat, lon, kind
	FROM places
	ORDER BY name_key;
	`)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	return scanPlaces(rows, "list places")
}

func (s *SqlitePlaceRepository) FindPlace(ctx context.Context, name string) (_ *domain.Point, err error) {
	defer obs.Time(ctx, "places.sqlite.Find")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite place repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT name, lat, lon, kind
	FROM places
	WHERE name_key = ?;
	`, nameKey(name))
	return scanPlace(row, name)
}

func (s *SqlitePlaceRepository) SearchPlaces(ctx context.Context, query string, limit int) (_ []*domain.Point, err error) {
	defer obs.Time(ctx, "places.sqlite.Search")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite place repository: DB is nil")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, lat, lon, kind
	FROM places
	WHERE name_key LIKE ? ESCAPE '\'
	ORDER BY name_key
	LIMIT ?;
	`, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("search places: query places table: %w", err)
	}
	return scanPlaces(rows, "search places")
}

func (s *SqlitePlaceRepository) UpsertPlaces(ctx context.Context, places []*domain.Point) (err error) {
	defer obs.Time(ctx, "places.sqlite.Upsert")(&err)

	if s.DB == nil {
		return errors.New("sqlite place repository: DB is nil")
	}
	if len(places) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO places (name_key, name, lat, lon, kind)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("upsert places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range places {
		if err := execUpsert(ctx, stmt, p); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert places: commit tx: %w", err)
	}

	return nil
}
