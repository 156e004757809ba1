package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"strings"
)

const defaultSearchLimit = 20

// Postgres-backed implementation of the PlaceRepository port.
type SQLPlaceRepository struct{ DB *sql.DB }

func NewSQLPlaceRepository(db *sql.DB) *SQLPlaceRepository {
	return &SQLPlaceRepository{DB: db}
}

func (s *SQLPlaceRepository) ListPlaces(ctx context.Context) (_ []*domain.Point, err error) {
	defer obs.Time(ctx, "places.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql place repository: DB is nil")
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

func (s *SQLPlaceRepository) FindPlace(ctx context.Context, name string) (_ *domain.Point, err error) {
	defer obs.Time(ctx, "places.sql.Find")(&err)

	if s.DB == nil {
		return nil, errors.New("sql place repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT name, lat, lon, kind
	FROM places
	WHERE name_key = $1;
	`, nameKey(name))
	return scanPlace(row, name)
}

func (s *SQLPlaceRepository) SearchPlaces(ctx context.Context, query string, limit int) (_ []*domain.Point, err error) {
	defer obs.Time(ctx, "places.sql.Search")(&err)

	if s.DB == nil {
		return nil, errors.New("sql place repository: DB is nil")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT name, lat, lon, kind
	FROM places
	WHERE name_key LIKE $1 ESCAPE '\'
	ORDER BY name_key
	LIMIT $2;
	`, likePattern(query), limit)
	if err != nil {
		return nil, fmt.Errorf("search places: query places table: %w", err)
	}
	return scanPlaces(rows, "search places")
}

func (s *SQLPlaceRepository) UpsertPlaces(ctx context.Context, places []*domain.Point) (err error) {
	defer obs.Time(ctx, "places.sql.Upsert")(&err)

	if s.DB == nil {
		return errors.New("sql place repository: DB is nil")
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
	INSERT INTO places (name_key, name, lat, lon, kind)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name_key) DO UPDATE
	SET name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		kind = EXCLUDED.kind;
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

func execUpsert(ctx context.Context, stmt *sql.Stmt, p *domain.Point) error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return errors.New("upsert places: place name cannot be empty")
	}
	if _, err := stmt.ExecContext(ctx, nameKey(p.Name), strings.TrimSpace(p.Name), p.Latitude, p.Longitude, string(p.Kind)); err != nil {
		return fmt.Errorf("upsert places: insert %q: %w", p.Name, err)
	}
	return nil
}

func scanPlace(row *sql.Row, name string) (*domain.Point, error) {
	var n, kind string
	var lat, lon float64
	if err := row.Scan(&n, &lat, &lon, &kind); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find place %q: scan row: %w", name, err)
	}
	return domain.NewPoint(n, lat, lon, domain.ParsePointKind(kind)), nil
}

func scanPlaces(rows *sql.Rows, op string) ([]*domain.Point, error) {
	defer rows.Close()

	places := make([]*domain.Point, 0, 32)
	for rows.Next() {
		var name, kind string
		var lat, lon float64
		if err := rows.Scan(&name, &lat, &lon, &kind); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		places = append(places, domain.NewPoint(name, lat, lon, domain.ParsePointKind(kind)))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}

	return places, nil
}
