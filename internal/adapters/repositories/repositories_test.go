package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func newSqliteRepo(t *testing.T) (*SqlitePlaceRepository, *sql.DB) {
	t.Helper()

	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, DialectSQLite))
	return NewSqlitePlaceRepository(conn), conn
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	_, conn := newSqliteRepo(t)
	require.NoError(t, InitSchema(context.Background(), conn, DialectSQLite))
	require.Error(t, InitSchema(context.Background(), conn, Dialect("oracle")))
	require.Error(t, InitSchema(context.Background(), nil, DialectSQLite))
}

func TestSqliteUpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSqliteRepo(t)

	require.NoError(t, repo.UpsertPlaces(ctx, []*domain.Point{
		domain.NewPoint("Gare Centrale", -4.316, 15.313, domain.KindStop),
		domain.NewPoint("Place de la Victoire", -4.33787, 15.30553, domain.KindStop),
	}))

	p, err := repo.FindPlace(ctx, "  gare centrale ")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "Gare Centrale", p.Name)
	require.Equal(t, domain.KindStop, p.Kind)
	require.InDelta(t, -4.316, p.Latitude, 1e-9)

	// upsert replaces by case-insensitive name
	require.NoError(t, repo.UpsertPlaces(ctx, []*domain.Point{
		domain.NewPoint("GARE CENTRALE", -4.317, 15.314, domain.KindEnd),
	}))
	p, err = repo.FindPlace(ctx, "Gare Centrale")
	require.NoError(t, err)
	require.Equal(t, "GARE CENTRALE", p.Name)
	require.InDelta(t, -4.317, p.Latitude, 1e-9)

	missing, err := repo.FindPlace(ctx, "Matadi")
	require.NoError(t, err)
	require.Nil(t, missing)

	all, err := repo.ListPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "GARE CENTRALE", all[0].Name)
}

func TestSqliteSearch(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSqliteRepo(t)

	require.NoError(t, repo.UpsertPlaces(ctx, []*domain.Point{
		domain.NewPoint("Marché Central", -4.325, 15.31, domain.KindStop),
		domain.NewPoint("Gare Centrale", -4.316, 15.313, domain.KindStop),
		domain.NewPoint("Stade des Martyrs", -4.332, 15.308, domain.KindStop),
		domain.NewPoint("100%_Club", -4.3, 15.3, domain.KindStop),
	}))

	got, err := repo.SearchPlaces(ctx, "central", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.SearchPlaces(ctx, "central", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// wildcards in the query are literal
	got, err = repo.SearchPlaces(ctx, "%", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "100%_Club", got[0].Name)
}

func TestUpsertRejectsEmptyName(t *testing.T) {
	repo, _ := newSqliteRepo(t)
	err := repo.UpsertPlaces(context.Background(), []*domain.Point{domain.NewPoint(" ", 0, 0, "")})
	require.ErrorContains(t, err, "name cannot be empty")
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	repo, _ := newSqliteRepo(t)

	path := filepath.Join(t.TempDir(), "places.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "Gare Centrale", "lat": -4.316, "lon": 15.313, "kind": "stop"},
		{"name": "Palais du Peuple", "lat": -4.318, "lon": 15.312}
	]`), 0o600))

	require.NoError(t, SeedFromJSON(ctx, repo, path))

	all, err := repo.ListPlaces(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, domain.KindUnknown, all[1].Kind)
}

func TestLoadSeedsValidation(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"name": "", "lat": 0, "lon": 0}]`), 0o600))
	_, err := LoadSeeds(bad)
	require.ErrorContains(t, err, "name cannot be empty")

	far := filepath.Join(dir, "far.json")
	require.NoError(t, os.WriteFile(far, []byte(`[{"name": "X", "lat": 91, "lon": 0}]`), 0o600))
	_, err = LoadSeeds(far)
	require.ErrorContains(t, err, "out of range")

	_, err = LoadSeeds(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestSQLPlaceRepositoryPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitSchema(ctx, conn, DialectPostgres))

	repo := NewSQLPlaceRepository(conn)
	require.NoError(t, repo.UpsertPlaces(ctx, []*domain.Point{
		domain.NewPoint("Test Place Kinshasa", -4.3, 15.3, domain.KindStop),
	}))
	t.Cleanup(func() { _, _ = conn.Exec(`DELETE FROM places WHERE name_key = 'test place kinshasa'`) })

	p, err := repo.FindPlace(ctx, "test place kinshasa")
	require.NoError(t, err)
	require.NotNil(t, p)

	got, err := repo.SearchPlaces(ctx, "place kin", 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)
}
