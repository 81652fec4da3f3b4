package search

import (
	"context"
	"errors"
	"testing"

	"card-catalog/core/database"
	"card-catalog/core/resilience"
	"card-catalog/feature/cards/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newTestIndex(t *testing.T) *SQLIndex {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	exec := resilience.New(zap.NewNop(), resilience.WithRetryConfig(resilience.RetryConfig{MaxRetries: 0}))
	idx := NewSQLIndex(db, exec, zap.NewNop())
	require.NoError(t, idx.Migrate(context.Background()))
	return idx
}

func seed(t *testing.T, idx *SQLIndex) {
	t.Helper()
	cards := []models.Card{
		{ID: "a1", Name: "Lightning Bolt", Game: models.GameMagic, Rarity: "common", Set: "Alpha", Price: 400},
		{ID: "b2", Name: "Lightning Helix", Game: models.GameMagic, Rarity: "uncommon", Set: "Ravnica", Price: 0.5},
		{ID: "c3", Name: "Charizard", Game: models.GamePokemon, Rarity: "Rare Holo", Set: "Base", Price: 350,
			Extra: map[string]any{"condition": "near_mint", "hp": "120"}},
		{ID: "d4", Name: "Charmander", Game: models.GamePokemon, Rarity: "Common", Set: "Base", Price: 3},
		{ID: "e5", Name: "Dark Magician", Game: models.GameYuGiOh, Rarity: "Ultra Rare", Set: "LOB", Price: 12},
	}
	require.NoError(t, idx.IndexCards(context.Background(), cards))
}

func TestSQLIndex_Search(t *testing.T) {
	idx := newTestIndex(t)
	seed(t, idx)
	ctx := context.Background()

	t.Run("TextMatchIsCaseInsensitive", func(t *testing.T) {
		res, err := idx.Search(ctx, Query{Text: "LIGHTNING"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, res.Total)
		require.Len(t, res.Records, 2)
		assert.Equal(t, "Lightning Bolt", res.Records[0].Name)
		assert.Equal(t, "Lightning Helix", res.Records[1].Name)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, DefaultPageSize, res.Size)
	})

	t.Run("Filters", func(t *testing.T) {
		minPrice := 1.0
		res, err := idx.Search(ctx, Query{Filters: Filters{Game: models.GamePokemon, MinPrice: &minPrice}})
		require.NoError(t, err)
		assert.EqualValues(t, 2, res.Total)

		res, err = idx.Search(ctx, Query{Filters: Filters{Condition: "near_mint"}})
		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Equal(t, "c3", res.Records[0].ID)
		assert.Equal(t, "120", res.Records[0].Extra["hp"])

		res, err = idx.Search(ctx, Query{Filters: Filters{Set: "base", Rarity: "common"}})
		require.NoError(t, err)
		require.Len(t, res.Records, 1)
		assert.Equal(t, "Charmander", res.Records[0].Name)
	})

	t.Run("SortAndPaginate", func(t *testing.T) {
		res, err := idx.Search(ctx, Query{
			Sort:       Sort{Field: SortPrice, Order: Desc},
			Pagination: Pagination{Page: 2, Size: 2},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 5, res.Total)
		require.Len(t, res.Records, 2)
		assert.Equal(t, "Dark Magician", res.Records[0].Name)
		assert.Equal(t, "Charmander", res.Records[1].Name)
	})

	t.Run("Facets", func(t *testing.T) {
		res, err := idx.Search(ctx, Query{})
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"magic": 2, "pokemon": 2, "yu-gi-oh": 1}, res.Facets.Game)
		assert.EqualValues(t, 2, res.Facets.Set["Base"])
		assert.Equal(t, map[string]int64{"0-1": 1, "1-5": 1, "5-20": 1, "100+": 2}, res.Facets.PriceBucket)
	})

	t.Run("InvalidQuery", func(t *testing.T) {
		_, err := idx.Search(ctx, Query{Sort: Sort{Field: "popularity"}})
		assert.ErrorIs(t, err, ErrInvalidQuery)

		lo, hi := 10.0, 1.0
		_, err = idx.Search(ctx, Query{Filters: Filters{MinPrice: &lo, MaxPrice: &hi}})
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestSQLIndex_IndexCardsUpserts(t *testing.T) {
	idx := newTestIndex(t)
	seed(t, idx)
	ctx := context.Background()

	err := idx.IndexCards(ctx, []models.Card{
		{ID: "a1", Name: "Lightning Bolt", Game: models.GameMagic, Rarity: "common", Set: "Alpha", Price: 425},
		{ID: "a1", Name: "Lightning Bolt", Game: models.GameMagic, Price: 1},
		{ID: "", Name: "No Id", Game: models.GameMagic},
	})
	require.NoError(t, err)

	res, err := idx.Search(ctx, Query{Text: "bolt"})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 425.0, res.Records[0].Price)
}

func TestSQLIndex_Suggest(t *testing.T) {
	idx := newTestIndex(t)
	seed(t, idx)
	ctx := context.Background()

	names, err := idx.Suggest(ctx, "char", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Charizard", "Charmander"}, names)

	names, err = idx.Suggest(ctx, "light", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lightning Bolt"}, names)

	names, err = idx.Suggest(ctx, "  ", 10)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSQLIndex_Health(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		idx := newTestIndex(t)
		seed(t, idx)

		h := idx.Health(context.Background())
		assert.Equal(t, StatusHealthy, h.Status)
		assert.EqualValues(t, 5, h.Details["documents"])
	})

	t.Run("DegradedWithoutTable", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		idx := NewSQLIndex(db, resilience.New(zap.NewNop()), zap.NewNop())

		h := idx.Health(context.Background())
		assert.Equal(t, StatusDegraded, h.Status)
		assert.Equal(t, ExpectedColumns, h.Details["missing_columns"])
	})

	t.Run("Unavailable", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer sqlDB.Close()

		db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
			&gorm.Config{DisableAutomaticPing: true})
		require.NoError(t, err)

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		idx := NewSQLIndex(db, resilience.New(zap.NewNop()), zap.NewNop())
		h := idx.Health(context.Background())
		assert.Equal(t, StatusUnavailable, h.Status)
		assert.Contains(t, h.Details["error"], "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MySQLSchemaDrift", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer sqlDB.Close()

		db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
			&gorm.Config{DisableAutomaticPing: true})
		require.NoError(t, err)

		mock.ExpectPing()
		rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
		for _, col := range ExpectedColumns {
			if col == "card_condition" {
				continue
			}
			rows.AddRow(col, "varchar(255)", "YES", "", nil, "")
		}
		mock.ExpectQuery("SHOW COLUMNS FROM `indexed_cards`").WillReturnRows(rows)

		idx := NewSQLIndex(db, resilience.New(zap.NewNop()), zap.NewNop())
		h := idx.Health(context.Background())
		assert.Equal(t, StatusDegraded, h.Status)
		assert.Equal(t, []string{"card_condition"}, h.Details["missing_columns"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
