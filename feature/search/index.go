package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"card-catalog/core/database"
	"card-catalog/core/resilience"
	"card-catalog/feature/cards/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLIndex is an Index over a relational table. Name matching is a case-insensitive
// substring match on a lower-cased copy of the name.
type SQLIndex struct {
	db     *gorm.DB
	exec   *resilience.Executor
	logger *zap.Logger
	now    func() time.Time
}

// NewSQLIndex creates an index on db. Call Migrate before first use.
func NewSQLIndex(db *gorm.DB, exec *resilience.Executor, logger *zap.Logger) *SQLIndex {
	return &SQLIndex{db: db, exec: exec, logger: logger, now: time.Now}
}

// Migrate creates or updates the index table.
func (s *SQLIndex) Migrate(ctx context.Context) error {
	return s.exec.Retry(ctx, resilience.ServiceSearch, "migrate", func(ctx context.Context) error {
		return s.db.WithContext(ctx).AutoMigrate(&IndexedCard{})
	}, nil)
}

// IndexCards upserts cards keyed by game and card id.
func (s *SQLIndex) IndexCards(ctx context.Context, cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	now := s.now()
	rows := make([]IndexedCard, 0, len(cards))
	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			continue
		}
		key := string(c.Game) + "\x00" + c.ID
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, newIndexedCard(c, now))
	}
	if len(rows) == 0 {
		return nil
	}

	err := s.exec.Retry(ctx, resilience.ServiceSearch, "index", func(ctx context.Context) error {
		return s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "game"}, {Name: "card_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "name_lower", "image", "price", "rarity", "set_name", "card_condition", "extra", "updated_at",
			}),
		}).CreateInBatches(rows, 100).Error
	}, nil)
	if err != nil {
		return fmt.Errorf("index %d cards: %w", len(rows), err)
	}
	s.logger.Debug("Indexed cards", zap.Int("count", len(rows)))
	return nil
}

// Search returns one page of matches with facets computed over all matches.
func (s *SQLIndex) Search(ctx context.Context, q Query) (*Result, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}
	filtered := func(db *gorm.DB) *gorm.DB { return applyFilters(db, q) }

	result := &Result{Page: q.Pagination.Page, Size: q.Pagination.Size, Records: []models.Card{}}
	err = s.exec.Retry(ctx, resilience.ServiceSearch, "search", func(ctx context.Context) error {
		base := func() *gorm.DB {
			return s.db.WithContext(ctx).Model(&IndexedCard{}).Scopes(filtered)
		}

		if err := base().Count(&result.Total).Error; err != nil {
			return fmt.Errorf("count: %w", err)
		}

		var rows []IndexedCard
		err := base().
			Order(orderClause(q.Sort)).
			Order("id").
			Offset((q.Pagination.Page - 1) * q.Pagination.Size).
			Limit(q.Pagination.Size).
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("find: %w", err)
		}
		records := make([]models.Card, 0, len(rows))
		for _, r := range rows {
			records = append(records, r.card())
		}
		result.Records = records

		facets := Facets{}
		for _, f := range []struct {
			expr   string
			target *map[string]int64
		}{
			{"game", &facets.Game},
			{"rarity", &facets.Rarity},
			{"set_name", &facets.Set},
			{priceBucketExpr, &facets.PriceBucket},
		} {
			counts, err := facetCounts(base(), f.expr)
			if err != nil {
				return err
			}
			*f.target = counts
		}
		result.Facets = facets
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Suggest returns distinct card names starting with prefix, ordered by name.
func (s *SQLIndex) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return []string{}, nil
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = 10
	}

	names := []string{}
	err := s.exec.Retry(ctx, resilience.ServiceSearch, "suggest", func(ctx context.Context) error {
		names = names[:0]
		return s.db.WithContext(ctx).Model(&IndexedCard{}).
			Distinct().
			Where("name_lower LIKE ?", escapeLike(prefix)+"%").
			Order("name").
			Limit(limit).
			Pluck("name", &names).Error
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return names, nil
}

// Health pings the database and checks the index schema.
func (s *SQLIndex) Health(ctx context.Context) Health {
	details := map[string]any{"driver": s.db.Dialector.Name(), "table": TableName}

	err := s.exec.Retry(ctx, resilience.ServiceSearch, "ping", func(ctx context.Context) error {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}, &resilience.RetryConfig{MaxRetries: 0})
	if err != nil {
		details["error"] = err.Error()
		return Health{Status: StatusUnavailable, Details: details}
	}

	missing, err := database.MissingColumns(s.db.WithContext(ctx), TableName, ExpectedColumns)
	if err != nil {
		details["error"] = err.Error()
		return Health{Status: StatusDegraded, Details: details}
	}
	if len(missing) > 0 {
		details["missing_columns"] = missing
		return Health{Status: StatusDegraded, Details: details}
	}

	var documents int64
	if err := s.db.WithContext(ctx).Model(&IndexedCard{}).Count(&documents).Error; err != nil {
		details["error"] = err.Error()
		return Health{Status: StatusDegraded, Details: details}
	}
	details["documents"] = documents
	return Health{Status: StatusHealthy, Details: details}
}

func applyFilters(db *gorm.DB, q Query) *gorm.DB {
	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		db = db.Where("name_lower LIKE ?", "%"+escapeLike(text)+"%")
	}
	f := q.Filters
	if f.Game != "" {
		db = db.Where("game = ?", string(f.Game))
	}
	if f.Rarity != "" {
		db = db.Where("LOWER(rarity) = ?", strings.ToLower(f.Rarity))
	}
	if f.Set != "" {
		db = db.Where("LOWER(set_name) = ?", strings.ToLower(f.Set))
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	if f.Condition != "" {
		db = db.Where("LOWER(card_condition) = ?", strings.ToLower(f.Condition))
	}
	return db
}

var sortColumns = map[SortField]string{
	SortName:   "name_lower",
	SortPrice:  "price",
	SortRarity: "rarity",
	SortDate:   "updated_at",
}

func orderClause(s Sort) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Name: sortColumns[s.Field]},
		Desc:   s.Order == Desc,
	}
}

type facetRow struct {
	Value string
	Count int64
}

func facetCounts(db *gorm.DB, expr string) (map[string]int64, error) {
	var rows []facetRow
	err := db.Select(expr + " AS value, COUNT(*) AS count").Group("value").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("facet %s: %w", expr, err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		if r.Value == "" {
			continue
		}
		counts[r.Value] = r.Count
	}
	return counts, nil
}

// escapeLike drops LIKE wildcards from user input; the dialects disagree on the default escape character.
func escapeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}
