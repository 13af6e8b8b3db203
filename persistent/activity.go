package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boredclicker/bored"
	"github.com/uptrace/bun"
)

type Activity struct {
	bun.BaseModel `bun:"table:activity"`

	Key           string  `bun:",pk,type:varchar(16)"`
	Activity      string  `bun:",notnull"`
	Type          string  `bun:",notnull,type:varchar(30)"`
	Participants  int     `bun:",notnull"`
	Price         float64 `bun:",notnull"`
	Link          string  `bun:",notnull"`
	Accessibility float64 `bun:",notnull"`
}

func (a Activity) ToDomain() bored.Activity {
	return bored.Activity{
		Activity:      a.Activity,
		Type:          bored.Type(a.Type),
		Participants:  a.Participants,
		Price:         a.Price,
		Link:          a.Link,
		Key:           bored.Key(a.Key),
		Accessibility: a.Accessibility,
	}
}

func activityFromDomain(a bored.Activity) Activity {
	return Activity{
		Key:           string(a.Key),
		Activity:      a.Activity,
		Type:          string(a.Type),
		Participants:  a.Participants,
		Price:         a.Price,
		Link:          a.Link,
		Accessibility: a.Accessibility,
	}
}

type ActivityStore struct {
	DB *bun.DB
}

var _ bored.ActivityStore = (*ActivityStore)(nil)

// Seed creates activity table if needed and makes its rows equal to the catalog.
// Keys missing from the catalog are removed in the same transaction.
func (s *ActivityStore) Seed(ctx context.Context, activities []bored.Activity) error {
	_, err := s.DB.NewCreateTable().
		Model((*Activity)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return s.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if len(activities) == 0 {
			_, err := tx.NewDelete().
				Model((*Activity)(nil)).
				Where("TRUE").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("delete activities: %w", err)
			}
			return nil
		}

		rows := make([]Activity, len(activities))
		keys := make([]string, len(activities))
		for i, a := range activities {
			rows[i] = activityFromDomain(a)
			keys[i] = string(a.Key)
		}
		_, err := tx.NewDelete().
			Model((*Activity)(nil)).
			Where("activity.key NOT IN (?)", bun.In(keys)).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete stale activities: %w", err)
		}
		_, err = tx.NewInsert().
			Model(&rows).
			On(`CONFLICT (key) DO UPDATE SET activity=EXCLUDED.activity, type=EXCLUDED.type, ` +
				`participants=EXCLUDED.participants, price=EXCLUDED.price, link=EXCLUDED.link, ` +
				`accessibility=EXCLUDED.accessibility`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert activities: %w", err)
		}
		return nil
	})
}

func (s *ActivityStore) ByKey(ctx context.Context, key bored.Key) (bored.Activity, error) {
	row := new(Activity)
	err := s.DB.NewSelect().
		Model(row).
		Where("activity.key=?", string(key)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bored.Activity{}, bored.ErrActivityNotFound
		}
		return bored.Activity{}, fmt.Errorf("select activity: %w", err)
	}
	return row.ToDomain(), nil
}

func (s *ActivityStore) Matching(ctx context.Context, filter bored.Filter) ([]bored.Activity, error) {
	if filter.Unsatisfiable {
		return []bored.Activity{}, nil
	}

	var rows []Activity
	q := s.DB.NewSelect().Model(&rows)
	if filter.Key != nil {
		q = q.Where("activity.key=?", string(*filter.Key))
	}
	if filter.Type != nil {
		q = q.Where("activity.type=?", string(*filter.Type))
	}
	if filter.Participants != nil {
		q = q.Where("activity.participants=?", *filter.Participants)
	}
	if filter.Price != nil {
		q = q.Where("activity.price=?", *filter.Price)
	}
	q = whereRange(q, "activity.price", filter.PriceRange)
	if filter.Accessibility != nil {
		q = q.Where("activity.accessibility=?", *filter.Accessibility)
	}
	q = whereRange(q, "activity.accessibility", filter.AccessibilityRange)

	if err := q.OrderExpr("activity.key").Scan(ctx); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	activities := make([]bored.Activity, len(rows))
	for i, row := range rows {
		activities[i] = row.ToDomain()
	}
	return activities, nil
}

func whereRange(q *bun.SelectQuery, column string, r bored.Range) *bun.SelectQuery {
	if r.Min != nil {
		q = q.Where("? >= ?", bun.Safe(column), *r.Min)
	}
	if r.Max != nil {
		q = q.Where("? <= ?", bun.Safe(column), *r.Max)
	}
	return q
}
