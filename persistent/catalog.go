package persistent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/boredclicker/bored"
	"github.com/tidwall/buntdb"
)

const catalogKeyPrefix = "activity:"

// buntdb indexes over json fields of stored activities.
const (
	indexType          = "activity_type"
	indexPrice         = "activity_price"
	indexAccessibility = "activity_accessibility"
)

type catalogEntry struct {
	Activity      string  `json:"activity"`
	Type          string  `json:"type"`
	Participants  int     `json:"participants"`
	Price         float64 `json:"price"`
	Link          string  `json:"link"`
	Key           string  `json:"key"`
	Accessibility float64 `json:"accessibility"`
}

func (e catalogEntry) ToDomain() bored.Activity {
	return bored.Activity{
		Activity:      e.Activity,
		Type:          bored.Type(e.Type),
		Participants:  e.Participants,
		Price:         e.Price,
		Link:          e.Link,
		Key:           bored.Key(e.Key),
		Accessibility: e.Accessibility,
	}
}

// CatalogStore keeps activities in buntdb, one json document per key.
type CatalogStore struct {
	Buntdb *buntdb.DB
}

var _ bored.ActivityStore = (*CatalogStore)(nil)

func (s *CatalogStore) CreateIndexes() error {
	indexes := []struct {
		name string
		path string
	}{
		{indexType, "type"},
		{indexPrice, "price"},
		{indexAccessibility, "accessibility"},
	}
	for _, index := range indexes {
		err := s.Buntdb.CreateIndex(index.name, catalogKeyPrefix+"*", buntdb.IndexJSON(index.path))
		if err != nil && !errors.Is(err, buntdb.ErrIndexExists) {
			return fmt.Errorf("create index %s: %w", index.name, err)
		}
	}
	return nil
}

// Load replaces stored catalog with given activities in a single transaction.
// Duplicated keys abort the load and keep previous catalog.
func (s *CatalogStore) Load(activities []bored.Activity) error {
	seen := make(map[bored.Key]bool, len(activities))
	for _, a := range activities {
		if seen[a.Key] {
			return fmt.Errorf("duplicated activity key: %s", a.Key)
		}
		seen[a.Key] = true
	}

	err := s.Buntdb.Update(func(tx *buntdb.Tx) error {
		var stale []string
		err := tx.AscendKeys(catalogKeyPrefix+"*", func(key, value string) bool {
			stale = append(stale, key)
			return true
		})
		if err != nil {
			return fmt.Errorf("list activities: %w", err)
		}
		for _, key := range stale {
			if _, err := tx.Delete(key); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}

		for _, a := range activities {
			serialized, err := json.Marshal(catalogEntry{
				Activity:      a.Activity,
				Type:          string(a.Type),
				Participants:  a.Participants,
				Price:         a.Price,
				Link:          a.Link,
				Key:           string(a.Key),
				Accessibility: a.Accessibility,
			})
			if err != nil {
				return fmt.Errorf("serialize activity %s: %w", a.Key, err)
			}
			if _, _, err = tx.Set(catalogKeyPrefix+string(a.Key), string(serialized), nil); err != nil {
				return fmt.Errorf("set activity %s: %w", a.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}

func (s *CatalogStore) ByKey(ctx context.Context, key bored.Key) (bored.Activity, error) {
	var entry catalogEntry
	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		serialized, err := tx.Get(catalogKeyPrefix + string(key))
		if err != nil {
			return fmt.Errorf("get activity: %w", err)
		}
		if err := json.Unmarshal([]byte(serialized), &entry); err != nil {
			return fmt.Errorf("deserialize activity: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return bored.Activity{}, bored.ErrActivityNotFound
		}
		return bored.Activity{}, fmt.Errorf("buntdb view: %w", err)
	}
	return entry.ToDomain(), nil
}

// Matching narrows the scan with the most selective index available and
// checks every visited activity against the whole filter.
func (s *CatalogStore) Matching(ctx context.Context, filter bored.Filter) ([]bored.Activity, error) {
	matching := make([]bored.Activity, 0, 10)
	if filter.Unsatisfiable {
		return matching, nil
	}

	var decodeErr error
	// visit returns false to stop the scan early
	iterate := func(visit func(a bored.Activity) bool) func(key, value string) bool {
		return func(key, value string) bool {
			var entry catalogEntry
			if err := json.Unmarshal([]byte(value), &entry); err != nil {
				decodeErr = fmt.Errorf("deserialize activity %s: %w", key, err)
				return false
			}
			a := entry.ToDomain()
			if !visit(a) {
				return false
			}
			if filter.Matches(a) {
				matching = append(matching, a)
			}
			return true
		}
	}
	all := func(bored.Activity) bool { return true }

	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		switch {
		case filter.Key != nil:
			serialized, err := tx.Get(catalogKeyPrefix + string(*filter.Key))
			if errors.Is(err, buntdb.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("get activity: %w", err)
			}
			iterate(all)(catalogKeyPrefix+string(*filter.Key), serialized)
			return nil
		case filter.Type != nil:
			return tx.AscendEqual(indexType, pivot("type", string(*filter.Type)), iterate(all))
		case filter.Price != nil:
			return tx.AscendEqual(indexPrice, pivot("price", *filter.Price), iterate(all))
		case !filter.PriceRange.IsEmpty():
			return scanRange(tx, indexPrice, "price", filter.PriceRange,
				func(a bored.Activity) float64 { return a.Price }, iterate)
		case filter.Accessibility != nil:
			return tx.AscendEqual(indexAccessibility, pivot("accessibility", *filter.Accessibility), iterate(all))
		case !filter.AccessibilityRange.IsEmpty():
			return scanRange(tx, indexAccessibility, "accessibility", filter.AccessibilityRange,
				func(a bored.Activity) float64 { return a.Accessibility }, iterate)
		default:
			return tx.AscendKeys(catalogKeyPrefix+"*", iterate(all))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("buntdb view: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return matching, nil
}

// scanRange walks the index in ascending order from the lower bound and stops
// past the upper bound.
func scanRange(
	tx *buntdb.Tx,
	index string,
	path string,
	r bored.Range,
	field func(bored.Activity) float64,
	iterate func(visit func(a bored.Activity) bool) func(key, value string) bool,
) error {
	beforeMax := func(a bored.Activity) bool {
		return r.Max == nil || field(a) <= *r.Max
	}
	if r.Min != nil {
		return tx.AscendGreaterOrEqual(index, pivot(path, *r.Min), iterate(beforeMax))
	}
	return tx.Ascend(index, iterate(beforeMax))
}

func pivot(path string, value interface{}) string {
	serialized, err := json.Marshal(map[string]interface{}{path: value})
	if err != nil {
		panic(err)
	}
	return string(serialized)
}
