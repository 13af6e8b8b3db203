package inmem

import (
	"context"
	"fmt"

	"github.com/boredclicker/bored"
)

// ActivityStore keeps the catalog in memory. It is never modified after
// construction so it can be shared between requests without locking.
type ActivityStore struct {
	activities []bored.Activity
	byKey      map[bored.Key]int
}

var _ bored.ActivityStore = (*ActivityStore)(nil)

func NewActivityStore(activities []bored.Activity) (*ActivityStore, error) {
	s := &ActivityStore{
		activities: make([]bored.Activity, len(activities)),
		byKey:      make(map[bored.Key]int, len(activities)),
	}
	copy(s.activities, activities)
	for i, a := range s.activities {
		if _, ok := s.byKey[a.Key]; ok {
			return nil, fmt.Errorf("duplicated activity key: %s", a.Key)
		}
		s.byKey[a.Key] = i
	}
	return s, nil
}

func (s *ActivityStore) ByKey(ctx context.Context, key bored.Key) (bored.Activity, error) {
	i, ok := s.byKey[key]
	if !ok {
		return bored.Activity{}, bored.ErrActivityNotFound
	}
	return s.activities[i], nil
}

func (s *ActivityStore) Matching(ctx context.Context, filter bored.Filter) ([]bored.Activity, error) {
	if filter.Unsatisfiable {
		return []bored.Activity{}, nil
	}
	matching := make([]bored.Activity, 0, 10)
	for _, a := range s.activities {
		if filter.Matches(a) {
			matching = append(matching, a)
		}
	}
	return matching, nil
}

func (s *ActivityStore) Len() int {
	return len(s.activities)
}
