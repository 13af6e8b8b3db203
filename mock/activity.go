package mock

import (
	"context"

	"github.com/boredclicker/bored"
)

type ActivityStore struct {
	ByKeyFn func(ctx context.Context, key bored.Key) (bored.Activity, error)

	MatchingFn func(ctx context.Context, filter bored.Filter) ([]bored.Activity, error)
}

func (s ActivityStore) ByKey(ctx context.Context, key bored.Key) (bored.Activity, error) {
	return s.ByKeyFn(ctx, key)
}

func (s ActivityStore) Matching(ctx context.Context, filter bored.Filter) ([]bored.Activity, error) {
	return s.MatchingFn(ctx, filter)
}

// Selector always picks the candidate at Index, or returns Err when set.
type Selector struct {
	Index int
	Err   error
}

func (s Selector) Select(candidates []bored.Activity) (bored.Activity, error) {
	if s.Err != nil {
		return bored.Activity{}, s.Err
	}
	if len(candidates) == 0 {
		return bored.Activity{}, bored.ErrNoMatch
	}
	return candidates[s.Index%len(candidates)], nil
}
