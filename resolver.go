package bored

import (
	"context"
	"errors"
	"fmt"
)

type OutcomeKind int

const (
	OutcomeFound OutcomeKind = iota
	OutcomeNotFound
	OutcomeInvalidArguments
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidArguments:
		return "invalid_arguments"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome of resolving one request. Activity is set only for OutcomeFound,
// Cause only for OutcomeInvalidArguments.
type Outcome struct {
	Kind     OutcomeKind
	Activity Activity
	Cause    error
}

type Resolver struct {
	Store    ActivityStore
	Selector Selector
}

// Resolve classifies raw query parameters into exactly one outcome.
// Returned error means the store itself failed, never a bad request.
func (r *Resolver) Resolve(ctx context.Context, params map[string]string) (Outcome, error) {
	filter, err := ParseFilter(params)
	if err != nil {
		if errors.Is(err, ErrInvalidArguments) {
			return Outcome{Kind: OutcomeInvalidArguments, Cause: err}, nil
		}
		return Outcome{}, fmt.Errorf("parse filter: %w", err)
	}

	if filter.KeyOnly() {
		activity, err := r.Store.ByKey(ctx, *filter.Key)
		switch {
		case errors.Is(err, ErrActivityNotFound):
			return Outcome{Kind: OutcomeNotFound}, nil
		case err != nil:
			return Outcome{}, fmt.Errorf("store by key: %w", err)
		}
		return Outcome{Kind: OutcomeFound, Activity: activity}, nil
	}

	candidates, err := r.Store.Matching(ctx, filter)
	if err != nil {
		return Outcome{}, fmt.Errorf("store matching: %w", err)
	}
	activity, err := r.Selector.Select(candidates)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			return Outcome{Kind: OutcomeNotFound}, nil
		}
		return Outcome{}, fmt.Errorf("select activity: %w", err)
	}
	return Outcome{Kind: OutcomeFound, Activity: activity}, nil
}
