package bored

import (
	"context"
	"errors"
)

var ErrActivityNotFound = errors.New("activity not found")

type Type string

const (
	TypeEducation    Type = "education"
	TypeRecreational Type = "recreational"
	TypeSocial       Type = "social"
	TypeDiy          Type = "diy"
	TypeCharity      Type = "charity"
	TypeCooking      Type = "cooking"
	TypeRelaxation   Type = "relaxation"
	TypeMusic        Type = "music"
	TypeBusywork     Type = "busywork"
)

var allTypes = []Type{
	TypeEducation,
	TypeRecreational,
	TypeSocial,
	TypeDiy,
	TypeCharity,
	TypeCooking,
	TypeRelaxation,
	TypeMusic,
	TypeBusywork,
}

// Types returns every known activity type in a stable order.
func Types() []Type {
	types := make([]Type, len(allTypes))
	copy(types, allTypes)
	return types
}

func (t Type) Known() bool {
	for _, known := range allTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Key is a fixed width textual identifier e.g. "5881028".
// It is never converted to a number.
type Key string

type Activity struct {
	Activity      string
	Type          Type
	Participants  int
	Price         float64
	Link          string
	Key           Key
	Accessibility float64
}

// ActivityStore is a read-only view of the activity catalog.
type ActivityStore interface {
	// Get activity with exactly matching key or ErrActivityNotFound.
	ByKey(ctx context.Context, key Key) (Activity, error)

	// Get every activity satisfying all constraints of the filter. Order is unspecified.
	Matching(ctx context.Context, filter Filter) ([]Activity, error)
}
