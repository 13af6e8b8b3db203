package bored

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrInvalidArguments = errors.New("invalid arguments")

// Recognized query parameter names. Matching is exact, unknown names are ignored.
const (
	ParamKey              = "key"
	ParamType             = "type"
	ParamParticipants     = "participants"
	ParamPrice            = "price"
	ParamMinPrice         = "minprice"
	ParamMaxPrice         = "maxprice"
	ParamAccessibility    = "accessibility"
	ParamMinAccessibility = "minaccessibility"
	ParamMaxAccessibility = "maxaccessibility"
)

// ArgumentError reports a supplied parameter whose value is not a number.
type ArgumentError struct {
	Param string
	Value string
	Err   error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("parameter %s=%q: %s", e.Param, e.Value, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArguments
}

// Range is an inclusive interval. Nil bound means unbounded on that side.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) IsEmpty() bool {
	return r.Min == nil && r.Max == nil
}

func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Filter holds the constraints supplied with a single request.
// Nil fields are absent and impose no restriction.
type Filter struct {
	Key                *Key
	Type               *Type
	Participants       *int
	Price              *float64
	PriceRange         Range
	Accessibility      *float64
	AccessibilityRange Range

	// Unsatisfiable is set when a value is a number but can never be held by any
	// record, e.g. participants=2.5. Such filter matches nothing.
	Unsatisfiable bool
}

func (f Filter) IsEmpty() bool {
	return f.Key == nil && f.Type == nil && f.Participants == nil &&
		f.Price == nil && f.PriceRange.IsEmpty() &&
		f.Accessibility == nil && f.AccessibilityRange.IsEmpty() &&
		!f.Unsatisfiable
}

// KeyOnly reports whether the filter is an exact key lookup and nothing else.
func (f Filter) KeyOnly() bool {
	if f.Key == nil {
		return false
	}
	rest := f
	rest.Key = nil
	return rest.IsEmpty()
}

func (f Filter) Matches(a Activity) bool {
	switch {
	case f.Unsatisfiable:
		return false
	case f.Key != nil && a.Key != *f.Key:
		return false
	case f.Type != nil && a.Type != *f.Type:
		return false
	case f.Participants != nil && a.Participants != *f.Participants:
		return false
	case f.Price != nil && a.Price != *f.Price:
		return false
	case !f.PriceRange.Contains(a.Price):
		return false
	case f.Accessibility != nil && a.Accessibility != *f.Accessibility:
		return false
	case !f.AccessibilityRange.Contains(a.Accessibility):
		return false
	}
	return true
}

// ParseFilter converts raw query parameters into a Filter.
//
// Numbers are handled in two stages. Text which is not a finite number fails with an
// *ArgumentError (errors.Is ErrInvalidArguments). A number outside its field's domain is
// accepted and left to match nothing: participants=6, price=2, minprice > maxprice.
// Empty values count as not supplied.
func ParseFilter(params map[string]string) (Filter, error) {
	var f Filter

	if v, ok := lookup(params, ParamKey); ok {
		key := Key(v)
		f.Key = &key
	}
	if v, ok := lookup(params, ParamType); ok {
		t := Type(v)
		f.Type = &t
	}
	if v, ok := lookup(params, ParamParticipants); ok {
		n, err := parseNumber(ParamParticipants, v)
		if err != nil {
			return Filter{}, err
		}
		if p, ok := participantsDomain(n); ok {
			f.Participants = &p
		} else {
			f.Unsatisfiable = true
		}
	}

	numbers := []struct {
		param string
		dst   **float64
	}{
		{ParamPrice, &f.Price},
		{ParamMinPrice, &f.PriceRange.Min},
		{ParamMaxPrice, &f.PriceRange.Max},
		{ParamAccessibility, &f.Accessibility},
		{ParamMinAccessibility, &f.AccessibilityRange.Min},
		{ParamMaxAccessibility, &f.AccessibilityRange.Max},
	}
	for _, n := range numbers {
		v, ok := lookup(params, n.param)
		if !ok {
			continue
		}
		number, err := parseNumber(n.param, v)
		if err != nil {
			return Filter{}, err
		}
		*n.dst = &number
	}
	return f, nil
}

func lookup(params map[string]string, name string) (string, bool) {
	v, ok := params[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

var errNotFinite = errors.New("not a finite number")

func parseNumber(param string, raw string) (float64, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ArgumentError{Param: param, Value: raw, Err: err}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &ArgumentError{Param: param, Value: raw, Err: errNotFinite}
	}
	return n, nil
}

func participantsDomain(n float64) (int, bool) {
	if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
