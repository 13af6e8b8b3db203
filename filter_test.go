package bored

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func float(v float64) *float64 { return &v }

func TestParseFilter(t *testing.T) {
	key := Key("5881028")
	shortKey := Key("588102")
	relaxation := TypeRelaxation
	someText := Type("someText")
	three := 3
	six := 6

	cases := []struct {
		params map[string]string
		filter Filter
	}{
		{map[string]string{}, Filter{}},
		{map[string]string{"unknown": "x", "Type": "music"}, Filter{}},
		{map[string]string{"key": "5881028"}, Filter{Key: &key}},
		{map[string]string{"key": "588102"}, Filter{Key: &shortKey}},
		{map[string]string{"type": "relaxation"}, Filter{Type: &relaxation}},
		{map[string]string{"type": "someText"}, Filter{Type: &someText}},
		{map[string]string{"participants": "3"}, Filter{Participants: &three}},
		{map[string]string{"participants": "6"}, Filter{Participants: &six}},
		{map[string]string{"participants": "2.5"}, Filter{Unsatisfiable: true}},
		{map[string]string{"participants": "3.0"}, Filter{Participants: &three}},
		{map[string]string{"price": "0.1"}, Filter{Price: float(0.1)}},
		{map[string]string{"price": "-0.2"}, Filter{Price: float(-0.2)}},
		{map[string]string{"minprice": "0.1", "maxprice": "0.5"},
			Filter{PriceRange: Range{Min: float(0.1), Max: float(0.5)}}},
		{map[string]string{"minprice": "1.4", "maxprice": "1.2"},
			Filter{PriceRange: Range{Min: float(1.4), Max: float(1.2)}}},
		{map[string]string{"maxprice": "0.1"}, Filter{PriceRange: Range{Max: float(0.1)}}},
		{map[string]string{"accessibility": "1.1"}, Filter{Accessibility: float(1.1)}},
		{map[string]string{"minaccessibility": "0.2"}, Filter{AccessibilityRange: Range{Min: float(0.2)}}},
		{map[string]string{"maxaccessibility": "0.8", "price": ""}, Filter{AccessibilityRange: Range{Max: float(0.8)}}},
		{map[string]string{"type": "relaxation", "participants": "3"}, Filter{Type: &relaxation, Participants: &three}},
	}
	for _, c := range cases {
		filter, err := ParseFilter(c.params)
		if assert.NoError(t, err, "%v", c.params) {
			assert.Equal(t, c.filter, filter, "%v", c.params)
		}
	}
}

func TestParseFilterInvalidArguments(t *testing.T) {
	cases := []struct {
		params map[string]string
		param  string
	}{
		{map[string]string{"participants": "relaxation"}, ParamParticipants},
		{map[string]string{"price": "relaxation"}, ParamPrice},
		{map[string]string{"accessibility": "relaxation"}, ParamAccessibility},
		{map[string]string{"minprice": "1.4", "maxprice": "sometext"}, ParamMaxPrice},
		{map[string]string{"maxprice": "sometext"}, ParamMaxPrice},
		{map[string]string{"minaccessibility": "1.4", "maxaccessibility": "sometext"}, ParamMaxAccessibility},
		{map[string]string{"minaccessibility": "x"}, ParamMinAccessibility},
		{map[string]string{"price": "NaN"}, ParamPrice},
		{map[string]string{"price": "Inf"}, ParamPrice},
		{map[string]string{"participants": "1e400"}, ParamParticipants},
		{map[string]string{"key": "1000000", "price": "0,5"}, ParamPrice},
	}
	for _, c := range cases {
		_, err := ParseFilter(c.params)
		if !assert.Error(t, err, "%v", c.params) {
			continue
		}
		assert.True(t, errors.Is(err, ErrInvalidArguments), "%v", c.params)
		var argErr *ArgumentError
		if assert.True(t, errors.As(err, &argErr)) {
			assert.Equal(t, c.param, argErr.Param)
		}
	}
}

func TestFilterMatches(t *testing.T) {
	nap := Activity{Activity: "Take a nap", Type: TypeRelaxation, Participants: 1, Price: 0.3, Key: "3058396", Accessibility: 0.3}

	cases := []struct {
		params  map[string]string
		matches bool
	}{
		{map[string]string{}, true},
		{map[string]string{"key": "3058396"}, true},
		{map[string]string{"key": "305839"}, false},
		{map[string]string{"type": "relaxation", "participants": "1"}, true},
		{map[string]string{"type": "relaxation", "participants": "2"}, false},
		{map[string]string{"participants": "1.5"}, false},
		{map[string]string{"price": "0.3"}, true},
		{map[string]string{"price": "0.30"}, true},
		{map[string]string{"minprice": "0.3", "maxprice": "0.3"}, true},
		{map[string]string{"minprice": "0.1", "maxprice": "0.29"}, false},
		{map[string]string{"minprice": "0.4", "maxprice": "0.2"}, false},
		{map[string]string{"maxprice": "0.3"}, true},
		{map[string]string{"minprice": "0.31"}, false},
		{map[string]string{"price": "0.3", "minprice": "0.5"}, false},
		{map[string]string{"accessibility": "0.3"}, true},
		{map[string]string{"minaccessibility": "0.14", "maxaccessibility": "0.145"}, false},
		{map[string]string{"minaccessibility": "0.2", "maxaccessibility": "0.8"}, true},
	}
	for _, c := range cases {
		filter, err := ParseFilter(c.params)
		if assert.NoError(t, err, "%v", c.params) {
			assert.Equal(t, c.matches, filter.Matches(nap), "%v", c.params)
		}
	}
}

func TestFilterKeyOnly(t *testing.T) {
	assert := assert.New(t)

	f, _ := ParseFilter(map[string]string{"key": "1645485"})
	assert.True(f.KeyOnly())
	f, _ = ParseFilter(map[string]string{"key": "1645485", "unknown": "1"})
	assert.True(f.KeyOnly())
	f, _ = ParseFilter(map[string]string{"key": "1645485", "type": "busywork"})
	assert.False(f.KeyOnly())
	f, _ = ParseFilter(map[string]string{"key": "1645485", "participants": "1.5"})
	assert.False(f.KeyOnly())
	f, _ = ParseFilter(map[string]string{})
	assert.False(f.KeyOnly())
	assert.True(f.IsEmpty())
}
