package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boredclicker/bored"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assert := assert.New(t)

	activities, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(activities)

	byKey := make(map[bored.Key]bored.Activity)
	for _, a := range activities {
		byKey[a.Key] = a
	}
	assert.Equal(bored.Activity{
		Activity:      "Learn a new programming language",
		Type:          bored.TypeEducation,
		Participants:  1,
		Price:         0.1,
		Link:          "",
		Key:           "5881028",
		Accessibility: 0.25,
	}, byKey["5881028"])
	assert.Equal("Make a new friend", byKey["1000000"].Activity)
	assert.Equal("Resolve a problem you've been putting off", byKey["9999999"].Activity)
}

func TestLoadYAML(t *testing.T) {
	assert := assert.New(t)

	const doc = `
- activity: Take a nap
  type: relaxation
  participants: 1
  price: 0
  link: ""
  key: 3058396
  accessibility: 0
- activity: Learn Express.js
  type: education
  participants: 1
  price: 0.1
  link: https://expressjs.com/
  key: "3943506"
  accessibility: 0.25
`
	activities, err := Load(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	if assert.Len(activities, 2) {
		assert.Equal(bored.Key("3058396"), activities[0].Key)
		assert.Equal(bored.TypeEducation, activities[1].Type)
		assert.Equal("https://expressjs.com/", activities[1].Link)
	}
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	const valid = `"activity":"Take a nap","type":"relaxation","participants":1,"price":0,"link":"","accessibility":0`

	cases := []struct {
		name string
		doc  string
	}{
		{"short key", `[{` + valid + `,"key":"588102"}]`},
		{"long key", `[{` + valid + `,"key":"16454855"}]`},
		{"leading zero key", `[{` + valid + `,"key":"0999999"}]`},
		{"text key", `[{` + valid + `,"key":"relaxat"}]`},
		{"unknown type", `[{"activity":"a","type":"sleeping","participants":1,"price":0,"link":"","key":"1234567","accessibility":0}]`},
		{"too many participants", `[{"activity":"a","type":"social","participants":6,"price":0,"link":"","key":"1234567","accessibility":0}]`},
		{"no participants", `[{"activity":"a","type":"social","participants":0,"price":0,"link":"","key":"1234567","accessibility":0}]`},
		{"price over one", `[{"activity":"a","type":"social","participants":1,"price":1.5,"link":"","key":"1234567","accessibility":0}]`},
		{"negative accessibility", `[{"activity":"a","type":"social","participants":1,"price":0,"link":"","key":"1234567","accessibility":-0.1}]`},
		{"bad link", `[{"activity":"a","type":"social","participants":1,"price":0,"link":"not a link","key":"1234567","accessibility":0}]`},
		{"missing activity", `[{"activity":"","type":"social","participants":1,"price":0,"link":"","key":"1234567","accessibility":0}]`},
		{"numeric key", `[{` + valid + `,"key":1234567}]`},
	}
	for _, c := range cases {
		_, err := Load(strings.NewReader(c.doc), FormatJSON)
		assert.Error(t, err, c.name)
	}
}

func TestLoadRejectsDuplicatedKeys(t *testing.T) {
	const doc = `[
		{"activity":"a","type":"social","participants":1,"price":0,"link":"","key":"1234567","accessibility":0},
		{"activity":"b","type":"music","participants":2,"price":0.5,"link":"","key":"1234567","accessibility":0.5}
	]`
	_, err := Load(strings.NewReader(doc), FormatJSON)
	assert.True(t, errors.Is(err, ErrDuplicatedKey))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	err := os.WriteFile(path, []byte("- {activity: Write a song, type: music, participants: 1, price: 0, link: '', key: '5188388', accessibility: 0.1}\n"), 0o644)
	require.NoError(t, err)

	activities, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []bored.Activity{{
		Activity: "Write a song", Type: bored.TypeMusic, Participants: 1, Key: "5188388", Accessibility: 0.1,
	}}, activities)

	_, err = LoadFile(filepath.Join(dir, "catalog.csv"))
	assert.Error(t, err)
}
