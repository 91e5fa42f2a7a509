package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_ListsEveryFixture(t *testing.T) {
	names, err := NewLoader().List()
	require.NoError(t, err)

	for _, want := range []string{Hospitals, Categories, Departments, Ratings, Dimensions, User, Favorites, Messages} {
		assert.Contains(t, names, want)
	}
}

func TestLoader_DecodeReturnsFreshValues(t *testing.T) {
	l := NewLoader()

	var first []map[string]interface{}
	require.NoError(t, l.Decode(Hospitals, &first))
	require.Len(t, first, 7)
	first[0]["name"] = "changed"

	var second []map[string]interface{}
	require.NoError(t, l.Decode(Hospitals, &second))
	assert.Equal(t, "北京协和医院", second[0]["name"])
}

func TestLoader_MissingFixture(t *testing.T) {
	l := NewLoader()

	_, err := l.Load("nope.json")
	assert.Error(t, err)

	assert.Panics(t, func() {
		var v interface{}
		l.MustDecode("nope.json", &v)
	})
}
