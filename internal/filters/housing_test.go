package filters

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHousingFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, f HousingFilter)
	}{
		{
			name:  "empty",
			query: "",
			check: func(t *testing.T, f HousingFilter) {
				assertUnbounded(t, f)
			},
		},
		{
			name:  "closed price range",
			query: "minPrice=100&maxPrice=500.5",
			check: func(t *testing.T, f HousingFilter) {
				min, ok := f.Price().Min()
				assert.True(t, ok)
				assert.Equal(t, 100.0, min)
				max, ok := f.Price().Max()
				assert.True(t, ok)
				assert.Equal(t, 500.5, max)
				assert.False(t, f.Rooms().IsSet())
				assert.False(t, f.Bathrooms().IsSet())
			},
		},
		{
			name:  "half open rooms",
			query: "minRooms=2",
			check: func(t *testing.T, f HousingFilter) {
				min, ok := f.Rooms().Min()
				assert.True(t, ok)
				assert.Equal(t, 2, min)
				_, ok = f.Rooms().Max()
				assert.False(t, ok)
			},
		},
		{
			name:  "zero bound is present",
			query: "maxBathrooms=0",
			check: func(t *testing.T, f HousingFilter) {
				max, ok := f.Bathrooms().Max()
				assert.True(t, ok)
				assert.Equal(t, 0, max)
			},
		},
		{
			name:  "malformed numbers are ignored",
			query: "minPrice=abc&maxRooms=2.5&minBathrooms=&maxPrice=NaN&available=maybe",
			check: func(t *testing.T, f HousingFilter) {
				assertUnbounded(t, f)
			},
		},
		{
			name:  "available and address",
			query: "available=true&address=%20Providencia%20",
			check: func(t *testing.T, f HousingFilter) {
				v, ok := f.Available()
				assert.True(t, ok)
				assert.True(t, v)
				a, ok := f.Address()
				assert.True(t, ok)
				assert.Equal(t, "Providencia", a)
			},
		},
		{
			name:  "blank address is absent",
			query: "address=%20%20",
			check: func(t *testing.T, f HousingFilter) {
				_, ok := f.Address()
				assert.False(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			tt.check(t, HousingFromQuery(q))
		})
	}
}

func TestHousingBuilder_Immutable(t *testing.T) {
	base := NewHousingBuilder().MinPrice(100)
	cheap := base.MaxPrice(200).Build()
	open := base.Build()

	_, ok := open.Price().Max()
	assert.False(t, ok, "deriving a builder must not change the original")

	max, ok := cheap.Price().Max()
	assert.True(t, ok)
	assert.Equal(t, 200.0, max)
}

func assertUnbounded(t *testing.T, f HousingFilter) {
	t.Helper()
	_, ok := f.Available()
	assert.False(t, ok)
	assert.False(t, f.Price().IsSet())
	assert.False(t, f.Rooms().IsSet())
	assert.False(t, f.Bathrooms().IsSet())
	_, ok = f.Address()
	assert.False(t, ok)
}
