package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atinyakov/storefront/internal/models"
)

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

var sample = []models.Product{
	{ID: "1", Name: "iPhone", Price: "$101.00"},
	{ID: "2", Name: "MacBook Pro", Price: "$2,000.00", Special: "$1,800.00"},
	{ID: "3", Name: "AirPods", Price: "$122.00"},
	{ID: "4", Name: "iPod Classic", Price: "$101.00"},
}

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"iPhone", "MacBook Pro", "AirPods", "iPod Classic"}},
		{"   ", []string{"iPhone", "MacBook Pro", "AirPods", "iPod Classic"}},
		{"IP", []string{"iPhone", "iPod Classic"}},
		{"book", []string{"MacBook Pro"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterProducts(sample, tt.query)))
		})
	}
}

func TestFilterCategories(t *testing.T) {
	cats := []models.Category{{Name: "Desktops"}, {Name: "Laptops & Notebooks"}, {Name: "Phones & PDAs"}}

	got := FilterCategories(cats, "tops")
	assert.Len(t, got, 2)
	assert.Equal(t, cats, FilterCategories(cats, ""))
	assert.Empty(t, FilterCategories(cats, "cameras"))
}

func TestSortProducts(t *testing.T) {
	t.Run("name asc", func(t *testing.T) {
		assert.Equal(t, []string{"AirPods", "iPhone", "iPod Classic", "MacBook Pro"},
			names(SortProducts(sample, SortByName, Asc)))
	})
	t.Run("price asc is stable", func(t *testing.T) {
		assert.Equal(t, []string{"iPhone", "iPod Classic", "AirPods", "MacBook Pro"},
			names(SortProducts(sample, SortByPrice, Asc)))
	})
	t.Run("price desc", func(t *testing.T) {
		assert.Equal(t, []string{"MacBook Pro", "AirPods", "iPhone", "iPod Classic"},
			names(SortProducts(sample, SortByPrice, Desc)))
	})
	t.Run("unknown key", func(t *testing.T) {
		assert.Equal(t, names(sample), names(SortProducts(sample, "rating", Asc)))
	})
	t.Run("input untouched", func(t *testing.T) {
		_ = SortProducts(sample, SortByName, Desc)
		assert.Equal(t, "iPhone", sample[0].Name)
	})
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"$122.00", 122, true},
		{"1,202.50€", 1202.5, true},
		{"98", 98, true},
		{"", 0, false},
		{"free", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestEffectivePrice(t *testing.T) {
	assert.Equal(t, 1800.0, EffectivePrice(sample[1]))
	assert.Equal(t, 101.0, EffectivePrice(sample[0]))
}

func TestRecentSearches(t *testing.T) {
	r := NewRecentSearches(3, "iPhone", "MacBook")
	assert.Equal(t, []string{"iPhone", "MacBook"}, r.List())

	r.Add("AirPods")
	assert.Equal(t, []string{"AirPods", "iPhone", "MacBook"}, r.List())

	r.Add("iPad")
	assert.Equal(t, []string{"iPad", "AirPods", "iPhone"}, r.List(), "bounded")

	r.Add("iPhone")
	assert.Equal(t, []string{"iPhone", "iPad", "AirPods"}, r.List(), "repeat moves to front")

	r.Add("  ")
	assert.Len(t, r.List(), 3)

	r.Remove("iPad")
	assert.Equal(t, []string{"iPhone", "AirPods"}, r.List())

	r.Clear()
	assert.Empty(t, r.List())
}

func TestRecentSearches_DefaultLimit(t *testing.T) {
	r := NewRecentSearches(0)
	for _, q := range []string{"a", "b", "c", "d", "e", "f"} {
		r.Add(q)
	}
	assert.Equal(t, []string{"f", "e", "d", "c", "b"}, r.List())
}
