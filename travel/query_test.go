package travel

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelbook/models"
)

func seedTravels(t *testing.T, f *fixture) []*models.Travel {
	t.Helper()
	inputs := []models.TravelInput{
		{Title: "Paris", Country: "France", City: "Paris", Type: "vacation", Status: "completed", StartDate: "2023-05-01", EndDate: "2023-05-08", Budget: 2500, Rating: intPtr(5), Notes: "croissants"},
		{Title: "Lyon", Country: "France", City: "Lyon", Type: "business", Status: "completed", StartDate: "2023-09-10", EndDate: "2023-09-12", Budget: 800, Rating: intPtr(3)},
		{Title: "Tokyo", Country: "Japan", City: "Tokyo", Type: "vacation", Status: "planning", StartDate: "2024-10-01", EndDate: "2024-10-15", Budget: 5000},
		{Title: "Kyoto", Country: "Japan", City: "Kyoto", Type: "cultural", Status: "completed", StartDate: "2022-04-01", EndDate: "2022-04-04", Budget: 1200, Rating: intPtr(4), Activities: "temples and gardens"},
		{Title: "Lima", Country: "Peru", City: "Lima", Type: "vacation", Status: "cancelled", Budget: 1500},
		{Title: "Cusco", Country: "Peru", City: "Cusco", Type: "adventure", Status: "completed", StartDate: "2021-07-01", EndDate: "2021-07-10", Budget: 2100, Rating: intPtr(5), Description: "Machu Picchu trek"},
		{Title: "Berlin", Country: "Germany", City: "Berlin", Type: "business", Status: "confirmed", StartDate: "2024-11-03", Budget: 600},
		{Title: "Munich", Country: "Germany", City: "Munich", Type: "vacation", Status: "completed", StartDate: "2023-10-01", EndDate: "2023-10-03", Budget: 900, Rating: intPtr(2)},
		{Title: "Paris", Country: "France", City: "Paris", Type: "family", Status: "planning", StartDate: "2025-02-01", Budget: 3000},
		{Title: "Nice", Country: "France", City: "Nice", Type: "vacation", Status: "completed", StartDate: "2022-08-01", EndDate: "2022-08-07", Budget: 1900, Rating: intPtr(4)},
		{Title: "Quito", Country: "Ecuador", City: "Quito", Type: "other", Budget: 700},
	}
	out := make([]*models.Travel, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, f.create(t, in))
	}
	// another twin's travel must never show up
	_, err := f.repo.Create(context.Background(), "twin-2", models.TravelInput{Title: "Paris", Country: "France", Status: "completed", Type: "vacation"})
	require.NoError(t, err)
	return out
}

func listIDs(t *testing.T, f *fixture, q Query) []string {
	t.Helper()
	q.PageSize = 100
	page, err := f.queries.List(context.Background(), twin, q)
	require.NoError(t, err)
	ids := make([]string, 0, len(page.Travels))
	for _, tr := range page.Travels {
		ids = append(ids, tr.ID)
	}
	return ids
}

func intersect(a, b []string) []string {
	in := map[string]bool{}
	for _, v := range b {
		in[v] = true
	}
	out := []string{}
	for _, v := range a {
		if in[v] {
			out = append(out, v)
		}
	}
	return out
}

func TestFilterConjunction(t *testing.T) {
	f := newFixture(t)
	seedTravels(t, f)

	pairs := []struct {
		name string
		a, b Query
	}{
		{"status and type", Query{Status: "completed"}, Query{TravelType: "vacation"}},
		{"country and rating", Query{Country: "fran"}, Query{MinRating: intPtr(4)}},
		{"search and budget", Query{Search: "PARIS"}, Query{MaxBudget: floatPtr(2600)}},
		{"dates and city", Query{DateFrom: "2023-01-01", DateTo: "2023-12-31"}, Query{City: "u"}},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			both := p.a
			both.TravelType = p.b.TravelType
			both.MinRating = p.b.MinRating
			both.MaxBudget = p.b.MaxBudget
			both.City = p.b.City

			want := intersect(listIDs(t, f, p.a), listIDs(t, f, p.b))
			assert.ElementsMatch(t, want, listIDs(t, f, both))
		})
	}
}

func TestFilterSemantics(t *testing.T) {
	f := newFixture(t)
	seedTravels(t, f)

	assert.Len(t, listIDs(t, f, Query{}), 11)
	assert.Len(t, listIDs(t, f, Query{Status: "completed", TravelType: "vacation"}), 3)
	assert.Len(t, listIDs(t, f, Query{Country: "JAPAN"}), 2)
	// unrated travels never satisfy a rating floor
	assert.Len(t, listIDs(t, f, Query{MinRating: intPtr(1)}), 6)
	// travels without a start date fall outside any date bound
	assert.Len(t, listIDs(t, f, Query{DateFrom: "2000-01-01"}), 9)
	assert.Len(t, listIDs(t, f, Query{Search: "machu"}), 1)
	assert.Len(t, listIDs(t, f, Query{Search: "gardens"}), 1)
	assert.Len(t, listIDs(t, f, Query{Search: "croissant"}), 1)
}

func TestInvalidFiltersAreRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for name, q := range map[string]Query{
		"status":     {Status: "sometime"},
		"type":       {TravelType: "cruise"},
		"date":       {DateFrom: "yesterday"},
		"minRating":  {MinRating: intPtr(0)},
		"nan budget": {MaxBudget: floatPtr(math.NaN())},
		"inf budget": {MaxBudget: floatPtr(math.Inf(1))},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.queries.List(ctx, twin, q)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestPaginationCoversFullSet(t *testing.T) {
	f := newFixture(t)
	seedTravels(t, f)
	ctx := context.Background()

	for _, sortBy := range []string{"title", "budget", "rating", "start-date", "creation-date"} {
		t.Run(sortBy, func(t *testing.T) {
			full := listIDs(t, f, Query{SortBy: sortBy})

			var paged []string
			seen := map[string]bool{}
			first, err := f.queries.List(ctx, twin, Query{SortBy: sortBy, Page: 1, PageSize: 3})
			require.NoError(t, err)
			assert.Equal(t, int64(11), first.Total)
			assert.Equal(t, 4, first.TotalPages)

			for p := 1; p <= first.TotalPages; p++ {
				page, err := f.queries.List(ctx, twin, Query{SortBy: sortBy, Page: p, PageSize: 3})
				require.NoError(t, err)
				for _, tr := range page.Travels {
					assert.False(t, seen[tr.ID], "duplicate %s on page %d", tr.ID, p)
					seen[tr.ID] = true
					paged = append(paged, tr.ID)
				}
			}
			assert.Equal(t, full, paged)
		})
	}
}

func TestPageSizeIsCapped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	page, err := f.queries.List(ctx, twin, Query{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, 1, page.Page)
	assert.NotNil(t, page.Travels)

	page, err = f.queries.List(ctx, twin, Query{Page: -4})
	require.NoError(t, err)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 1, page.Page)
}

func TestPagesPastTheEndAreEmpty(t *testing.T) {
	f := newFixture(t)
	seedTravels(t, f)
	ctx := context.Background()

	for _, p := range []int{math.MaxInt, math.MaxInt / 2, math.MaxInt/100 + 1} {
		page, err := f.queries.List(ctx, twin, Query{Page: p, PageSize: 100})
		require.NoError(t, err, p)
		assert.Empty(t, page.Travels)
		assert.Equal(t, int64(11), page.Total)
		assert.Equal(t, math.MaxInt/100, page.Page)
	}

	page, err := f.queries.List(ctx, twin, Query{Page: 3, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, page.Travels, 1)
}

func TestMemoryStoreRejectsNegativeWindow(t *testing.T) {
	_, err := NewMemoryStore().Find(context.Background(), twin, FindOptions{Skip: -100, Limit: 10})
	assert.Error(t, err)
}

func TestSortOrder(t *testing.T) {
	f := newFixture(t)
	seeded := seedTravels(t, f)

	newestFirst := make([]string, 0, len(seeded))
	for i := len(seeded) - 1; i >= 0; i-- {
		newestFirst = append(newestFirst, seeded[i].ID)
	}
	assert.Equal(t, newestFirst, listIDs(t, f, Query{}))
	assert.Equal(t, newestFirst, listIDs(t, f, Query{SortBy: "colour", SortDirection: "asc"}))

	page, err := f.queries.List(context.Background(), twin, Query{SortBy: "budget", SortDirection: "desc", PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, page.Travels[0].Budget)
	assert.Equal(t, 3000.0, page.Travels[1].Budget)

	page, err = f.queries.List(context.Background(), twin, Query{SortBy: "rating"})
	require.NoError(t, err)
	assert.Nil(t, page.Travels[0].Rating)
	last := page.Travels[len(page.Travels)-1]
	require.NotNil(t, last.Rating)
	assert.Equal(t, 5, *last.Rating)
}

func TestStatsCoverTheFullFilteredSet(t *testing.T) {
	f := newFixture(t)
	seedTravels(t, f)
	ctx := context.Background()

	q := Query{Country: "france", Page: 2, PageSize: 1}
	page, err := f.queries.List(ctx, twin, q)
	require.NoError(t, err)

	stats, err := f.queries.Stats(ctx, twin, q)
	require.NoError(t, err)
	assert.Equal(t, int(page.Total), stats.Total)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 8200.0, stats.TotalBudget)
	assert.Equal(t, 3, stats.RatedCount)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.0001)
	assert.False(t, stats.Truncated)
}

func TestStatsReportsTruncation(t *testing.T) {
	store := NewMemoryStore()
	f := newFixtureWith(t, store, nil)
	f.queries = NewQueries(store, Options{StatsScanLimit: 2}, f.repo.agg.log)
	for _, title := range []string{"a", "b", "c"} {
		f.create(t, models.TravelInput{Title: title, Budget: 10})
	}

	stats, err := f.queries.Stats(context.Background(), twin, Query{})
	require.NoError(t, err)
	assert.True(t, stats.Truncated)
	assert.Equal(t, 2, stats.Total)
}
