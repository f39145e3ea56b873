package travel

import (
	"sort"
	"strings"

	"travelbook/models"
)

// SummarizeTravels makes one pass over travels. It never reads from the
// store; callers hand it an already filtered, bounded set.
func SummarizeTravels(travels []models.Travel) *models.TravelStats {
	s := &models.TravelStats{
		ByStatus:         map[models.TravelStatus]int{},
		ByType:           map[models.TravelType]int{},
		BudgetByCurrency: map[string]float64{},
	}
	countries := newRanker()
	ratingSum := 0

	for i := range travels {
		t := &travels[i]
		s.Total++
		s.ByStatus[t.Status]++
		s.ByType[t.Type]++
		s.TotalBudget += t.Budget
		cur := t.Currency
		if cur == "" {
			cur = models.DefaultCurrency
		}
		s.BudgetByCurrency[cur] += t.Budget
		if c := strings.TrimSpace(t.Country); c != "" {
			countries.add(c, 0)
		}
		if t.Rating != nil {
			s.RatedCount++
			ratingSum += *t.Rating
		}
		if t.DurationDays != nil {
			s.TotalPlannedDays += *t.DurationDays
		}
		s.ItineraryCount += len(t.Itineraries)
		for j := range t.Itineraries {
			s.BookingCount += len(t.Itineraries[j].Bookings)
			s.DailyActivityCount += len(t.Itineraries[j].Activities)
		}
	}
	if s.RatedCount > 0 {
		s.AverageRating = float64(ratingSum) / float64(s.RatedCount)
	}
	s.TopCountries = countries.ranked()
	return s
}

// SummarizeDocuments is the document-analytics variant: vendor and currency
// rankings plus monthly spending buckets keyed by the document date.
func SummarizeDocuments(docs []models.TravelDocument) *models.DocumentStats {
	s := &models.DocumentStats{
		TotalByCurrency: map[string]float64{},
		ByCategory:      map[string]int{},
	}
	vendors := newRanker()
	currencies := newRanker()
	months := map[string]*models.MonthBucket{}

	for i := range docs {
		d := &docs[i]
		s.Total++
		cur := d.Currency
		if cur == "" {
			cur = models.DefaultCurrency
		}
		s.TotalByCurrency[cur] += d.Total
		currencies.add(cur, d.Total)
		if v := strings.TrimSpace(d.Vendor); v != "" {
			vendors.add(v, d.Total)
		}
		if d.Category != "" {
			s.ByCategory[d.Category]++
		}

		date, ok := models.ParseDate(d.DocumentDate)
		if !ok {
			s.Undated++
			continue
		}
		key := date.Format("2006-01")
		b, ok := months[key]
		if !ok {
			b = &models.MonthBucket{Month: key, ByCurrency: map[string]float64{}}
			months[key] = b
		}
		b.Count++
		b.ByCurrency[cur] += d.Total
	}

	s.TopVendors = vendors.ranked()
	s.Currencies = currencies.ranked()
	s.Monthly = make([]models.MonthBucket, 0, len(months))
	for _, b := range months {
		s.Monthly = append(s.Monthly, *b)
	}
	sort.Slice(s.Monthly, func(i, j int) bool { return s.Monthly[i].Month < s.Monthly[j].Month })
	return s
}

// ranker counts keys case-insensitively and keeps the first spelling seen.
type ranker struct {
	entries map[string]*models.RankEntry
}

func newRanker() *ranker {
	return &ranker{entries: map[string]*models.RankEntry{}}
}

func (r *ranker) add(key string, amount float64) {
	norm := strings.ToLower(key)
	e, ok := r.entries[norm]
	if !ok {
		e = &models.RankEntry{Key: key}
		r.entries[norm] = e
	}
	e.Count++
	e.Total += amount
}

// ranked orders by count descending, then key ascending.
func (r *ranker) ranked() []models.RankEntry {
	out := make([]models.RankEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
