package travel

import (
	"context"
	"math"
	"strings"
	"time"

	"travelbook/logger"
	"travelbook/models"
)

// Query is the caller-facing list request. Every predicate is optional; the
// zero value lists everything of the twin, newest first.
type Query struct {
	Status        string
	TravelType    string
	Country       string
	City          string
	DateFrom      string
	DateTo        string
	MinRating     *int
	MaxBudget     *float64
	Search        string
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

// Criteria is a validated conjunction of predicates. Zero-valued fields are
// absent and produce no clause at all.
type Criteria struct {
	Status    models.TravelStatus
	Type      models.TravelType
	Country   string
	City      string
	DateFrom  string
	DateTo    string
	MinRating *int
	MaxBudget *float64
	Search    string
}

// Criteria validates the predicate part of q.
func (q Query) Criteria() (Criteria, error) {
	var c Criteria
	var err error
	if s := strings.TrimSpace(q.Status); s != "" {
		if c.Status, err = models.ParseTravelStatus(s); err != nil {
			return c, classify("status filter", err)
		}
	}
	if s := strings.TrimSpace(q.TravelType); s != "" {
		if c.Type, err = models.ParseTravelType(s); err != nil {
			return c, classify("travel type filter", err)
		}
	}
	c.Country = strings.TrimSpace(q.Country)
	c.City = strings.TrimSpace(q.City)
	c.Search = strings.TrimSpace(q.Search)
	if s := strings.TrimSpace(q.DateFrom); s != "" {
		d, ok := models.ParseDate(s)
		if !ok {
			return c, &Error{Kind: KindValidation, Msg: "dateFrom: " + s + " is not a YYYY-MM-DD date"}
		}
		c.DateFrom = d.Format(models.DateLayout)
	}
	if s := strings.TrimSpace(q.DateTo); s != "" {
		d, ok := models.ParseDate(s)
		if !ok {
			return c, &Error{Kind: KindValidation, Msg: "dateTo: " + s + " is not a YYYY-MM-DD date"}
		}
		c.DateTo = d.Format(models.DateLayout)
	}
	if q.MinRating != nil {
		if *q.MinRating < 1 || *q.MinRating > 5 {
			return c, &Error{Kind: KindValidation, Msg: "minRating: must be between 1 and 5"}
		}
		r := *q.MinRating
		c.MinRating = &r
	}
	if q.MaxBudget != nil {
		if math.IsNaN(*q.MaxBudget) || math.IsInf(*q.MaxBudget, 0) {
			return c, &Error{Kind: KindValidation, Msg: "maxBudget: must be a finite number"}
		}
		b := *q.MaxBudget
		c.MaxBudget = &b
	}
	return c, nil
}

// Matches evaluates c in memory with the same semantics the document store
// applies to the generated filter.
func (c Criteria) Matches(t *models.Travel) bool {
	if c.Status != "" && t.Status != c.Status {
		return false
	}
	if c.Type != "" && t.Type != c.Type {
		return false
	}
	if c.Country != "" && !containsFold(t.Country, c.Country) {
		return false
	}
	if c.City != "" && !containsFold(t.City, c.City) {
		return false
	}
	if c.DateFrom != "" && (t.StartDate == "" || t.StartDate < c.DateFrom) {
		return false
	}
	if c.DateTo != "" && (t.StartDate == "" || t.StartDate > c.DateTo) {
		return false
	}
	if c.MinRating != nil && (t.Rating == nil || *t.Rating < *c.MinRating) {
		return false
	}
	if c.MaxBudget != nil && t.Budget > *c.MaxBudget {
		return false
	}
	if c.Search != "" {
		hit := containsFold(t.Title, c.Search) ||
			containsFold(t.Description, c.Search) ||
			containsFold(t.Notes, c.Search) ||
			containsFold(t.Activities, c.Search)
		if !hit {
			return false
		}
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Sort resolves the requested ordering. Unknown keys fall back to creation
// date, newest first. Without an explicit direction creation date sorts
// descending and every other key ascending.
func (q Query) Sort() (SortKey, bool) {
	dir := strings.ToLower(strings.TrimSpace(q.SortDirection))
	key := SortKey(strings.ToLower(strings.TrimSpace(q.SortBy)))
	switch key {
	case SortStartDate, SortTitle, SortBudget, SortRating:
		return key, dir == "desc"
	case SortCreatedAt:
		return key, dir != "asc"
	}
	return SortCreatedAt, true
}

// Compare orders a before b under key, with the travel id as tie breaker so
// that pagination windows never overlap.
func Compare(a, b *models.Travel, key SortKey, desc bool) int {
	c := compareKey(a, b, key)
	if desc {
		c = -c
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func compareKey(a, b *models.Travel, key SortKey) int {
	switch key {
	case SortStartDate:
		return strings.Compare(a.StartDate, b.StartDate)
	case SortTitle:
		return strings.Compare(a.Title, b.Title)
	case SortBudget:
		return compareFloat(a.Budget, b.Budget)
	case SortRating:
		return compareRating(a.Rating, b.Rating)
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareRating(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return compareFloat(float64(*a), float64(*b))
}

// Page is one window of a filtered, sorted travel list.
type Page struct {
	Travels    []models.Travel `json:"travels"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// Queries runs filtered listings and statistics over root travel documents.
type Queries struct {
	store Store
	opts  Options
	log   *logger.Logger
}

func NewQueries(store Store, opts Options, log *logger.Logger) *Queries {
	return &Queries{store: store, opts: opts.withDefaults(), log: log}
}

// Window clamps page and size: page is 1-indexed, size defaults to the
// configured default and never exceeds the configured maximum. Pages past
// the end simply come back empty.
func (o Options) Window(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = o.DefaultPageSize
	}
	if size > o.MaxPageSize {
		size = o.MaxPageSize
	}
	// keep (page-1)*size representable
	if last := math.MaxInt / size; page > last {
		page = last
	}
	return page, size
}

// List returns the requested page together with the size of the whole
// filtered set.
func (qs *Queries) List(ctx context.Context, twinID string, q Query) (*Page, error) {
	crit, err := q.Criteria()
	if err != nil {
		return nil, err
	}
	page, size := qs.opts.Window(q.Page, q.PageSize)
	key, desc := q.Sort()

	ctx, cancel := context.WithTimeout(ctx, qs.opts.StoreTimeout)
	defer cancel()

	total, err := qs.store.Count(ctx, twinID, crit)
	if err != nil {
		return nil, classify("count travels", err)
	}
	travels, err := qs.store.Find(ctx, twinID, FindOptions{
		Criteria:   crit,
		SortBy:     key,
		Descending: desc,
		Skip:       (page - 1) * size,
		Limit:      size,
	})
	if err != nil {
		return nil, classify("find travels", err)
	}
	for i := range travels {
		travels[i].Normalize()
	}
	if travels == nil {
		travels = []models.Travel{}
	}
	qs.log.Debug("listed travels", "twinId", twinID, "total", total, "page", page, "pageSize", size, "sortBy", key)

	return &Page{
		Travels:    travels,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: int((total + int64(size) - 1) / int64(size)),
	}, nil
}

// Stats aggregates over the full filtered set, independent of pagination.
// At most StatsScanLimit travels are read.
func (qs *Queries) Stats(ctx context.Context, twinID string, q Query) (*models.TravelStats, error) {
	crit, err := q.Criteria()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, qs.opts.StoreTimeout)
	defer cancel()

	travels, err := qs.store.Find(ctx, twinID, FindOptions{
		Criteria:   crit,
		SortBy:     SortCreatedAt,
		Descending: true,
		Limit:      qs.opts.StatsScanLimit + 1,
	})
	if err != nil {
		return nil, classify("find travels", err)
	}
	truncated := len(travels) > qs.opts.StatsScanLimit
	if truncated {
		travels = travels[:qs.opts.StatsScanLimit]
		qs.log.Warn("stats scan limit reached", "twinId", twinID, "limit", qs.opts.StatsScanLimit)
	}
	stats := SummarizeTravels(travels)
	stats.Truncated = truncated
	return stats, nil
}

// Options configures the repository, editor and query engine.
type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	WriteRetries    int
	StatsScanLimit  int
	StoreTimeout    time.Duration
	Now             func() time.Time
	NewID           func() string
}

func (o Options) withDefaults() Options {
	if o.DefaultPageSize < 1 {
		o.DefaultPageSize = 20
	}
	if o.MaxPageSize < 1 {
		o.MaxPageSize = 100
	}
	if o.DefaultPageSize > o.MaxPageSize {
		o.DefaultPageSize = o.MaxPageSize
	}
	if o.WriteRetries < 1 {
		o.WriteRetries = 3
	}
	if o.StatsScanLimit < 1 {
		o.StatsScanLimit = 5000
	}
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = 5 * time.Second
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.NewID == nil {
		o.NewID = newID
	}
	return o
}
