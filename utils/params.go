package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"travelbook/travel"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads a bounded JSON body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &travel.Error{Kind: travel.KindValidation, Msg: "invalid request body: " + err.Error()}
	}
	return nil
}

// first returns the first non-empty value among the given parameter names.
func first(q url.Values, names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(q.Get(n)); v != "" {
			return v
		}
	}
	return ""
}

func badParam(name, raw, want string) error {
	return &travel.Error{Kind: travel.KindValidation, Msg: fmt.Sprintf("%s: %q is not %s", name, raw, want)}
}

// ParseTravelQuery reads the list parameters. Both camelCase and dashed
// names are accepted.
func ParseTravelQuery(r *http.Request) (travel.Query, error) {
	q := r.URL.Query()
	out := travel.Query{
		Status:        first(q, "status"),
		TravelType:    first(q, "travelType", "travel-type"),
		Country:       first(q, "country", "destination-country"),
		City:          first(q, "city", "destination-city"),
		DateFrom:      first(q, "dateFrom", "date-from"),
		DateTo:        first(q, "dateTo", "date-to"),
		Search:        first(q, "search", "search-term"),
		SortBy:        first(q, "sortBy", "sort-by"),
		SortDirection: first(q, "sortDirection", "sort-direction"),
	}

	if raw := first(q, "minRating", "min-rating"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return out, badParam("minRating", raw, "an integer")
		}
		out.MinRating = &v
	}
	if raw := first(q, "maxBudget", "max-budget"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return out, badParam("maxBudget", raw, "a finite number")
		}
		out.MaxBudget = &v
	}
	if raw := first(q, "page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return out, badParam("page", raw, "an integer")
		}
		out.Page = v
	}
	if raw := first(q, "pageSize", "page-size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return out, badParam("pageSize", raw, "an integer")
		}
		out.PageSize = v
	}
	return out, nil
}
