package repositories

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func TestParseQueryOptions_Defaults(t *testing.T) {
	opts := ParseQueryOptions(url.Values{})

	if opts.Page != DefaultPage || opts.Limit != DefaultLimit {
		t.Errorf("defaults = page %d limit %d, want %d/%d", opts.Page, opts.Limit, DefaultPage, DefaultLimit)
	}
	if opts.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", opts.Offset())
	}
	if len(opts.Sort) != 0 || len(opts.Select) != 0 || len(opts.Filters) != 0 {
		t.Errorf("empty query produced non-empty options: %+v", opts)
	}
}

func TestParseQueryOptions_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"second page", "page=2&limit=5", 2, 5, 5},
		{"deep page", "page=4&limit=25", 4, 25, 75},
		{"garbage page falls back", "page=abc&limit=5", 1, 5, 0},
		{"zero page falls back", "page=0", 1, 10, 0},
		{"negative limit falls back", "limit=-3", 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery() error = %v", err)
			}
			opts := ParseQueryOptions(values)
			if opts.Page != tt.wantPage || opts.Limit != tt.wantLimit {
				t.Errorf("page/limit = %d/%d, want %d/%d", opts.Page, opts.Limit, tt.wantPage, tt.wantLimit)
			}
			if opts.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", opts.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestParseQueryOptions_Sort(t *testing.T) {
	values, _ := url.ParseQuery("sort=-date,title")
	opts := ParseQueryOptions(values)

	want := []SortField{{Field: "date", Desc: true}, {Field: "title"}}
	if !reflect.DeepEqual(opts.Sort, want) {
		t.Errorf("Sort = %+v, want %+v", opts.Sort, want)
	}
}

func TestParseQueryOptions_Select(t *testing.T) {
	values, _ := url.ParseQuery("select=title,venue, town")
	opts := ParseQueryOptions(values)

	want := []string{"title", "venue", "town"}
	if !reflect.DeepEqual(opts.Select, want) {
		t.Errorf("Select = %v, want %v", opts.Select, want)
	}
}

func TestParseQueryOptions_Filters(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Filter
	}{
		{"bare key is equality", "town=Leeds", Filter{Field: "town", Op: "eq", Value: "Leeds"}},
		{"gte suffix", "price[gte]=1000", Filter{Field: "price", Op: "gte", Value: "1000"}},
		{"ne suffix", "isSoldOut[ne]=true", Filter{Field: "isSoldOut", Op: "ne", Value: "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery() error = %v", err)
			}
			opts := ParseQueryOptions(values)
			if len(opts.Filters) != 1 {
				t.Fatalf("Filters = %+v, want exactly one", opts.Filters)
			}
			if opts.Filters[0] != tt.want {
				t.Errorf("Filter = %+v, want %+v", opts.Filters[0], tt.want)
			}
		})
	}
}

func TestParseQueryOptions_UnknownOperatorIgnored(t *testing.T) {
	values, _ := url.ParseQuery("price[between]=5")
	opts := ParseQueryOptions(values)
	if len(opts.Filters) != 0 {
		t.Errorf("unknown operator produced a filter: %+v", opts.Filters)
	}
}

func TestSplitFilterKey(t *testing.T) {
	tests := []struct {
		key       string
		wantField string
		wantOp    string
	}{
		{"price[gte]", "price", "gte"},
		{"price", "price", "eq"},
		{"quantity[lt]", "quantity", "lt"},
		{"[weird]", "[weird]", "eq"},
	}

	for _, tt := range tests {
		field, op := splitFilterKey(tt.key)
		if field != tt.wantField || op != tt.wantOp {
			t.Errorf("splitFilterKey(%q) = (%q, %q), want (%q, %q)", tt.key, field, op, tt.wantField, tt.wantOp)
		}
	}
}

func TestBuildListQuery(t *testing.T) {
	columns := map[string]string{
		"price":    "price",
		"quantity": "quantity",
		"name":     "name",
	}

	opts := QueryOptions{
		Page:  2,
		Limit: 5,
		Filters: []Filter{
			{Field: "price", Op: "gte", Value: "1000"},
			{Field: "secret", Op: "eq", Value: "x"}, // not whitelisted
		},
		Sort: []SortField{
			{Field: "price", Desc: true},
			{Field: "owner"}, // not whitelisted
		},
	}

	query, args := buildListQuery("SELECT id, name FROM", "tickets", columns, opts)

	if !strings.Contains(query, "WHERE price >= $1") {
		t.Errorf("query missing whitelisted filter: %s", query)
	}
	if strings.Contains(query, "secret") || strings.Contains(query, "owner") {
		t.Errorf("query interpolated a non-whitelisted field: %s", query)
	}
	if !strings.Contains(query, "ORDER BY price DESC") {
		t.Errorf("query missing sort clause: %s", query)
	}
	if !strings.Contains(query, "LIMIT $2 OFFSET $3") {
		t.Errorf("query missing pagination placeholders: %s", query)
	}

	want := []interface{}{1000, 5, 5}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestBuildListQuery_NoOptions(t *testing.T) {
	query, args := buildListQuery("SELECT id FROM", "events", map[string]string{}, QueryOptions{Page: 1, Limit: 10})

	if strings.Contains(query, "WHERE") {
		t.Errorf("query has a WHERE clause without filters: %s", query)
	}
	if !strings.Contains(query, "ORDER BY id ASC") {
		t.Errorf("query missing default ordering: %s", query)
	}
	want := []interface{}{10, 0}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestCoerceFilterValue(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"42", 42},
		{"3.5", 3.5},
		{"true", true},
		{"Leeds", "Leeds"},
	}

	for _, tt := range tests {
		if got := coerceFilterValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("coerceFilterValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
