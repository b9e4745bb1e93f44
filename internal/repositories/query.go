package repositories

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Pagination defaults applied when the client omits page/limit.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// reservedParams are query parameters with pipeline meaning; every other
// parameter is treated as a field filter.
var reservedParams = map[string]bool{
	"page":   true,
	"limit":  true,
	"sort":   true,
	"select": true,
}

// filterOps maps the operator suffix of a parameter key (e.g. price[gte])
// to its SQL comparison operator.
var filterOps = map[string]string{
	"eq":  "=",
	"ne":  "<>",
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// SortField is one element of a sort specification
type SortField struct {
	Field string
	Desc  bool
}

// Filter is a single field comparison parsed from the query string
type Filter struct {
	Field string
	Op    string // key into filterOps
	Value string
}

// QueryOptions captures the generic list-endpoint parameters: pagination,
// sorting, field selection and field-match filters. It is produced from a
// raw query string and consumed by the repository list queries; the whole
// pipeline is read-only.
type QueryOptions struct {
	Page    int
	Limit   int
	Sort    []SortField
	Select  []string
	Filters []Filter
}

// Offset returns the number of rows to skip for the requested page
func (o QueryOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// ParseQueryOptions builds QueryOptions from URL query parameters.
// Unparseable page/limit values fall back to the defaults. A key of the
// form "field[op]" selects a comparison operator; a bare key is an equality
// match. Unknown operator suffixes are ignored.
func ParseQueryOptions(values url.Values) QueryOptions {
	opts := QueryOptions{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}

	if sort := values.Get("sort"); sort != "" {
		for _, field := range strings.Split(sort, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if strings.HasPrefix(field, "-") {
				opts.Sort = append(opts.Sort, SortField{Field: field[1:], Desc: true})
			} else {
				opts.Sort = append(opts.Sort, SortField{Field: field})
			}
		}
	}

	if sel := values.Get("select"); sel != "" {
		for _, field := range strings.Split(sel, ",") {
			if field = strings.TrimSpace(field); field != "" {
				opts.Select = append(opts.Select, field)
			}
		}
	}

	for key, vals := range values {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		field, op := splitFilterKey(key)
		if _, ok := filterOps[op]; !ok {
			continue
		}
		opts.Filters = append(opts.Filters, Filter{Field: field, Op: op, Value: vals[0]})
	}

	return opts
}

// splitFilterKey separates "price[gte]" into ("price", "gte"). A key
// without a bracket suffix is an equality filter.
func splitFilterKey(key string) (string, string) {
	open := strings.Index(key, "[")
	if open > 0 && strings.HasSuffix(key, "]") {
		return key[:open], key[open+1 : len(key)-1]
	}
	return key, "eq"
}

// buildListQuery assembles the filtered, sorted, paginated SELECT for a
// list endpoint. columns maps exposed field names to SQL columns and acts
// as the whitelist: filters and sort fields that name an unknown field are
// dropped rather than interpolated. selectClause and table are trusted
// literals owned by the calling repository.
func buildListQuery(selectClause, table string, columns map[string]string, opts QueryOptions) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	for _, f := range opts.Filters {
		column, ok := columns[f.Field]
		if !ok {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s %s $%d", column, filterOps[f.Op], argIndex))
		args = append(args, coerceFilterValue(f.Value))
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var orderFields []string
	for _, s := range opts.Sort {
		column, ok := columns[s.Field]
		if !ok {
			continue
		}
		direction := "ASC"
		if s.Desc {
			direction = "DESC"
		}
		orderFields = append(orderFields, fmt.Sprintf("%s %s", column, direction))
	}
	// Unspecified sort falls back to insertion order.
	orderBy := "ORDER BY id ASC"
	if len(orderFields) > 0 {
		orderBy = "ORDER BY " + strings.Join(orderFields, ", ")
	}

	query := fmt.Sprintf(`
		%s
		FROM %s
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		selectClause, table, whereClause, orderBy, argIndex, argIndex+1)

	args = append(args, opts.Limit, opts.Offset())

	return query, args
}

// coerceFilterValue converts a raw query-string value into the Go type most
// likely to match the column, so the driver sends a typed parameter.
func coerceFilterValue(value string) interface{} {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}
