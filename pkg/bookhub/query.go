package bookhub

import (
	"net/url"
	"strconv"
)

// Filter is the resource-specific part of a list query. Filters are plain
// comparable values so a list controller can tell whether one actually changed.
type Filter interface {
	comparable
	Apply(values url.Values)
}

// Query is the full list request: a filter plus the page window.
type Query[F Filter] struct {
	Filter   F   `json:"filter"    yaml:"filter"`
	Page     int `json:"page"      yaml:"page"`
	PageSize int `json:"page_size" yaml:"page_size"`
}

// NewQuery creates a query for the first page.
func NewQuery[F Filter](filter F, pageSize int) Query[F] {
	return Query[F]{Filter: filter, PageSize: pageSize}
}

// WithPage returns a copy of the query pointing at page.
func (q Query[F]) WithPage(page int) Query[F] {
	q.Page = page

	return q
}

// ToValues converts the query to URL values.
func (q Query[F]) ToValues() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))

	if q.PageSize > 0 {
		values.Set("size", strconv.Itoa(q.PageSize))
	}

	q.Filter.Apply(values)

	return values
}

func setIfNotEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

// PolicyFilter narrows the policy list. Dates use the 2006-01-02 layout.
type PolicyFilter struct {
	Keyword string     `json:"keyword,omitempty"     yaml:"keyword,omitempty"`
	Type    PolicyType `json:"policy_type,omitempty" yaml:"policy_type,omitempty"`
	Start   string     `json:"start,omitempty"       yaml:"start,omitempty"`
	End     string     `json:"end,omitempty"         yaml:"end,omitempty"`
}

// Apply implements Filter.
func (f PolicyFilter) Apply(values url.Values) {
	setIfNotEmpty(values, "keyword", f.Keyword)
	setIfNotEmpty(values, "policyType", string(f.Type))
	setIfNotEmpty(values, "start", f.Start)
	setIfNotEmpty(values, "end", f.End)
}

// PublisherFilter narrows the publisher list.
type PublisherFilter struct {
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

// Apply implements Filter.
func (f PublisherFilter) Apply(values url.Values) {
	setIfNotEmpty(values, "keyword", f.Keyword)
}

// StockFilter narrows the stock list.
type StockFilter struct {
	Keyword    string          `json:"keyword,omitempty"     yaml:"keyword,omitempty"`
	ActionType StockActionType `json:"action_type,omitempty" yaml:"action_type,omitempty"`
	BranchID   int64           `json:"branch_id,omitempty"   yaml:"branch_id,omitempty"`
}

// Apply implements Filter.
func (f StockFilter) Apply(values url.Values) {
	setIfNotEmpty(values, "keyword", f.Keyword)
	setIfNotEmpty(values, "actionType", string(f.ActionType))

	if f.BranchID > 0 {
		values.Set("branchId", strconv.FormatInt(f.BranchID, 10))
	}
}

// BookFilter narrows the admin book search.
type BookFilter struct {
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

// Apply implements Filter.
func (f BookFilter) Apply(values url.Values) {
	setIfNotEmpty(values, "keyword", f.Keyword)
}

// AuthorFilter narrows the author directory by name.
type AuthorFilter struct {
	Name string `json:"author_name,omitempty" yaml:"author_name,omitempty"`
}

// Apply implements Filter.
func (f AuthorFilter) Apply(values url.Values) {
	setIfNotEmpty(values, "authorName", f.Name)
}
