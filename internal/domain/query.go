package domain

import "time"

// TaskFilter holds optional task list filters. Nil / empty fields impose no constraint.
type TaskFilter struct {
	Status      *Status
	Priority    *Priority
	AssigneeID  *string
	ProjectID   *string
	MilestoneID *string
	CreatedBy   *string
	Tags        []string // tag names, any-of
	Search      string   // case-insensitive substring of title or description
	DueDateFrom *time.Time
	DueDateTo   *time.Time
	IsOverdue   bool // overrides DueDateFrom/DueDateTo when set
	HasSubtasks *bool
}

type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
	SortDueDate   SortField = "dueDate"
	SortPriority  SortField = "priority"
	SortTitle     SortField = "title"
	SortStatus    SortField = "status"
)

func (f SortField) Valid() bool {
	switch f {
	case SortCreatedAt, SortUpdatedAt, SortDueDate, SortPriority, SortTitle, SortStatus:
		return true
	}
	return false
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

func (o SortOrder) Valid() bool { return o == Asc || o == Desc }

// OrderKey is one element of an ORDER BY list.
type OrderKey struct {
	Field SortField
	Order SortOrder
}

// TaskOrder returns the requested key followed by createdAt desc as a tie-break,
// unless the requested key already is createdAt.
func TaskOrder(field SortField, order SortOrder) []OrderKey {
	if !field.Valid() {
		field = SortCreatedAt
	}
	if !order.Valid() {
		order = Desc
	}
	keys := []OrderKey{{Field: field, Order: order}}
	if field != SortCreatedAt {
		keys = append(keys, OrderKey{Field: SortCreatedAt, Order: Desc})
	}
	return keys
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int { return (p.Number - 1) * p.Limit }

// Pagination is the metadata returned next to a page of results.
type Pagination struct {
	Page        int
	Limit       int
	TotalCount  int
	TotalPages  int
	HasNextPage bool
	HasPrevPage bool
}

func NewPagination(p Page, total int) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Pagination{
		Page:        p.Number,
		Limit:       p.Limit,
		TotalCount:  total,
		TotalPages:  pages,
		HasNextPage: p.Number < pages,
		HasPrevPage: p.Number > 1,
	}
}

// TaskQuery is a full list request: filter, ordering and page.
type TaskQuery struct {
	Filter TaskFilter
	Order  []OrderKey
	Page   Page
}
