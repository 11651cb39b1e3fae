package domain

import (
	"reflect"
	"testing"
)

func TestTaskOrder(t *testing.T) {
	tests := []struct {
		name  string
		field SortField
		order SortOrder
		want  []OrderKey
	}{
		{"created only", SortCreatedAt, Asc, []OrderKey{{SortCreatedAt, Asc}}},
		{"title gets tie-break", SortTitle, Asc, []OrderKey{{SortTitle, Asc}, {SortCreatedAt, Desc}}},
		{"priority desc", SortPriority, Desc, []OrderKey{{SortPriority, Desc}, {SortCreatedAt, Desc}}},
		{"invalid falls back", SortField("bogus"), SortOrder("up"), []OrderKey{{SortCreatedAt, Desc}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaskOrder(tt.field, tt.order)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("TaskOrder(%q, %q) = %v, want %v", tt.field, tt.order, got, tt.want)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit, total int
		wantPages          int
		wantNext, wantPrev bool
	}{
		{1, 20, 45, 3, true, false},
		{2, 20, 45, 3, true, true},
		{3, 20, 45, 3, false, true},
		{1, 20, 0, 0, false, false},
		{1, 20, 20, 1, false, false},
	}
	for _, tt := range tests {
		p := NewPagination(Page{Number: tt.page, Limit: tt.limit}, tt.total)
		if p.TotalPages != tt.wantPages || p.HasNextPage != tt.wantNext || p.HasPrevPage != tt.wantPrev {
			t.Fatalf("page %d/%d total %d: got %+v", tt.page, tt.limit, tt.total, p)
		}
	}
}

func TestPageOffset(t *testing.T) {
	if got := (Page{Number: 3, Limit: 20}).Offset(); got != 40 {
		t.Fatalf("offset = %d, want 40", got)
	}
}

func TestPriorityRank(t *testing.T) {
	prev := 0
	for _, p := range Priorities {
		r := PriorityRank(p)
		if r <= prev {
			t.Fatalf("rank of %s = %d, not above %d", p, r, prev)
		}
		prev = r
	}
	if PriorityRank("urgent") != 0 {
		t.Fatal("unknown priority should rank 0")
	}
}

func TestBulkPatchEmpty(t *testing.T) {
	if !(BulkPatch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
	s := StatusDone
	if (BulkPatch{Status: &s}).Empty() {
		t.Fatal("patch with status should not be empty")
	}
}
