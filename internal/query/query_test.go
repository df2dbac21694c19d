package query

import (
	"testing"

	"librarysvc/pkg/domain"
)

func sampleBooks() []domain.Book {
	return []domain.Book{
		{ID: 1, Title: "Alpha", Author: "Carol Writer", ISBN: "111", Category: "Science", Language: "English"},
		{ID: 2, Title: "Beta", Author: "Alan Author", ISBN: "222", Category: "Fiction", Language: "English"},
		{ID: 3, Title: "Gamma", Author: "Bob Scribe", ISBN: "333", Category: "Fiction", Language: "French"},
	}
}

func ids(books []domain.Book) []int64 {
	out := make([]int64, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunKeywordMatchesAnyField(t *testing.T) {
	books := sampleBooks()

	cases := []struct {
		name    string
		keyword string
		want    []int64
	}{
		{"title substring", "alph", []int64{1}},
		{"author substring case-insensitive", "ALAN", []int64{2}},
		{"isbn substring", "22", []int64{2}},
		{"id as text", "3", []int64{3}},
		{"no match", "zzz", []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Run(books, Criteria{Keyword: tc.keyword, PageNumber: 1, PageSize: 20})
			if !equalIDs(ids(res.Data), tc.want) {
				t.Fatalf("keyword %q: got %v, want %v", tc.keyword, ids(res.Data), tc.want)
			}
			if res.Total != len(tc.want) {
				t.Fatalf("keyword %q: total = %d, want %d", tc.keyword, res.Total, len(tc.want))
			}
		})
	}
}

func TestRunEmptyCriteriaReturnsAll(t *testing.T) {
	res := Run(sampleBooks(), Criteria{PageNumber: 1, PageSize: 20})
	if res.Total != 3 || len(res.Data) != 3 {
		t.Fatalf("total = %d, page = %d, want 3/3", res.Total, len(res.Data))
	}
}

func TestRunFieldFiltersNarrow(t *testing.T) {
	books := sampleBooks()
	res := Run(books, Criteria{Category: "fiction", Language: "french", PageNumber: 1, PageSize: 20})
	if !equalIDs(ids(res.Data), []int64{3}) {
		t.Fatalf("got %v, want [3]", ids(res.Data))
	}

	id := int64(2)
	res = Run(books, Criteria{BookID: &id, PageNumber: 1, PageSize: 20})
	if !equalIDs(ids(res.Data), []int64{2}) {
		t.Fatalf("got %v, want [2]", ids(res.Data))
	}
}

func TestRunTotalCountedBeforePaging(t *testing.T) {
	res := Run(sampleBooks(), Criteria{PageNumber: 2, PageSize: 2, SortBy: "bookId", SortOrder: "asc"})
	if res.Total != 3 {
		t.Fatalf("total = %d, want 3", res.Total)
	}
	if !equalIDs(ids(res.Data), []int64{3}) {
		t.Fatalf("page 2 = %v, want [3]", ids(res.Data))
	}
}

func TestRunSortDispatch(t *testing.T) {
	books := sampleBooks()

	cases := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      []int64
	}{
		{"title asc", "title", "asc", []int64{1, 2, 3}},
		{"title desc", "title", "desc", []int64{3, 2, 1}},
		{"title asc uppercase order", "TITLE", "ASC", []int64{1, 2, 3}},
		{"author asc", "author", "asc", []int64{2, 3, 1}},
		{"isbn desc", "isbn", "whatever", []int64{3, 2, 1}},
		// The fallback branch compares the order exactly: "ASC" is not "asc",
		// so an unknown sort field with uppercase order sorts descending.
		{"unknown field exact asc", "publishedAt", "asc", []int64{1, 2, 3}},
		{"unknown field uppercase asc is descending", "publishedAt", "ASC", []int64{3, 2, 1}},
		{"default bookId asc", "bookId", "asc", []int64{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Run(books, Criteria{SortBy: tc.sortBy, SortOrder: tc.sortOrder, PageNumber: 1, PageSize: 20})
			if !equalIDs(ids(res.Data), tc.want) {
				t.Fatalf("sortBy=%q sortOrder=%q: got %v, want %v", tc.sortBy, tc.sortOrder, ids(res.Data), tc.want)
			}
		})
	}
}

func TestRunBlankSortByKeepsFilterOrder(t *testing.T) {
	books := []domain.Book{
		{ID: 2, Title: "Beta"},
		{ID: 1, Title: "Alpha"},
	}
	res := Run(books, Criteria{SortBy: " ", PageNumber: 1, PageSize: 20})
	if !equalIDs(ids(res.Data), []int64{2, 1}) {
		t.Fatalf("got %v, want [2 1]", ids(res.Data))
	}
}

func TestApplyFiltersANDNarrowsAcrossFields(t *testing.T) {
	got := ApplyFilters(sampleBooks(), Filters{Category: "Fiction", Author: "bob"})
	if !equalIDs(ids(got), []int64{3}) {
		t.Fatalf("got %v, want [3]", ids(got))
	}
}

// The OR operator restarts the chain from an unfiltered snapshot but still
// narrows per field, so it selects the same rows as AND.
func TestApplyFiltersORBehavesLikeAND(t *testing.T) {
	books := sampleBooks()
	and := ApplyFilters(books, Filters{Category: "Fiction", Language: "English"})
	or := ApplyFilters(books, Filters{Category: "Fiction", Language: "English", LogicOperator: "or"})
	if !equalIDs(ids(and), ids(or)) {
		t.Fatalf("OR selected %v, AND selected %v", ids(or), ids(and))
	}
	if !equalIDs(ids(or), []int64{2}) {
		t.Fatalf("got %v, want [2]", ids(or))
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	cases := []struct {
		name string
		page Page
		want []int
	}{
		{"first page", Page{Number: 1, Size: 2}, []int{1, 2}},
		{"middle page", Page{Number: 2, Size: 2}, []int{3, 4}},
		{"short last page", Page{Number: 3, Size: 2}, []int{5}},
		{"past the end is empty", Page{Number: 9, Size: 2}, []int{}},
		{"page larger than set", Page{Number: 1, Size: 50}, []int{1, 2, 3, 4, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Paginate(items, tc.page)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestSortSummariesByTitle(t *testing.T) {
	items := []domain.BookSummary{
		{ID: 3, Title: "Gamma"},
		{ID: 1, Title: "Alpha"},
		{ID: 2, Title: "Beta"},
	}
	SortSummariesByTitle(items)
	for i, want := range []string{"Alpha", "Beta", "Gamma"} {
		if items[i].Title != want {
			t.Fatalf("pos %d = %q, want %q", i, items[i].Title, want)
		}
	}
}
