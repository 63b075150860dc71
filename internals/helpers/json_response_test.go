package helper

import (
	"testing"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, pg := Paginate(items, Paging{Page: 2, PerPage: 2, Offset: 2})
	if len(page) != 2 || page[0] != 3 {
		t.Fatalf("page = %v", page)
	}
	if pg.TotalPages != 3 || !pg.HasNext || !pg.HasPrev || pg.Count != 2 {
		t.Fatalf("pagination = %+v", pg)
	}

	page, pg = Paginate(items, Paging{Page: 9, PerPage: 2, Offset: 16})
	if len(page) != 0 || pg.Count != 0 {
		t.Fatalf("out of range page = %v", page)
	}

	page, pg = Paginate(items, Paging{Page: 1})
	if len(page) != 5 || pg.TotalPages != 1 {
		t.Fatalf("no per_page = %v %+v", page, pg)
	}
}

func TestStatusToErrorCode(t *testing.T) {
	cases := map[int]string{
		400: "BAD_REQUEST",
		401: "UNAUTHORIZED",
		409: "CONFLICT",
		502: "UPSTREAM_ERROR",
		503: "INTERNAL_ERROR",
		418: "ERROR",
	}
	for status, want := range cases {
		if got := statusToErrorCode(status); got != want {
			t.Errorf("%d → %s, want %s", status, got, want)
		}
	}
}
