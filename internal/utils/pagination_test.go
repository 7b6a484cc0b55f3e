package utils

import (
	"net/url"
	"testing"
)

func TestParsePagination_Defaults(t *testing.T) {
	page, limit, offset := ParsePagination(url.Values{})
	if page != 1 || limit != 10 || offset != 0 {
		t.Fatalf("ожидались значения по умолчанию 1/10/0, получено %d/%d/%d", page, limit, offset)
	}
}

func TestParsePagination_Values(t *testing.T) {
	q := url.Values{}
	q.Set("page", "3")
	q.Set("limit", "25")

	page, limit, offset := ParsePagination(q)
	if page != 3 || limit != 25 || offset != 50 {
		t.Fatalf("получено %d/%d/%d", page, limit, offset)
	}
}

func TestParsePagination_CapsAndGarbage(t *testing.T) {
	q := url.Values{}
	q.Set("page", "-5")
	q.Set("limit", "100000")

	page, limit, _ := ParsePagination(q)
	if page != 1 {
		t.Fatalf("отрицательная страница должна давать 1, получено %d", page)
	}
	if limit != 100 {
		t.Fatalf("limit должен ограничиваться сверху 100, получено %d", limit)
	}

	q.Set("page", "мусор")
	q.Set("limit", "тоже мусор")
	page, limit, _ = ParsePagination(q)
	if page != 1 || limit != 10 {
		t.Fatalf("нечисловые значения должны игнорироваться, получено %d/%d", page, limit)
	}
}

func TestBuildPaginated(t *testing.T) {
	resp := BuildPaginated([]string{"a", "b"}, 2, 10, 25)
	p := resp.Pagination

	if p.TotalPages != 3 {
		t.Fatalf("25 элементов по 10 — 3 страницы, получено %d", p.TotalPages)
	}
	if !p.HasNextPage || !p.HasPrevPage {
		t.Fatal("у средней страницы есть и следующая, и предыдущая")
	}

	last := BuildPaginated(nil, 3, 10, 25).Pagination
	if last.HasNextPage {
		t.Fatal("у последней страницы нет следующей")
	}
}
