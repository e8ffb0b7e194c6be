package views

import "testing"

func TestPaginator_CursorStaysInBounds(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(3)

	if p.CursorUp() {
		t.Errorf("cursor at 0 should not move up")
	}

	p.CursorDown()
	p.CursorDown()
	if p.CursorDown() {
		t.Errorf("cursor at last item should not move down")
	}
	if p.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", p.Cursor())
	}
}

func TestPaginator_SetTotalClampsCursor(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(10)
	for i := 0; i < 9; i++ {
		p.CursorDown()
	}

	p.SetTotal(4)
	if p.Cursor() != 3 {
		t.Errorf("expected cursor clamped to 3, got %d", p.Cursor())
	}
}

func TestPaginator_Pages(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)

	if p.TotalPages() != 3 {
		t.Errorf("expected 3 pages, got %d", p.TotalPages())
	}
	if p.CurrentPage() != 1 {
		t.Errorf("expected page 1, got %d", p.CurrentPage())
	}

	p.NextPage()
	start, end := p.VisibleRange()
	if start != 5 || end != 10 {
		t.Errorf("expected range [5,10), got [%d,%d)", start, end)
	}

	p.NextPage()
	if p.NextPage() {
		t.Errorf("should not page past the last page")
	}
	start, end = p.VisibleRange()
	if start != 10 || end != 12 {
		t.Errorf("expected range [10,12), got [%d,%d)", start, end)
	}

	p.PrevPage()
	if p.CurrentPage() != 2 {
		t.Errorf("expected page 2, got %d", p.CurrentPage())
	}
}

func TestPaginator_CursorMovesPage(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)

	for i := 0; i < 5; i++ {
		p.CursorDown()
	}
	if p.CurrentPage() != 2 {
		t.Errorf("cursor crossing the boundary should turn the page, got page %d", p.CurrentPage())
	}
}
