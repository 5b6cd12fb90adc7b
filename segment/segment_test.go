package segment

import (
	"bytes"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/bszet/subplan/model"
	"github.com/bszet/subplan/pdfdoc"
)

func headerTable(date string) *model.Table {
	first := "Klasse"
	if date != "" {
		first = date + "\nKlasse"
	}
	return model.NewTable([][]string{
		{first, "Stunde", "Fach", "Raum", "Lehrkraft", "Mitteilung"},
	})
}

func TestDaysGroupsContinuationPages(t *testing.T) {
	tables := []*model.Table{
		headerTable("07.02.2022"),
		headerTable(""), // long Monday continues
		headerTable("08.02.2022"),
	}

	days, err := Days(tables)
	if err != nil {
		t.Fatalf("Days() failed: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("days = %+v, want 2", days)
	}
	if days[0].Date != "2022-02-07" || days[0].FromPage != 1 || days[0].ToPage != 2 {
		t.Errorf("first day = %+v", days[0])
	}
	if days[1].Date != "2022-02-08" || days[1].FromPage != 3 || days[1].ToPage != 3 {
		t.Errorf("second day = %+v", days[1])
	}
}

func TestDaysRepeatedDate(t *testing.T) {
	tables := []*model.Table{
		headerTable("07.02.2022"),
		headerTable("07.02.2022"),
	}

	days, err := Days(tables)
	if err != nil {
		t.Fatalf("Days() failed: %v", err)
	}
	if len(days) != 1 || days[0].FromPage != 1 || days[0].ToPage != 2 {
		t.Errorf("days = %+v, want one day over pages 1-2", days)
	}
}

func TestDaysFirstPageWithoutDate(t *testing.T) {
	if _, err := Days([]*model.Table{headerTable("")}); err != ErrNoDate {
		t.Errorf("err = %v, want ErrNoDate", err)
	}
}

func TestDaysEmpty(t *testing.T) {
	days, err := Days(nil)
	if err != nil || len(days) != 0 {
		t.Errorf("Days(nil) = %v, %v", days, err)
	}
}

func threePagePDF(t *testing.T) []byte {
	t.Helper()
	doc := fpdf.New("L", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < 3; i++ {
		doc.AddPage()
		doc.Cell(100, 20, "page")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestIteratorYieldsDaySlices(t *testing.T) {
	tables := []*model.Table{
		headerTable("07.02.2022"),
		headerTable(""),
		headerTable("08.02.2022"),
	}

	it, err := NewIterator(threePagePDF(t), tables)
	if err != nil {
		t.Fatalf("NewIterator() failed: %v", err)
	}
	if it.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", it.Len())
	}

	wantPages := []int{2, 1}
	for i := 0; ; i++ {
		day, err := it.Next()
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		if day == nil {
			if i != 2 {
				t.Fatalf("iterator ended after %d days, want 2", i)
			}
			break
		}
		count, err := pdfdoc.PageCount(day.PDF)
		if err != nil {
			t.Fatalf("counting day slice: %v", err)
		}
		if count != wantPages[i] {
			t.Errorf("day %d slice has %d pages, want %d", i, count, wantPages[i])
		}
	}
}

func TestIteratorFirstPageWithoutDate(t *testing.T) {
	if _, err := NewIterator(threePagePDF(t), []*model.Table{headerTable("")}); err != ErrNoDate {
		t.Errorf("err = %v, want ErrNoDate", err)
	}
}
