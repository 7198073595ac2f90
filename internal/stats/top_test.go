package stats

import (
	"testing"

	"github.com/verte-zerg/topbars/internal/model"
)

func TestTopOrdersByCount(t *testing.T) {
	records := []model.Record{
		{Reason: "A", Count: 50},
		{Reason: "B", Count: 30},
		{Reason: "C", Count: 100},
	}
	top := Top(records, 10)
	if len(top) != 3 {
		t.Fatalf("expected 3 records, got %d", len(top))
	}
	if top[0].Reason != "C" || top[1].Reason != "A" || top[2].Reason != "B" {
		t.Fatalf("unexpected order: %v", top)
	}
	if records[0].Reason != "A" {
		t.Fatalf("input was reordered: %v", records)
	}
}

func TestTopTruncatesToN(t *testing.T) {
	records := make([]model.Record, 0, 25)
	for i := 0; i < 25; i++ {
		records = append(records, model.Record{Reason: string(rune('a' + i)), Count: float64(i)})
	}
	top := Top(records, DefaultTop)
	if len(top) != DefaultTop {
		t.Fatalf("expected %d records, got %d", DefaultTop, len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].Count < top[i].Count {
			t.Fatalf("not sorted descending at %d: %v", i, top)
		}
	}
	if top[0].Reason != "y" || top[9].Reason != "p" {
		t.Fatalf("unexpected bounds: first=%s last=%s", top[0].Reason, top[9].Reason)
	}
}

func TestTopIsStableForTies(t *testing.T) {
	records := []model.Record{
		{Reason: "first", Count: 5},
		{Reason: "big", Count: 9},
		{Reason: "second", Count: 5},
		{Reason: "third", Count: 5},
	}
	top := Top(records, 3)
	want := []string{"big", "first", "second"}
	for i, reason := range want {
		if top[i].Reason != reason {
			t.Fatalf("expected %q at %d, got %q", reason, i, top[i].Reason)
		}
	}
}

func TestTopEmpty(t *testing.T) {
	if got := Top(nil, 10); len(got) != 0 {
		t.Fatalf("expected empty ranking, got %v", got)
	}
	if got := Top([]model.Record{{Reason: "A", Count: 1}}, 0); len(got) != 0 {
		t.Fatalf("expected empty ranking for n=0, got %v", got)
	}
}

func TestMaxCount(t *testing.T) {
	if got := MaxCount(nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := MaxCount([]model.Record{{Count: 3}, {Count: 12.5}, {Count: 7}}); got != 12.5 {
		t.Fatalf("expected 12.5, got %v", got)
	}
}
