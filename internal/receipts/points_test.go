package receipts

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestScoreExampleReceipts(t *testing.T) {
	cases := []struct {
		name    string
		payload Payload
		want    int64
	}{
		{"target", targetPayload(), 28},
		{"corner market", cornerMarketPayload(), 109},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := mustParse(tc.payload)
			if got := Score(rec); got != tc.want {
				t.Fatalf("expected %d points, got %d (breakdown %+v)", tc.want, got, Breakdown(rec))
			}
		})
	}
}

func TestBreakdownMatchesScoreAndOrder(t *testing.T) {
	rec := mustParse(targetPayload())
	parts := Breakdown(rec)

	wantOrder := []string{
		RuleRetailerName, RuleRoundDollar, RuleQuarterMultiple, RuleItemPairs,
		RuleDescription, RuleOddDay, RuleAfternoon,
	}
	if len(parts) != len(wantOrder) {
		t.Fatalf("expected %d rules, got %d", len(wantOrder), len(parts))
	}
	var sum int64
	for i, p := range parts {
		if p.Rule != wantOrder[i] {
			t.Fatalf("rule %d: expected %s, got %s", i, wantOrder[i], p.Rule)
		}
		if p.Points < 0 {
			t.Fatalf("rule %s produced negative points", p.Rule)
		}
		sum += p.Points
	}
	if sum != Score(rec) {
		t.Fatalf("breakdown sum %d != score %d", sum, Score(rec))
	}
}

func TestRetailerPoints(t *testing.T) {
	cases := map[string]int64{
		"Target":            6,
		"M&M Corner Market": 14,
		"  --&&  ":          0,
		"7-Eleven":          7,
		"Café":              3,
	}
	for retailer, want := range cases {
		if got := retailerPoints(Receipt{Retailer: retailer}); got != want {
			t.Fatalf("%q: expected %d, got %d", retailer, want, got)
		}
	}
}

func TestTotalRules(t *testing.T) {
	cases := []struct {
		total       Cents
		round, quar int64
	}{
		{900, 50, 25},
		{3535, 0, 0},
		{925, 0, 25},
		{0, 50, 25},
		{1001, 0, 0},
	}
	for _, tc := range cases {
		r := Receipt{Total: tc.total}
		if got := roundDollarPoints(r); got != tc.round {
			t.Fatalf("total %s: round dollar expected %d, got %d", tc.total, tc.round, got)
		}
		if got := quarterMultiplePoints(r); got != tc.quar {
			t.Fatalf("total %s: quarter expected %d, got %d", tc.total, tc.quar, got)
		}
	}
}

func TestItemPairPoints(t *testing.T) {
	for n, want := range map[int]int64{1: 0, 2: 5, 3: 5, 4: 10, 5: 10} {
		r := Receipt{Items: make([]Item, n)}
		if got := itemPairPoints(r); got != want {
			t.Fatalf("%d items: expected %d, got %d", n, want, got)
		}
	}
}

func TestDescriptionPoints(t *testing.T) {
	cases := []struct {
		desc  string
		price Cents
		want  int64
	}{
		{"   Klarbrunn 12-PK 12 FL OZ  ", 1200, 3},
		{"Emils Cheese Pizza", 1225, 3},
		{"Knorr Creamy Chicken", 9999, 0},
		{"abc", 500, 1},
		{"abc", 501, 2},
		{"abc", 0, 0},
		{"   ", 1000, 0},
		{"", 1000, 0},
	}
	for _, tc := range cases {
		r := Receipt{Items: []Item{{ShortDescription: tc.desc, Price: tc.price}}}
		if got := descriptionPoints(r); got != tc.want {
			t.Fatalf("%q @ %s: expected %d, got %d", tc.desc, tc.price, tc.want, got)
		}
	}
}

func TestOddDayPoints(t *testing.T) {
	for date, want := range map[string]int64{"2022-03-20": 0, "2022-01-01": 6, "2022-01-31": 6} {
		d, _ := time.Parse(DateLayout, date)
		if got := oddDayPoints(Receipt{PurchaseDate: d}); got != want {
			t.Fatalf("%s: expected %d, got %d", date, want, got)
		}
	}
}

func TestAfternoonPoints(t *testing.T) {
	cases := map[string]int64{
		"14:33": 10,
		"13:01": 0,
		"14:00": 0,
		"14:01": 10,
		"15:59": 10,
		"16:00": 0,
	}
	for hhmm, want := range cases {
		tod, err := ParseTimeOfDay(hhmm)
		if err != nil {
			t.Fatalf("parse %s: %v", hhmm, err)
		}
		if got := afternoonPoints(Receipt{PurchaseTime: tod}); got != want {
			t.Fatalf("%s: expected %d, got %d", hhmm, want, got)
		}
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	rec := mustParse(cornerMarketPayload())
	first := Score(rec)
	for i := 0; i < 100; i++ {
		if got := Score(rec); got != first {
			t.Fatalf("score changed between calls: %d vs %d", first, got)
		}
	}
}

func TestScoreNeverNegativeForLargeAmounts(t *testing.T) {
	largest := targetPayload()
	largest.Items = []ItemPayload{{ShortDescription: strPtr("abc"), Price: "999999999999.99"}}
	largest.Total = "999999999999.99"
	rec := mustParse(largest)
	if got, want := descriptionPoints(rec), int64(200000000000); got != want {
		t.Fatalf("expected %d description points, got %d", want, got)
	}

	many := largest
	many.Items = make([]ItemPayload, 0, 5000)
	for i := 0; i < 5000; i++ {
		many.Items = append(many.Items, ItemPayload{ShortDescription: strPtr("abc"), Price: "999999999999.99"})
	}
	if got := Score(mustParse(many)); got <= 0 {
		t.Fatalf("expected a positive score, got %d", got)
	}

	// Receipts built in code bypass ParsePayload; the sum saturates.
	huge := Receipt{Retailer: strings.Repeat("a", 3)}
	for i := 0; i < 4; i++ {
		huge.Items = append(huge.Items, Item{ShortDescription: "abc", Price: Cents(math.MaxInt64)})
	}
	if got := Score(huge); got != math.MaxInt64 {
		t.Fatalf("expected saturation at MaxInt64, got %d", got)
	}
	if got := ceilDiv(math.MaxInt64, 500); got <= 0 {
		t.Fatalf("ceilDiv overflowed: %d", got)
	}
}
