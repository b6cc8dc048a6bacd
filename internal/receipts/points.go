package receipts

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Rule names, in evaluation order.
const (
	RuleRetailerName    = "retailer_alphanumeric"
	RuleRoundDollar     = "round_dollar_total"
	RuleQuarterMultiple = "quarter_multiple_total"
	RuleItemPairs       = "item_pairs"
	RuleDescription     = "description_length"
	RuleOddDay          = "odd_purchase_day"
	RuleAfternoon       = "afternoon_window"
)

const (
	afternoonStart = 14 * 60
	afternoonEnd   = 16 * 60
)

// RuleResult is one rule's contribution to a receipt's score.
type RuleResult struct {
	Rule   string `json:"rule"`
	Points int64  `json:"points"`
}

type rule struct {
	name  string
	score func(Receipt) int64
}

var rules = []rule{
	{RuleRetailerName, retailerPoints},
	{RuleRoundDollar, roundDollarPoints},
	{RuleQuarterMultiple, quarterMultiplePoints},
	{RuleItemPairs, itemPairPoints},
	{RuleDescription, descriptionPoints},
	{RuleOddDay, oddDayPoints},
	{RuleAfternoon, afternoonPoints},
}

// Score returns the total points for a validated receipt.
func Score(r Receipt) int64 {
	var total int64
	for _, rl := range rules {
		total = addPoints(total, rl.score(r))
	}
	return total
}

// Breakdown returns every rule's contribution in evaluation order.
func Breakdown(r Receipt) []RuleResult {
	out := make([]RuleResult, 0, len(rules))
	for _, rl := range rules {
		out = append(out, RuleResult{Rule: rl.name, Points: rl.score(r)})
	}
	return out
}

func retailerPoints(r Receipt) int64 {
	var n int64
	for i := 0; i < len(r.Retailer); i++ {
		c := r.Retailer[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			n++
		}
	}
	return n
}

func roundDollarPoints(r Receipt) int64 {
	if r.Total%100 == 0 {
		return 50
	}
	return 0
}

func quarterMultiplePoints(r Receipt) int64 {
	if r.Total%25 == 0 {
		return 25
	}
	return 0
}

func itemPairPoints(r Receipt) int64 {
	return 5 * int64(len(r.Items)/2)
}

// descriptionPoints awards ceil(price * 0.2) per qualifying item, computed on
// cents as ceil(cents / 500).
func descriptionPoints(r Receipt) int64 {
	var n int64
	for _, item := range r.Items {
		l := utf8.RuneCountInString(strings.TrimSpace(item.ShortDescription))
		if l == 0 || l%3 != 0 {
			continue
		}
		n = addPoints(n, ceilDiv(int64(item.Price), 500))
	}
	return n
}

func ceilDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// addPoints saturates at math.MaxInt64 instead of wrapping negative.
func addPoints(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

func oddDayPoints(r Receipt) int64 {
	if r.PurchaseDate.Day()%2 == 1 {
		return 6
	}
	return 0
}

func afternoonPoints(r Receipt) int64 {
	m := r.PurchaseTime.Minutes()
	if m > afternoonStart && m < afternoonEnd {
		return 10
	}
	return 0
}
