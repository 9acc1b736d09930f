// Package extract turns a raw billing utterance into structured line items.
//
// Input is dictated speech or typed text mixing Hindi and English, e.g.
// "2 kilo chawal 60 rupaye, 1 litre tel 150". Extraction is deliberately
// heuristic and lossy: segments that cannot be parsed are dropped rather than
// reported, because the transcription source is inherently noisy and partial
// success is the expected mode of operation.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// RawItem is one extracted (name, quantity, unit, price) tuple. It is a
// transient value consumed immediately by the catalog resolver.
type RawItem struct {
	Name     string
	Quantity decimal.Decimal
	Unit     string
	Price    decimal.Decimal
}

var (
	// Segments are separated by commas or the word "and" in Hindi
	// (native script or the "aur" transliteration).
	segmentSep = regexp.MustCompile(`,|और|aur`)
	numberPat  = regexp.MustCompile(`\d+(\.\d+)?`)
)

// unitSynonyms maps every accepted unit token, transliterated and native
// script, to its canonical unit.
var unitSynonyms = map[string]string{
	"kg": "kg", "kilo": "kg", "किलो": "kg",
	"gram": "gram", "gm": "gram", "ग्राम": "gram",
	"liter": "liter", "litre": "liter", "लीटर": "liter",
	"piece": "piece", "pc": "piece", "पीस": "piece",
	"pack": "pack", "packet": "pack", "पैकेट": "pack",
	"bottle": "bottle", "बोतल": "bottle",
	"box": "box", "डिब्बा": "box",
}

// currencyWords are dropped from product-name fragments.
var currencyWords = map[string]struct{}{
	"rupaye": {}, "rupee": {}, "rupees": {}, "rs": {}, "रुपये": {},
}

// Extract parses text into raw billable items, one per parseable segment,
// in left-to-right input order.
//
// Within a segment the first numeric token is the quantity and the last is
// the unit price. This first/last tie-break is a documented heuristic, not a
// guarantee: a digit inside a product name shifts nothing, and no smarter
// disambiguation is attempted. A segment with fewer than two numeric tokens,
// a non-positive quantity or price, or an empty name fragment yields nothing.
func Extract(text string) []RawItem {
	var items []RawItem

	for _, segment := range segmentSep.Split(strings.ToLower(text), -1) {
		if item, ok := extractSegment(strings.TrimSpace(segment)); ok {
			items = append(items, item)
		}
	}
	return items
}

func extractSegment(segment string) (RawItem, bool) {
	numbers := numberPat.FindAllString(segment, -1)
	if len(numbers) < 2 {
		return RawItem{}, false
	}

	quantity, err := decimal.NewFromString(numbers[0])
	if err != nil || !quantity.IsPositive() {
		return RawItem{}, false
	}
	price, err := decimal.NewFromString(numbers[len(numbers)-1])
	if err != nil || !price.IsPositive() {
		return RawItem{}, false
	}

	words := strings.Fields(segment)

	// First unit keyword wins; "piece" when none matches.
	unit := "piece"
	for _, w := range words {
		if u, ok := unitSynonyms[w]; ok {
			unit = u
			break
		}
	}

	// The name fragment is every word that is not a numeric token, a unit
	// keyword, or a currency word, joined in original order.
	numberSet := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		numberSet[n] = struct{}{}
	}

	var nameWords []string
	for _, w := range words {
		if _, isNumber := numberSet[w]; isNumber {
			continue
		}
		if _, isUnit := unitSynonyms[w]; isUnit {
			continue
		}
		if _, isCurrency := currencyWords[w]; isCurrency {
			continue
		}
		nameWords = append(nameWords, w)
	}
	if len(nameWords) == 0 {
		return RawItem{}, false
	}

	return RawItem{
		Name:     strings.Join(nameWords, " "),
		Quantity: quantity,
		Unit:     unit,
		Price:    price,
	}, true
}
