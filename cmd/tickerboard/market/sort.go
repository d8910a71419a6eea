package market

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Order selects the column the board sorts by.
type Order int

const (
	BySymbol Order = iota
	ByPrice
	ByChange
	ByVolume
)

// String returns the column name shown in the header and status bar.
func (o Order) String() string {
	switch o {
	case BySymbol:
		return "symbol"
	case ByPrice:
		return "price"
	case ByChange:
		return "change"
	case ByVolume:
		return "volume"
	default:
		return "unknown"
	}
}

// Next cycles through the orders, wrapping back to BySymbol.
func (o Order) Next() Order {
	switch o {
	case BySymbol:
		return ByPrice
	case ByPrice:
		return ByChange
	case ByChange:
		return ByVolume
	default:
		return BySymbol
	}
}

// Symbols collate case-insensitively so lowercase listings sort in with
// their uppercase peers instead of after all of them.
var symbolCollator = collate.New(language.English, collate.IgnoreCase)

// Sort orders quotes in place. BySymbol is ascending; the numeric orders
// put the largest values first. desc flips whichever direction the order
// starts with. The sort is stable, so ticks that leave the sort column
// untouched do not reshuffle rows with equal keys.
func Sort(quotes []Quote, order Order, desc bool) {
	var less func(a, b Quote) bool
	switch order {
	case ByPrice:
		less = func(a, b Quote) bool { return a.Price > b.Price }
	case ByChange:
		less = func(a, b Quote) bool { return a.Change > b.Change }
	case ByVolume:
		less = func(a, b Quote) bool { return a.Volume > b.Volume }
	default:
		less = func(a, b Quote) bool {
			return symbolCollator.CompareString(a.Symbol, b.Symbol) < 0
		}
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		if desc {
			return less(quotes[j], quotes[i])
		}
		return less(quotes[i], quotes[j])
	})
}
