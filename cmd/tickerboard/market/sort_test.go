package market

import (
	"testing"
)

func quotesWithSymbols(symbols ...string) []Quote {
	out := make([]Quote, len(symbols))
	for i, s := range symbols {
		out[i] = Quote{Symbol: s}
	}
	return out
}

func symbolsOf(quotes []Quote) []string {
	out := make([]string, len(quotes))
	for i, q := range quotes {
		out[i] = q.Symbol
	}
	return out
}

func TestSortBySymbolIgnoresCase(t *testing.T) {
	quotes := quotesWithSymbols("delta", "ALPHA", "Echo", "bravo", "CHARLIE")
	Sort(quotes, BySymbol, false)

	want := []string{"ALPHA", "bravo", "CHARLIE", "delta", "Echo"}
	got := symbolsOf(quotes)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted symbols = %v, want %v", got, want)
		}
	}
}

func TestSortNumericOrdersLargestFirst(t *testing.T) {
	tests := []struct {
		name   string
		order  Order
		quotes []Quote
		want   []string
	}{
		{
			name:  "by price",
			order: ByPrice,
			quotes: []Quote{
				{Symbol: "A", Price: 10},
				{Symbol: "B", Price: 30},
				{Symbol: "C", Price: 20},
			},
			want: []string{"B", "C", "A"},
		},
		{
			name:  "by change",
			order: ByChange,
			quotes: []Quote{
				{Symbol: "A", Change: -2.5},
				{Symbol: "B", Change: 4},
				{Symbol: "C", Change: 0},
			},
			want: []string{"B", "C", "A"},
		},
		{
			name:  "by volume",
			order: ByVolume,
			quotes: []Quote{
				{Symbol: "A", Volume: 100},
				{Symbol: "B", Volume: 900},
				{Symbol: "C", Volume: 500},
			},
			want: []string{"B", "C", "A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.quotes, tt.order, false)
			got := symbolsOf(tt.quotes)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("order %v gave %v, want %v", tt.order, got, tt.want)
				}
			}
		})
	}
}

func TestSortDescFlipsDirection(t *testing.T) {
	quotes := []Quote{
		{Symbol: "A", Price: 10},
		{Symbol: "B", Price: 30},
		{Symbol: "C", Price: 20},
	}
	Sort(quotes, ByPrice, true)

	want := []string{"A", "C", "B"}
	got := symbolsOf(quotes)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("descending price gave %v, want %v", got, want)
		}
	}
}

func TestSortStableOnTies(t *testing.T) {
	quotes := []Quote{
		{Symbol: "first", Price: 5},
		{Symbol: "second", Price: 5},
		{Symbol: "third", Price: 5},
	}
	Sort(quotes, ByPrice, false)

	want := []string{"first", "second", "third"}
	got := symbolsOf(quotes)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tied rows reshuffled: %v", got)
		}
	}
}

func TestOrderNextCycles(t *testing.T) {
	order := BySymbol
	want := []Order{ByPrice, ByChange, ByVolume, BySymbol}
	for _, w := range want {
		order = order.Next()
		if order != w {
			t.Fatalf("cycle reached %v, want %v", order, w)
		}
	}
}

func TestOrderString(t *testing.T) {
	cases := map[Order]string{
		BySymbol:  "symbol",
		ByPrice:   "price",
		ByChange:  "change",
		ByVolume:  "volume",
		Order(99): "unknown",
	}
	for order, want := range cases {
		if got := order.String(); got != want {
			t.Errorf("Order(%d).String() = %q, want %q", int(order), got, want)
		}
	}
}
