// Package market simulates a small stock market: a fixed universe of
// tickers whose prices follow a seeded random walk. The same seed always
// produces the same tape, which keeps demo sessions and tests repeatable.
package market

import (
	"math/rand"
)

// Quote is one row of the board: a ticker with its latest trade state.
type Quote struct {
	Symbol string
	Name   string
	Price  float64
	Change float64 // percent change since the session opened
	Volume int
}

// Feed owns the universe and advances it tick by tick.
type Feed struct {
	rng    *rand.Rand
	quotes []Quote
	open   []float64
}

// NewFeed builds a universe of n tickers with opening prices drawn from
// the seed. Symbols and names depend only on the index, so two feeds of
// different sizes agree on their shared prefix.
func NewFeed(n int, seed int64) *Feed {
	if n < 0 {
		n = 0
	}
	f := &Feed{
		rng:    rand.New(rand.NewSource(seed)),
		quotes: make([]Quote, n),
		open:   make([]float64, n),
	}
	for i := range f.quotes {
		price := 5 + f.rng.Float64()*495
		f.open[i] = price
		f.quotes[i] = Quote{
			Symbol: symbolFor(i),
			Name:   nameFor(i),
			Price:  price,
			Volume: 1000 + f.rng.Intn(9000),
		}
	}
	return f
}

// Tick advances every ticker one step: price moves up to one percent in
// either direction, volume accumulates.
func (f *Feed) Tick() {
	for i := range f.quotes {
		q := &f.quotes[i]
		q.Price *= 1 + (f.rng.Float64()-0.5)*0.02
		if q.Price < 0.01 {
			q.Price = 0.01
		}
		q.Change = (q.Price - f.open[i]) / f.open[i] * 100
		q.Volume += f.rng.Intn(5000)
	}
}

// Quotes returns a copy of the current tape, safe for the caller to sort
// and hold across ticks.
func (f *Feed) Quotes() []Quote {
	out := make([]Quote, len(f.quotes))
	copy(out, f.quotes)
	return out
}

// Len is the number of tickers in the universe.
func (f *Feed) Len() int { return len(f.quotes) }

// symbolFor maps an index to a ticker symbol the way spreadsheets name
// columns: A..Z, then AA, AB, and so on.
func symbolFor(i int) string {
	s := []byte{'A' + byte(i%26)}
	for i /= 26; i > 0; i = (i - 1) / 26 {
		s = append(s, 'A'+byte((i-1)%26))
	}
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
	return string(s)
}

var nameLead = []string{
	"Acme", "Apex", "Atlas", "Borealis", "Cascade", "Delta", "Ember",
	"Falcon", "Granite", "Harbor", "Ion", "Juniper", "Keystone", "Lumen",
	"Meridian", "Nimbus", "Orchard", "Pinnacle", "Quarry", "Summit",
	"Vertex", "Willow",
}

var nameTail = []string{
	"Industries", "Holdings", "Systems", "Labs", "Energy", "Logistics",
	"Capital", "Dynamics", "Materials", "Networks",
}

func nameFor(i int) string {
	return nameLead[i%len(nameLead)] + " " + nameTail[(i/len(nameLead))%len(nameTail)]
}
