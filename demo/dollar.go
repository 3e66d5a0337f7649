// Package demo contains small worked examples of the hdc algebra: Kanerva's
// "dollar of Mexico" analogy, Plate's holographic sentence encoding and an
// n-gram language classifier. Every example is generic over the
// representation.
package demo

import (
	"github.com/Amansingh-afk/hypervector/hdc"
	"github.com/Amansingh-afk/hypervector/memory"
)

// DollarResult is the outcome of the dollar-of-Mexico analogy.
type DollarResult struct {
	Answer   string         // label nearest to the query
	Distance float64        // distance from the query to Answer
	Ranking  []memory.Match // every vocabulary item, nearest first
}

// MexicanDollar answers "what is the dollar of Mexico?" (Kanerva, 2010).
//
// Each country is a record bundling name, capital and currency role/filler
// pairs. The mapping F = Mexico ⊘ USA carries USA's fillers onto Mexico's,
// so F ⊛ usd lands nearest to "mpe", the Mexican peso.
func MexicanDollar[T hdc.HyperVector[T]](space hdc.Space[T], src hdc.RandomSource) DollarResult {
	name, capital, currency := space.Random(src), space.Random(src), space.Random(src)

	// Sweden's items stay in the vocabulary as distractors.
	vocab := []string{"swe", "usa", "mex", "stockholm", "wdc", "cdmx", "usd", "mpe", "skr"}
	items := make(map[string]T, len(vocab))
	for _, label := range vocab {
		items[label] = space.Random(src)
	}

	country := func(n, c, m string) T {
		return space.Bundle(
			name.Bind(items[n]),
			capital.Bind(items[c]),
			currency.Bind(items[m]),
		)
	}
	usa := country("usa", "wdc", "usd")
	mexico := country("mex", "cdmx", "mpe")

	query := mexico.Unbind(usa).Bind(items["usd"])

	opts := memory.DefaultOptions()
	opts.Capacity = len(vocab)
	mem := memory.New[T](opts)
	for _, label := range vocab {
		mem.Set(label, items[label])
	}

	ranking := mem.Nearest(query, len(vocab))
	return DollarResult{
		Answer:   ranking[0].Label,
		Distance: ranking[0].Distance,
		Ranking:  ranking,
	}
}
