package demo

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Amansingh-afk/hypervector/hdc"
)

// Confusion is a labelled matrix of pairwise distances.
type Confusion struct {
	Labels    []string
	Distances [][]float64 // Distances[i][j] = distance(vs[i], vs[j])
}

// NewConfusion computes the pairwise distances of vs.
func NewConfusion[T hdc.HyperVector[T]](labels []string, vs []T) Confusion {
	if len(labels) != len(vs) {
		panic("demo: NewConfusion needs one label per vector")
	}
	dist := make([][]float64, len(vs))
	for i, a := range vs {
		dist[i] = make([]float64, len(vs))
		for j, b := range vs {
			dist[i][j] = a.Distance(b)
		}
	}
	return Confusion{Labels: labels, Distances: dist}
}

// At returns the distance between the items labelled a and b.
// Panics if either label is unknown.
func (c Confusion) At(a, b string) float64 {
	return c.Distances[c.index(a)][c.index(b)]
}

func (c Confusion) index(label string) int {
	for i, l := range c.Labels {
		if l == label {
			return i
		}
	}
	panic(fmt.Sprintf("demo: unknown label %q", label))
}

// WriteConfusionCSV writes c with a header row of labels and one row per
// item, distances to four decimals.
func WriteConfusionCSV(w io.Writer, c Confusion) error {
	cw := csv.NewWriter(w)
	header := append([]string{""}, c.Labels...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("demo: write confusion header: %w", err)
	}
	for i, row := range c.Distances {
		record := make([]string, 0, len(row)+1)
		record = append(record, c.Labels[i])
		for _, d := range row {
			record = append(record, strconv.FormatFloat(d, 'f', 4, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("demo: write confusion row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// PlateSentences are the sentences encoded by Plate, in order s1..s6.
var PlateSentences = []string{
	"Mark ate the fish.",
	"Hunger caused Mark to eat the fish.",
	"John ate.",
	"John saw Mark.",
	"John saw the fish.",
	"The fish saw John.",
}

// PlateResult holds the object and sentence confusion matrices.
type PlateResult struct {
	Objects   Confusion // mark john paul luke fish bread hunger thirst
	Sentences Confusion // s1..s6, see PlateSentences
}

// Plate reproduces the example from Plate, "Holographic Reduced
// Representations" (IEEE TNN 6(3), 1995).
//
// Objects are bundles of feature vectors (a person is being + person + id),
// roles are bundles of a generic role and a verb-specific id, and each
// sentence bundles its verb with role ⊛ filler pairs. Sentences sharing
// fillers and roles end up close; objects sharing features do too.
func Plate[T hdc.HyperVector[T]](space hdc.Space[T], src hdc.RandomSource) PlateResult {
	rnd := func() T { return space.Random(src) }

	agent, object := rnd(), rnd()
	being, person, food, state := rnd(), rnd(), rnd(), rnd()
	bread, fish := rnd(), rnd()
	cause, eat, see := rnd(), rnd(), rnd()
	idBread, idFish, idHunger, idThirst := rnd(), rnd(), rnd(), rnd()
	idJohn, idLuke, idMark, idPaul := rnd(), rnd(), rnd(), rnd()
	idEatAgent, idEatObject := rnd(), rnd()
	idSeeAgent, idSeeObject := rnd(), rnd()
	idCauseAgent, idCauseObject := rnd(), rnd()

	mark := space.Bundle(being, person, idMark)
	john := space.Bundle(being, person, idJohn)
	paul := space.Bundle(being, person, idPaul)
	luke := space.Bundle(being, person, idLuke)
	theFish := space.Bundle(food, fish, idFish)
	theBread := space.Bundle(food, bread, idBread)
	hunger := space.Bundle(state, idHunger)
	thirst := space.Bundle(state, idThirst)

	eatAgent, eatObject := space.Bundle(agent, idEatAgent), space.Bundle(object, idEatObject)
	seeAgent, seeObject := space.Bundle(agent, idSeeAgent), space.Bundle(object, idSeeObject)
	causeAgent, causeObject := space.Bundle(agent, idCauseAgent), space.Bundle(object, idCauseObject)

	s1 := space.Bundle(eat, eatAgent.Bind(mark), eatObject.Bind(theFish))
	s2 := space.Bundle(cause, causeAgent.Bind(hunger), causeObject.Bind(s1))
	s3 := space.Bundle(eat, eatAgent.Bind(john))
	s4 := space.Bundle(see, seeAgent.Bind(john), seeObject.Bind(mark))
	s5 := space.Bundle(see, seeAgent.Bind(john), seeObject.Bind(theFish))
	s6 := space.Bundle(see, seeAgent.Bind(theFish), seeObject.Bind(john))

	return PlateResult{
		Objects: NewConfusion(
			[]string{"mark", "john", "paul", "luke", "fish", "bread", "hunger", "thirst"},
			[]T{mark, john, paul, luke, theFish, theBread, hunger, thirst},
		),
		Sentences: NewConfusion(
			[]string{"s1", "s2", "s3", "s4", "s5", "s6"},
			[]T{s1, s2, s3, s4, s5, s6},
		),
	}
}
