package order

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"
)

// TrackingGenerator produces the customer-shareable order identifier:
//
//	PREFIX#PPP-RRRR-RRR-INI
//
// PPP is the product id zero-padded to 3 digits, RRRR and RRR are random
// blocks, INI is up to 3 uppercase initials taken from the customer name.
// Uniqueness is probabilistic only; the unique index on tracking_id turns
// a collision into an insert error rather than a silent overwrite.
type TrackingGenerator struct {
	prefix string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewTrackingGenerator seeds from the clock. Tests inject their own source.
func NewTrackingGenerator(prefix string) *TrackingGenerator {
	return NewTrackingGeneratorWithSource(prefix, rand.NewSource(time.Now().UnixNano()))
}

func NewTrackingGeneratorWithSource(prefix string, src rand.Source) *TrackingGenerator {
	return &TrackingGenerator{
		prefix: prefix,
		rng:    rand.New(src),
	}
}

func (g *TrackingGenerator) Generate(productID uint, customerName string) string {
	g.mu.Lock()
	random4 := 1000 + g.rng.Intn(9000)
	random3 := 100 + g.rng.Intn(900)
	g.mu.Unlock()

	return fmt.Sprintf("%s#%03d-%04d-%03d-%s",
		g.prefix, productID, random4, random3, initials(customerName))
}

// initials takes the first letter of each whitespace-separated name token,
// uppercased, truncated to 3.
func initials(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		r := []rune(token)[0]
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() >= 3 {
			break
		}
	}
	return b.String()
}
