package naming

// maxPasses bounds the fixed-point loop. Real names settle after two passes.
const maxPasses = 4

// Canonicalizer rewrites directory names using a correction table and a year
// lookup. The zero value uses DefaultCorrections and no lookup.
type Canonicalizer struct {
	Corrections *Corrections
	Lookup      YearLookup
}

// New returns a Canonicalizer with the default corrections.
func New(lookup YearLookup) *Canonicalizer {
	c := DefaultCorrections()
	return &Canonicalizer{Corrections: &c, Lookup: lookup}
}

// Canonicalize is a convenience for New(lookup).Canonicalize(raw).
func Canonicalize(raw string, lookup YearLookup) string {
	return New(lookup).Canonicalize(raw)
}

// Canonicalize returns the canonical form of raw. The stage chain is repeated
// until the name is stable, so feeding the result back returns it unchanged.
// The lookup is consulted at most once per call.
func (c *Canonicalizer) Canonicalize(raw string) string {
	lookup := once(c.Lookup)
	name := raw
	for i := 0; i < maxPasses; i++ {
		next := c.pass(name, raw, lookup)
		if next == name {
			break
		}
		name = next
	}
	return name
}

func (c *Canonicalizer) pass(name, raw string, lookup YearLookup) string {
	corr := c.corrections()
	name = ApplyCorrections(name, corr)
	name = Normalize(name, corr)
	year := ResolveYear(name, raw, lookup)
	name = Sequence(name, year)
	return Transpose(name)
}

func (c *Canonicalizer) corrections() Corrections {
	if c.Corrections == nil {
		return DefaultCorrections()
	}
	return *c.Corrections
}

// once memoizes a lookup for the lifetime of one Canonicalize call.
func once(lookup YearLookup) YearLookup {
	if lookup == nil {
		return nil
	}
	var (
		called bool
		year   string
		ok     bool
	)
	return func(raw string) (string, bool) {
		if !called {
			year, ok = lookup(raw)
			called = true
		}
		return year, ok
	}
}
