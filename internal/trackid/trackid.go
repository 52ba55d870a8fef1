package trackid

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	vinylPosition = regexp.MustCompile(`^[A-Z]\d+$`)
	leadingNumber = regexp.MustCompile(`^(\d+)(?:\s*/\s*\d+)?$`)
)

// Index maps an identifier, in its original string form, to its rank.
type Index map[string]int

// Rank returns the rank of id.
func (ix Index) Rank(id string) (int, bool) {
	r, ok := ix[strings.TrimSpace(id)]
	return r, ok
}

// Len returns the number of identifiers in the index.
func (ix Index) Len() int {
	return len(ix)
}

// IsVinyl reports whether id is a vinyl side position such as A1.
func IsVinyl(id string) bool {
	return vinylPosition.MatchString(strings.TrimSpace(id))
}

// Number parses a numeric identifier. A trailing "/total" is tolerated.
func Number(id string) (int, bool) {
	m := leadingNumber.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// BuildIndex ranks ids. Unparseable ids are left out.
func BuildIndex(ids []string) Index {
	ix, _ := BuildIndexReport(ids)
	return ix
}

// BuildIndexReport ranks ids and also returns the ids it had to skip.
//
// If any id is a vinyl position, ranks follow the given order. Otherwise ids
// are ranked by numeric value, ties keeping input order. Every distinct id gets
// its own rank and ranks cover [0, Len()).
func BuildIndexReport(ids []string) (Index, []string) {
	var clean []string
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	for _, id := range clean {
		if IsVinyl(id) {
			return catalogOrder(clean)
		}
	}
	return numericOrder(clean)
}

func catalogOrder(ids []string) (Index, []string) {
	ix := make(Index, len(ids))
	var skipped []string
	for _, id := range ids {
		if _, seen := ix[id]; seen {
			continue
		}
		if _, ok := Number(id); !ok && !IsVinyl(id) {
			skipped = append(skipped, id)
			continue
		}
		ix[id] = len(ix)
	}
	return ix, skipped
}

func numericOrder(ids []string) (Index, []string) {
	type entry struct {
		id  string
		num int
	}
	var (
		entries []entry
		skipped []string
	)
	for _, id := range ids {
		n, ok := Number(id)
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		entries = append(entries, entry{id, n})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].num < entries[j].num })

	ix := make(Index, len(entries))
	for _, e := range entries {
		if _, seen := ix[e.id]; !seen {
			ix[e.id] = len(ix)
		}
	}
	return ix, skipped
}
