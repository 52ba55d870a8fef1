package naming

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	minYear = 1900
	maxYear = 2099
)

var (
	digitRun      = regexp.MustCompile(`\d+`)
	bracketedYear = regexp.MustCompile(`\[(\d{4})\]`)
	yearDelims    = regexp.MustCompile(`[/ ]+`)
)

// YearLookup returns a release year for a raw directory name, typically by
// asking a remote catalog. It reports false when nothing is known.
type YearLookup func(raw string) (string, bool)

// ResolveYear picks the year for name. A single plausible year in the title
// segment wins. Otherwise lookup is asked with the raw name, and its answer
// goes through ParseYear. With several candidates and no lookup answer, a
// bracketed candidate is used. Names mentioning Various are never dated.
func ResolveYear(name, raw string, lookup YearLookup) string {
	if strings.Contains(name, "Various") || strings.Contains(raw, "Various") {
		return ""
	}
	found := yearsIn(yearScope(name))
	if len(found) == 1 {
		return found[0]
	}
	if lookup != nil {
		if v, ok := lookup(raw); ok {
			if y := ParseYear(v); y != "" {
				return y
			}
		}
	}
	if len(found) > 1 {
		if m := bracketedYear.FindStringSubmatch(yearScope(name)); m != nil && plausible(m[1]) {
			return m[1]
		}
	}
	return ""
}

// ParseYear extracts a year from a catalog value such as "1972",
// "1995/1996" or "(2003 2004)". Ranges resolve to the earliest year.
// Values before 1900 are rejected.
func ParseYear(v string) string {
	v = yearDelims.ReplaceAllString(strings.TrimSpace(v), "-")
	v = strings.NewReplacer("(", "", ")", "").Replace(v)
	if len(v) <= 4 {
		if !plausible(v) {
			return ""
		}
		return v
	}
	best := 0
	for _, part := range strings.Split(v, "-") {
		n, err := strconv.Atoi(part)
		if err != nil || n < minYear || n > maxYear {
			continue
		}
		if best == 0 || n < best {
			best = n
		}
	}
	if best == 0 {
		return ""
	}
	return strconv.Itoa(best)
}

// yearScope limits year detection to the part after the separator, so digits
// that belong to an artist name are not taken for a year.
func yearScope(name string) string {
	if i := strings.Index(name, Separator); i >= 0 {
		return name[i+len(Separator):]
	}
	return name
}

func yearsIn(s string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, run := range digitRun.FindAllString(s, -1) {
		if len(run) != 4 || !plausible(run) || seen[run] {
			continue
		}
		seen[run] = true
		found = append(found, run)
	}
	return found
}

func plausible(y string) bool {
	if len(y) != 4 {
		return false
	}
	n, err := strconv.Atoi(y)
	return err == nil && n >= minYear && n <= maxYear
}
