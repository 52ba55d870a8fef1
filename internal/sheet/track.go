package sheet

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Track is one tracklist entry of a sheet.
//
// In YAML a track without duration and credits is the plain string
// "<position> <title>"; otherwise it is a single-key map from that string
// to its details:
//
//	tracks:
//	- A1 Close to the Edge
//	- A2 And You and I:
//	    duration: "10:09"
//	    credits:
//	    - Written-By - Jon Anderson
type Track struct {
	Position string
	Title    string
	Duration string
	Credits  []string
}

type trackDetails struct {
	Duration string   `yaml:"duration,omitempty"`
	Credits  []string `yaml:"credits,omitempty"`
}

// positionField matches a leading catalog position such as "3", "03", "A",
// "A1", "1-2" or "2.5".
var positionField = regexp.MustCompile(`^(?:[A-Z]\d{0,3}|\d{1,3})(?:[-.]\d{1,3})?$`)

// Name returns "<position> <title>", or only the title without position.
func (t Track) Name() string {
	return strings.TrimSpace(t.Position + " " + t.Title)
}

// ParseTrackName splits "<position> <title>".
func ParseTrackName(name string) Track {
	name = strings.TrimSpace(name)
	first, rest, ok := strings.Cut(name, " ")
	if ok && positionField.MatchString(first) {
		return Track{Position: first, Title: strings.TrimSpace(rest)}
	}
	return Track{Title: name}
}

// MarshalYAML implements yaml.Marshaler.
func (t Track) MarshalYAML() (any, error) {
	if t.Duration == "" && len(t.Credits) == 0 {
		return t.Name(), nil
	}
	return map[string]trackDetails{t.Name(): {Duration: t.Duration, Credits: t.Credits}}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Track) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = ParseTrackName(node.Value)
		return nil
	case yaml.MappingNode:
		var m map[string]trackDetails
		if err := node.Decode(&m); err != nil {
			return err
		}
		if len(m) != 1 {
			return fmt.Errorf("line %d: track entry must have exactly one key", node.Line)
		}
		for name, d := range m {
			*t = ParseTrackName(name)
			t.Duration = d.Duration
			t.Credits = d.Credits
		}
		return nil
	default:
		return fmt.Errorf("line %d: unexpected track entry", node.Line)
	}
}

// Length parses the "m:ss" or "h:mm:ss" duration. Unknown durations are 0.
func (t Track) Length() time.Duration {
	parts := strings.Split(strings.TrimSpace(t.Duration), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	var total time.Duration
	for _, p := range parts {
		var n int
		if _, err := fmt.Sscanf(p, "%d", &n); err != nil || n < 0 {
			return 0
		}
		total = total*60 + time.Duration(n)
	}
	return total * time.Second
}
