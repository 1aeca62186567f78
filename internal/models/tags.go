package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// TagList is an ordered set of normalized (trimmed, lowercased) tags. It is
// kept as a real slice in memory and serialized to comma-joined text only at
// the storage boundary.
type TagList []string

// ParseTags builds a TagList from comma-separated input. Entries are
// trimmed, lowercased and deduplicated; empty entries are dropped.
func ParseTags(raw string) TagList {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tags TagList
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// Contains reports whether tag is in the set. The query tag is normalized
// the same way stored tags are.
func (t TagList) Contains(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, have := range t {
		if have == tag {
			return true
		}
	}
	return false
}

// MatchAny reports whether the set intersects the query non-emptily.
// An empty query matches nothing.
func (t TagList) MatchAny(query []string) bool {
	for _, q := range query {
		if t.Contains(q) {
			return true
		}
	}
	return false
}

// MatchAll reports whether the set is a superset of the query.
// An empty query matches nothing.
func (t TagList) MatchAll(query []string) bool {
	if len(query) == 0 {
		return false
	}
	for _, q := range query {
		if !t.Contains(q) {
			return false
		}
	}
	return true
}

// String renders the storage form.
func (t TagList) String() string {
	return strings.Join(t, ",")
}

// Value implements driver.Valuer, storing the set as comma-joined text.
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return nil, nil
	}
	return t.String(), nil
}

// Scan implements sql.Scanner, parsing the comma-joined storage form.
func (t *TagList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = nil
	case string:
		*t = ParseTags(v)
	case []byte:
		*t = ParseTags(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TagList", src)
	}
	return nil
}
