package discovery

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Directory responses arrive in one of three shapes depending on which
// strategy answered: an object holding the entries under a models/model/data
// field, a bare array of entries, or some other envelope with one of those
// fields nested inside. Each shape has its own extraction below; everything
// funnels into the same dedupe-and-sort step.

var entryFieldOrder = []string{"models", "model", "data"}

// NormalizeModelIDs extracts display identifiers from a raw directory
// response. Entries exposing neither a name nor an id are skipped; the result
// is deduplicated and sorted lexicographically. A response no variant can
// handle yields an empty set, never an error.
func NormalizeModelIDs(raw []byte) []string {
	parsed := gjson.ParseBytes(raw)

	var entries []gjson.Result
	switch {
	case parsed.IsObject():
		entries = entriesFromObject(parsed)
	case parsed.IsArray():
		entries = parsed.Array()
	default:
		// Not JSON we recognize; nothing to extract.
	}
	if entries == nil {
		entries = entriesNested(parsed)
	}

	set := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		id := entryID(entry)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// entriesFromObject handles the mapping shape: the first of the known entry
// fields that holds an array wins.
func entriesFromObject(obj gjson.Result) []gjson.Result {
	for _, field := range entryFieldOrder {
		if arr := obj.Get(field); arr.IsArray() {
			return arr.Array()
		}
	}
	return nil
}

// entriesNested handles opaque envelopes by looking one level down for a
// models/model/data array (e.g. a pager object wrapping the page).
func entriesNested(v gjson.Result) []gjson.Result {
	var found []gjson.Result
	v.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		if entries := entriesFromObject(value); entries != nil {
			found = entries
			return false
		}
		return true
	})
	return found
}

// entryID extracts the display identifier for one directory entry: the name
// field first, then id. Non-object entries carry neither and are skipped.
func entryID(entry gjson.Result) string {
	if !entry.IsObject() {
		return ""
	}
	if name := strings.TrimSpace(entry.Get("name").String()); name != "" {
		return name
	}
	return strings.TrimSpace(entry.Get("id").String())
}
