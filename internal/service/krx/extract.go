package krx

import "sort"

// priorityKeys are checked first when the response root is a map. Every list
// found under these keys is concatenated in priority order.
var priorityKeys = []string{"OutBlock_1", "output", "result", "data", "list"}

// ExtractRows defensively locates the row collection inside a decoded JSON
// value of unknown shape. Absence of data is not a failure: the result is
// simply empty.
func ExtractRows(v any) []map[string]any {
	switch root := v.(type) {
	case []any:
		return keepMaps(root)
	case map[string]any:
		var rows []map[string]any
		for _, key := range priorityKeys {
			if list, ok := root[key].([]any); ok {
				rows = append(rows, keepMaps(list)...)
			}
		}
		if rows != nil {
			return rows
		}
		// No priority key held a list; scan every value. Keys are walked in
		// sorted order so the scan is deterministic.
		keys := make([]string, 0, len(root))
		for k := range root {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if list, ok := root[k].([]any); ok {
				rows = append(rows, keepMaps(list)...)
			}
		}
		return rows
	default:
		return nil
	}
}

// keepMaps keeps only map elements, dropping everything else silently.
func keepMaps(list []any) []map[string]any {
	rows := make([]map[string]any, 0, len(list))
	for _, el := range list {
		if m, ok := el.(map[string]any); ok {
			rows = append(rows, m)
		}
	}
	return rows
}
