package flatten

import "strings"

// Row is one flattened value and the element path leading to it.
type Row struct {
	Path  []string
	Value string
}

// StringPath joins the row path with sep.
func (r Row) StringPath(sep string) string {
	return strings.Join(r.Path, sep)
}

// ParentKey splits the row path into the joined parent path and the last key.
// A single-segment path has an empty parent.
func (r Row) ParentKey(sep string) (parent, key string) {
	n := len(r.Path)
	if n == 0 {
		return "", ""
	}
	return strings.Join(r.Path[:n-1], sep), r.Path[n-1]
}

// Group collects the rows sharing one parent path, keyed by their last segment.
type Group struct {
	Parent string
	Keys   []string
	Values []string
}

// GroupByParent gathers rows under their parent path. Groups keep the order in
// which each parent first appears; rows keep document order inside a group.
func GroupByParent(rows []Row, sep string) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, row := range rows {
		parent, key := row.ParentKey(sep)
		i, ok := index[parent]
		if !ok {
			i = len(groups)
			index[parent] = i
			groups = append(groups, Group{Parent: parent})
		}
		groups[i].Keys = append(groups[i].Keys, key)
		groups[i].Values = append(groups[i].Values, row.Value)
	}
	return groups
}
