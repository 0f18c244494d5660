package projects

import "strings"

// predicate decides whether a project stays in a filtered listing.
type predicate func(Project) bool

// ApplyFilter narrows the listing with the filter's active constraints,
// preserving order. An empty filter returns the input unchanged.
func ApplyFilter(list []Project, filter Filter) []Project {
	preds := filter.predicates()
	if len(preds) == 0 {
		return list
	}

	filtered := make([]Project, 0, len(list))
	for _, p := range list {
		if matchesAll(p, preds) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesAll(p Project, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

// predicates compiles the filter's active constraints. All comparisons are
// case-insensitive.
func (f Filter) predicates() []predicate {
	var preds []predicate

	if f.Field != "" {
		want := strings.ToLower(f.Field)
		preds = append(preds, func(p Project) bool {
			return strings.ToLower(string(p.Field)) == want
		})
	}

	if f.Difficulty != "" {
		want := strings.ToLower(f.Difficulty)
		preds = append(preds, func(p Project) bool {
			return strings.ToLower(p.Difficulty) == want
		})
	}

	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		preds = append(preds, func(p Project) bool {
			if strings.Contains(strings.ToLower(p.Title), term) ||
				strings.Contains(strings.ToLower(p.Description), term) ||
				strings.Contains(strings.ToLower(p.ClientPersona), term) {
				return true
			}
			for _, tool := range p.Tools {
				if strings.Contains(strings.ToLower(tool), term) {
					return true
				}
			}
			return false
		})
	}

	return preds
}
