package engine

// CacheFilter restricts which modules a pool run considers. The zero
// value lets every module through.
type CacheFilter struct {
	valid   map[string]bool
	invalid map[string]bool
}

// NoFilter allows every module.
func NoFilter() CacheFilter { return CacheFilter{} }

// FilterByName allows the modules in valid (all of them when valid is
// empty or holds "*") except those in invalid. Invalid always wins.
func FilterByName(valid, invalid []string) CacheFilter {
	f := CacheFilter{valid: toSet(valid), invalid: toSet(invalid)}
	if f.valid[AllModules] {
		f.valid = nil
	}
	return f
}

// AllModules selects every module in a valid list.
const AllModules = "*"

// Allows reports whether the named module may run.
func (f CacheFilter) Allows(name string) bool {
	if f.invalid[name] {
		return false
	}
	return len(f.valid) == 0 || f.valid[name]
}

// IsEmpty reports whether the filter has no rules.
func (f CacheFilter) IsEmpty() bool {
	return len(f.valid) == 0 && len(f.invalid) == 0
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			m[n] = true
		}
	}
	return m
}
