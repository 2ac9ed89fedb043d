package typescript

import (
	"sort"
	"strings"
)

// NamespaceUsage records which resource claimed a namespace.
type NamespaceUsage struct {
	Source    string
	Name      string
	Namespace string
}

func (u NamespaceUsage) Key() string {
	return u.Source + "/" + u.Name
}

// NamespaceRegistry collects the namespaces of one compilation run and reports
// the ones claimed by more than one resource. The result does not depend on
// the order in which resources are collected.
type NamespaceRegistry struct {
	usages map[string][]NamespaceUsage
}

func NewNamespaceRegistry() *NamespaceRegistry {
	return &NamespaceRegistry{
		usages: make(map[string][]NamespaceUsage),
	}
}

// Collect derives and records the namespace of a resource.
func (r *NamespaceRegistry) Collect(source, name string) string {
	ns := Namespace(source, name)
	r.usages[ns] = append(r.usages[ns], NamespaceUsage{Source: source, Name: name, Namespace: ns})
	return ns
}

// Conflicts returns the other resources sharing the namespace of (source,
// name), sorted by key. It is empty when the namespace is unique.
func (r *NamespaceRegistry) Conflicts(source, name string) []string {
	usages := r.usages[Namespace(source, name)]
	if len(usages) < 2 {
		return nil
	}
	self := source + "/" + name
	var others []string
	skipped := false
	for _, u := range usages {
		// A duplicated pair conflicts with itself, so only skip one occurrence.
		if u.Key() == self && !skipped {
			skipped = true
			continue
		}
		others = append(others, u.Key())
	}
	sort.Strings(others)
	return others
}

// Collisions lists every namespace claimed more than once, sorted.
func (r *NamespaceRegistry) Collisions() []string {
	var out []string
	for ns, usages := range r.usages {
		if len(usages) > 1 {
			keys := make([]string, len(usages))
			for i, u := range usages {
				keys[i] = u.Key()
			}
			sort.Strings(keys)
			out = append(out, ns+" ("+strings.Join(keys, ", ")+")")
		}
	}
	sort.Strings(out)
	return out
}
