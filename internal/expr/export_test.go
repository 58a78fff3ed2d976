package expr

func EffectiveName(parts []string, alias string) string {
	return effectiveName(parts, alias)
}

// RegistryEntries returns the registry built from from as key=table pairs in
// iteration order.
func RegistryEntries(from []TableRef) []string {
	r := newTableRegistry(from)
	entries := make([]string, 0, r.len())
	for _, key := range r.keys {
		entries = append(entries, key+"="+r.tables[key])
	}
	return entries
}
