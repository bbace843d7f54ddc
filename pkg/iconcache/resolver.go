package iconcache

// Resolver answers "which icon does this path show" from the icons a user
// set by hand and from the assignment cache. Manual icons take precedence.
type Resolver struct {
	Manual map[string]string
	Cache  *Cache
}

// IconNameForPath implements types.IconNameResolver
func (r Resolver) IconNameForPath(path string) (string, bool) {
	if name, ok := r.Manual[path]; ok && name != "" {
		return name, true
	}
	if r.Cache == nil {
		return "", false
	}
	a, ok := r.Cache.Get(path)
	if !ok {
		return "", false
	}
	return a.IconNameWithPrefix, true
}
