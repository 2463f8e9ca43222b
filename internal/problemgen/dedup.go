package problemgen

// keySet records canonical keys already produced within one batch.
type keySet map[string]struct{}

func newKeySet() keySet {
	return make(keySet)
}

// add inserts key and reports whether it was new.
func (s keySet) add(key string) bool {
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}
