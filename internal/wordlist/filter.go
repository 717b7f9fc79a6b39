package wordlist

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// LowerASCII keeps words made only of the letters a-z, the alphabet the
// letter model tracks.
func LowerASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

// MinLength keeps words with at least n bytes.
func MinLength(n int) FilterFunc {
	return func(word string) bool { return len(word) >= n }
}

// All keeps a word only when every filter keeps it.
func All(filters ...FilterFunc) FilterFunc {
	return func(word string) bool {
		for _, f := range filters {
			if f != nil && !f(word) {
				return false
			}
		}
		return true
	}
}
