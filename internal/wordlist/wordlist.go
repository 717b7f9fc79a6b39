// Package wordlist loads and holds the practice vocabulary.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Vocabulary is an immutable, de-duplicated list of lowercase words.
type Vocabulary struct {
	words []string
}

// New builds a vocabulary from words, dropping blanks, duplicates and words
// rejected by the filter. A nil filter keeps everything.
func New(words []string, filter FilterFunc) (Vocabulary, error) {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if filter != nil && !filter(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if len(out) == 0 {
		return Vocabulary{}, fmt.Errorf("word list is empty")
	}
	return Vocabulary{words: out}, nil
}

// Default returns the built-in vocabulary.
func Default() Vocabulary {
	v, err := New(defaultWords, LowerASCII)
	if err != nil {
		panic(err)
	}
	return v
}

// Words returns a copy of the vocabulary.
func (v Vocabulary) Words() []string {
	return append([]string(nil), v.words...)
}

// Len returns the number of words.
func (v Vocabulary) Len() int {
	return len(v.words)
}

// At returns the i-th word.
func (v Vocabulary) At(i int) string {
	return v.words[i]
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadVocabulary reads a word list file and keeps lowercase ASCII words that
// also pass every extra filter.
func LoadVocabulary(path string, extra ...FilterFunc) (Vocabulary, error) {
	words, err := LoadWords(path)
	if err != nil {
		return Vocabulary{}, err
	}
	return New(words, All(append([]FilterFunc{LowerASCII}, extra...)...))
}
