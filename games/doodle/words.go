/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
)

// WordPool is shared by every room and never modified after construction.
type WordPool struct {
	words []string
}

var defaultWords = []string{
	"apple", "car", "house", "tree", "dog",
	"computer", "banana", "rocket", "guitar", "pizza",
}

func DefaultWords() WordPool {
	return WordPool{words: append([]string(nil), defaultWords...)}
}

func NewWordPool(words []string) (WordPool, error) {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return WordPool{}, ErrNoWords
	}

	return WordPool{words: out}, nil
}

// ReadWords builds a pool from newline-separated words.
func ReadWords(r io.Reader) (WordPool, error) {
	var words []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return WordPool{}, fmt.Errorf("reading words: %w", err)
	}

	return NewWordPool(words)
}

func LoadWords(path string) (WordPool, error) {
	f, err := os.Open(path)
	if err != nil {
		return WordPool{}, err
	}
	defer f.Close()

	pool, err := ReadWords(f)
	if err != nil {
		return WordPool{}, fmt.Errorf("%s: %w", path, err)
	}

	return pool, nil
}

func (w WordPool) Len() int {
	return len(w.words)
}

// Pick returns a uniformly chosen word. intn may be nil.
func (w WordPool) Pick(intn func(int) int) string {
	if len(w.words) == 0 {
		return ""
	}
	if intn == nil {
		intn = rand.IntN
	}

	return w.words[intn(len(w.words))]
}
