// ## Overview
// Package trie implements a generic trie (prefix tree) keyed by sequences of tokens.
// Each token labels one edge, and a node may carry a value marking the end of an
// inserted key. A key can be a complete entry and a prefix of a longer entry at the same time.
//
// The trie supports exact lookup (Get, Contains), longest prefix matching
// (BestMatch, LongestPrefix) and insertion. Every operation walks at most
// len(key) nodes, regardless of how many entries the trie holds.
//
// ## Example usage:
//
//	t := trie.New[string, string]()
//	t.Insert([]string{"etc", "bin", "echos"}, "usr/cat")
//	t.Insert([]string{"etc", "bin", "echo", "hello.txt"}, "usr/tar")
//
//	t.Contains([]string{"etc", "bin", "echo"}) // false, only a prefix
//
//	v, ok := t.BestMatch([]string{"etc", "bin", "echo", "hello.txt", "jello"})
//	fmt.Println(v, ok) // Output: usr/tar true
//
// A Trie is not safe for concurrent use. Readers may share a Trie as long as
// no Insert runs at the same time; anything else needs external locking.
package trie
