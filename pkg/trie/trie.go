package trie

// node is a single point in the trie, it owns its children exclusively.
type node[K comparable, V any] struct {
	children map[K]*node[K, V] // allocated on first child
	value    V
	hasValue bool // value is set, the node ends an inserted key
}

// child returns the child for token, or nil
func (n *node[K, V]) child(token K) *node[K, V] {
	return n.children[token]
}

// childOrCreate returns the child for token, creating it the first time it is needed.
func (n *node[K, V]) childOrCreate(token K) *node[K, V] {
	if n.children == nil {
		n.children = make(map[K]*node[K, V])
	}
	c, ok := n.children[token]
	if !ok {
		c = &node[K, V]{}
		n.children[token] = c
	}
	return c
}

// Trie maps sequences of tokens (K) to values (V).
// The zero value is an empty trie ready to use.
type Trie[K comparable, V any] struct {
	root node[K, V] // the empty sequence prefix
	size int        // number of keys holding a value
}

// New creates an empty trie.
func New[K comparable, V any]() *Trie[K, V] {
	return &Trie[K, V]{}
}

// Insert associates value with key, overriding any previous value of that exact key.
// Missing nodes along the path are created. An empty key sets the root value.
func (t *Trie[K, V]) Insert(key []K, value V) {
	cur := &t.root
	for _, token := range key {
		cur = cur.childOrCreate(token)
	}
	if !cur.hasValue {
		t.size++
	}
	cur.value = value
	cur.hasValue = true
}

// Get returns a copy of the value stored at key, and false if key was never inserted.
// Runs in O(len(key)).
func (t *Trie[K, V]) Get(key []K) (V, bool) {
	n := t.traverse(key)
	if n == nil || !n.hasValue {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether key was inserted. Runs in O(len(key)).
func (t *Trie[K, V]) Contains(key []K) bool {
	_, ok := t.Get(key)
	return ok
}

// BestMatch returns the value of the longest inserted key that is a prefix of (or equal to) key.
//
//	(four, score, and)        -> seven
//	(four, score, and, seven) -> years
//
// BestMatch(four, score, and, seven, years, ago) returns years.
func (t *Trie[K, V]) BestMatch(key []K) (V, bool) {
	v, _, ok := t.LongestPrefix(key)
	return v, ok
}

// LongestPrefix is BestMatch, and also reports how many leading tokens of key
// form the matched entry. n is 0 when the match is the root (empty key) or when nothing matched.
func (t *Trie[K, V]) LongestPrefix(key []K) (value V, n int, ok bool) {
	cur := &t.root
	if cur.hasValue {
		value, ok = cur.value, true
	}
	for depth, token := range key {
		cur = cur.child(token)
		if cur == nil {
			break
		}
		if cur.hasValue {
			value, n, ok = cur.value, depth+1, true
		}
	}
	return value, n, ok
}

// Len returns the number of keys that hold a value.
func (t *Trie[K, V]) Len() int {
	return t.size
}

// traverse follows key from the root and returns the node it ends at,
// or nil as soon as a token has no matching child.
func (t *Trie[K, V]) traverse(key []K) *node[K, V] {
	cur := &t.root
	for _, token := range key {
		cur = cur.child(token)
		if cur == nil {
			return nil
		}
	}
	return cur
}
