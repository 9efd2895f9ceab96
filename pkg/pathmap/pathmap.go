// Package pathmap remaps file system paths by their longest mapped prefix.
package pathmap

import (
	"log/slog"

	"github.com/khalid-nowaf/pathtrie/pkg/trie"
)

// PathMap maps source paths to destination paths. Source paths are stored in a
// trie keyed by path segments, so a lookup costs one step per segment.
//
// A PathMap is not safe for concurrent use.
type PathMap struct {
	paths     *trie.Trie[string, string]
	separator string
	logger    *slog.Logger
}

// NewPathMap creates an empty PathMap configured by opts.
func NewPathMap(opts ...Option) *PathMap {
	p := DefaultOptions()
	for _, opt := range opts {
		p = opt(p)
	}
	p.paths = trie.New[string, string]()
	return p
}

// Separator returns the separator paths are split on.
func (p *PathMap) Separator() string {
	return p.separator
}

// Insert maps src to dst, replacing any destination src already had.
func (p *PathMap) Insert(src string, dst string) *InsertionResult {
	key := SplitPath(src, p.separator)
	result := &InsertionResult{
		Source:      src,
		Destination: dst,
		Action:      InsertNewMapping{},
	}

	if previous, ok := p.paths.Get(key); ok {
		result.Action = ReplaceExistingMapping{}
		result.Previous = previous
		p.logger.Info("Mapping replaced", "src", src, "dst", dst, "previous", previous)
	} else {
		p.logger.Info("Mapping inserted", "src", src, "dst", dst)
	}

	p.paths.Insert(key, dst)
	return result
}

// Lookup returns the destination of src if src itself was inserted.
func (p *PathMap) Lookup(src string) (string, bool) {
	return p.paths.Get(SplitPath(src, p.separator))
}

// Contains reports whether src itself was inserted.
func (p *PathMap) Contains(src string) bool {
	return p.paths.Contains(SplitPath(src, p.separator))
}

// BestMatch returns the destination of the longest inserted prefix of path.
func (p *PathMap) BestMatch(path string) (string, bool) {
	return p.paths.BestMatch(SplitPath(path, p.separator))
}

// Resolve remaps path: the longest inserted prefix is replaced by its destination,
// the remaining segments are kept.
//
//	/etc/bin/echo -> usr/bin
//	Resolve("/etc/bin/echo/hello.txt").Resolved == "usr/bin/hello.txt"
func (p *PathMap) Resolve(path string) *Resolution {
	key := SplitPath(path, p.separator)
	resolution := &Resolution{Path: path}

	dst, n, ok := p.paths.LongestPrefix(key)
	if !ok {
		p.logger.Debug("No mapping found", "path", path)
		return resolution
	}

	resolution.Found = true
	resolution.Matched = JoinPath(key[:n], p.separator)
	resolution.Destination = dst
	resolution.Resolved = joinResolved(dst, key[n:], p.separator)
	p.logger.Debug("Path resolved", "path", path, "matched", resolution.Matched, "resolved", resolution.Resolved)
	return resolution
}

// Len returns the number of mapped source paths.
func (p *PathMap) Len() int {
	return p.paths.Len()
}
