package pathmap

import "strings"

// SplitPath breaks a path into the segments used as trie keys.
// A leading separator becomes a root segment equal to the separator, so "/etc"
// and "etc" are different keys. Empty and "." segments are dropped.
//
//	SplitPath("/etc/bin/", "/") // ["/", "etc", "bin"]
//	SplitPath("etc//./bin", "/") // ["etc", "bin"]
func SplitPath(path string, separator string) []string {
	segments := []string{}
	if path == "" {
		return segments
	}
	if separator == "" {
		return append(segments, path)
	}
	if strings.HasPrefix(path, separator) {
		segments = append(segments, separator)
	}
	for _, s := range strings.Split(path, separator) {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

// JoinPath is the inverse of SplitPath.
func JoinPath(segments []string, separator string) string {
	if len(segments) == 0 {
		return ""
	}
	if segments[0] == separator {
		return separator + strings.Join(segments[1:], separator)
	}
	return strings.Join(segments, separator)
}

// joinResolved appends the unmatched suffix to a destination path.
func joinResolved(destination string, suffix []string, separator string) string {
	if len(suffix) == 0 {
		return destination
	}
	rest := strings.Join(suffix, separator)
	if destination == "" {
		return rest
	}
	if strings.HasSuffix(destination, separator) {
		return destination + rest
	}
	return destination + separator + rest
}
