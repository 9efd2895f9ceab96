package pathmap

import "fmt"

// records the outcome of inserting a mapping for reporting
type InsertionResult struct {
	Source      string // source path as given
	Destination string // new destination
	Previous    string // replaced destination, only set for ReplaceExistingMapping
	Action             // what the insertion did
}

func (ir *InsertionResult) String() string {
	str := fmt.Sprintf("Action Taken: %s, Source: %s, Destination: %s", ir.Action, ir.Source, ir.Destination)
	if _, ok := ir.Action.(ReplaceExistingMapping); ok {
		str += fmt.Sprintf(", Previous: %s", ir.Previous)
	}
	return str
}

// Resolution is the outcome of resolving a path against the table.
type Resolution struct {
	Path        string `json:"path"`        // queried path
	Matched     string `json:"matched"`     // longest mapped source prefix of Path
	Destination string `json:"destination"` // destination mapped to Matched
	Resolved    string `json:"resolved"`    // Destination joined with the part of Path after Matched
	Found       bool   `json:"found"`       // false if no prefix of Path is mapped
}

func (r *Resolution) String() string {
	if !r.Found {
		return fmt.Sprintf("%s: no match", r.Path)
	}
	return fmt.Sprintf("%s -> %s (matched %s -> %s)", r.Path, r.Resolved, r.Matched, r.Destination)
}
