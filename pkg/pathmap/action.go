package pathmap

// Action is what an insertion did to the table.
type Action interface {
	String() string
}

type (
	InsertNewMapping       struct{} // the source path had no mapping
	ReplaceExistingMapping struct{} // the source path was mapped, the old destination is dropped
)

func (_ InsertNewMapping) String() string {
	return "Insert New Mapping"
}

func (_ ReplaceExistingMapping) String() string {
	return "Replace Existing Mapping"
}
