package mir

// BlockID indexes a function's block list. ValueID numbers instruction
// results within one function; GlobalID indexes the module's interned
// globals. Negative IDs are invalid.
type (
	BlockID  int32
	ValueID  int32
	GlobalID int32
)

const (
	NoBlockID  BlockID  = -1
	NoValueID  ValueID  = -1
	NoGlobalID GlobalID = -1
)
