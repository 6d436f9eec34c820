package diag

import "fmt"

type Code uint16

// Lexical (1xxx) and syntactic (2xxx) ranges belong to the frontend and
// are reserved here. The semantic core owns the 3xxx range.
const (
	UnknownCode Code = 0

	// Type checking
	TypeInfo            Code = 3000
	TypeUndefinedType   Code = 3001
	TypeUndefinedSymbol Code = 3002
	TypeMismatch        Code = 3003
	TypeArityMismatch   Code = 3004
	TypeMissingReturn   Code = 3005
	TypeNonExhaustive   Code = 3006
	TypeInvalidAwait    Code = 3007
	TypeInvalidOperator Code = 3008
	TypeNotIterable     Code = 3009
	TypeImmutableAssign Code = 3010
	TypeNotAwaitable    Code = 3011
	TypeBadPattern      Code = 3012
	TypeUnknownMember   Code = 3013
	TypeVoidReturn      Code = 3014
)

func (c Code) String() string {
	return fmt.Sprintf("AEG%04d", uint16(c))
}
