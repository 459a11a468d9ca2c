package ast

type UnaryOp uint8

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNot:
		return "!"
	case UnaryNeg:
		return "-"
	default:
		return "?"
	}
}

type BinaryOp uint8

const (
	BinaryMul BinaryOp = iota
	BinaryDiv
	BinaryMod
	BinaryAdd
	BinarySub
	BinaryLt
	BinaryLtEq
	BinaryGt
	BinaryGtEq
	BinaryEq
	BinaryNotEq
	BinaryAnd
	BinaryOr
)

var binaryOpText = [...]string{
	BinaryMul:   "*",
	BinaryDiv:   "/",
	BinaryMod:   "%",
	BinaryAdd:   "+",
	BinarySub:   "-",
	BinaryLt:    "<",
	BinaryLtEq:  "<=",
	BinaryGt:    ">",
	BinaryGtEq:  ">=",
	BinaryEq:    "==",
	BinaryNotEq: "!=",
	BinaryAnd:   "&&",
	BinaryOr:    "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsArithmetic reports whether op takes and yields integers.
func (op BinaryOp) IsArithmetic() bool {
	return op <= BinarySub
}

// IsOrdering reports whether op compares two integers.
func (op BinaryOp) IsOrdering() bool {
	return op >= BinaryLt && op <= BinaryGtEq
}

func (op BinaryOp) IsEquality() bool {
	return op == BinaryEq || op == BinaryNotEq
}

func (op BinaryOp) IsLogical() bool {
	return op == BinaryAnd || op == BinaryOr
}
