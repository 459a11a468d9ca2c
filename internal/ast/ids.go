package ast

type (
	// NodeID addresses any node of a Tree: declarations, type references and expressions.
	NodeID uint32
	// PayloadID addresses the kind-specific data of a node.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
