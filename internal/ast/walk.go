package ast

// Children returns the direct children of id in source order. Missing
// optional children (NoNodeID) are skipped.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var out []NodeID
	push := func(ids ...NodeID) {
		for _, c := range ids {
			if c.IsValid() {
				out = append(out, c)
			}
		}
	}

	switch n.Kind {
	case NodeParam, NodeVar, NodeResource, NodeModule, NodeOutput:
		d, _ := t.Decl(id)
		push(d.Type, d.Target, d.Value)
	case NodeString:
		s, _ := t.StringLit(id)
		push(s.Holes...)
	case NodeObject:
		o, _ := t.Object(id)
		push(o.Props...)
	case NodeProperty:
		p, _ := t.Property(id)
		push(p.Value)
	case NodeArray:
		a, _ := t.Array(id)
		push(a.Items...)
	case NodeMember:
		m, _ := t.Member(id)
		push(m.Target)
	case NodeIndex:
		ix, _ := t.Index(id)
		push(ix.Target, ix.Index)
	case NodeCall:
		c, _ := t.Call(id)
		push(c.Callee)
		push(c.Args...)
	case NodeUnary:
		u, _ := t.Unary(id)
		push(u.X)
	case NodeBinary:
		b, _ := t.Binary(id)
		push(b.X, b.Y)
	case NodeTernary:
		tr, _ := t.Ternary(id)
		push(tr.Cond, tr.Then, tr.Else)
	case NodeParen:
		p, _ := t.Paren(id)
		push(p.X)
	}
	return out
}

// Inspect walks the subtree rooted at id in depth-first pre-order. If visit
// returns false the children of that node are skipped.
func (t *Tree) Inspect(id NodeID, visit func(NodeID) bool) {
	if !id.IsValid() || !visit(id) {
		return
	}
	for _, c := range t.Children(id) {
		t.Inspect(c, visit)
	}
}

// InspectAll walks every top-level declaration.
func (t *Tree) InspectAll(visit func(NodeID) bool) {
	for _, d := range t.Decls {
		t.Inspect(d, visit)
	}
}

// Unparen strips any number of enclosing parentheses.
func (t *Tree) Unparen(id NodeID) NodeID {
	for {
		p, ok := t.Paren(id)
		if !ok {
			return id
		}
		id = p.X
	}
}
