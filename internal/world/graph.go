package world

// Circuit returns the circuit with the provided id.
func (d Definition) Circuit(id string) (Circuit, bool) {
	for _, circuit := range d.Circuits {
		if circuit.ID == id {
			return circuit, true
		}
	}
	return Circuit{}, false
}

// Node returns the node with the provided id within the circuit.
func (c Circuit) Node(id string) (Node, bool) {
	for _, node := range c.Nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}

// Link returns the link with the provided id within the circuit.
func (c Circuit) Link(id string) (Link, bool) {
	for _, link := range c.Links {
		if link.ID == id {
			return link, true
		}
	}
	return Link{}, false
}

// EntryNode returns the first entry node of the circuit.
func (c Circuit) EntryNode() (Node, bool) {
	for _, node := range c.Nodes {
		if node.IsEntry() {
			return node, true
		}
	}
	return Node{}, false
}

// FinalNode returns the circuit's designated final node, if any.
func (c Circuit) FinalNode() (Node, bool) {
	for _, node := range c.Nodes {
		if node.IsFinal {
			return node, true
		}
	}
	return Node{}, false
}

// LinksTouching returns every link traversable from the provided node:
// links starting at it, plus bidirectional links ending at it.
func (c Circuit) LinksTouching(nodeID string) []Link {
	var links []Link
	for _, link := range c.Links {
		if link.From == nodeID {
			links = append(links, link)
			continue
		}
		if link.To == nodeID && link.IsBidirectional() {
			links = append(links, link)
		}
	}
	return links
}

// LinkBetween returns a link traversable from one node to another, honoring
// link direction.
func (c Circuit) LinkBetween(fromID, toID string) (Link, bool) {
	for _, link := range c.Links {
		if link.From == fromID && link.To == toID {
			return link, true
		}
		if link.From == toID && link.To == fromID && link.IsBidirectional() {
			return link, true
		}
	}
	return Link{}, false
}

// FarEnd returns the node id on the other side of the link from the
// provided node id.
func (l Link) FarEnd(nodeID string) string {
	if l.From == nodeID {
		return l.To
	}
	return l.From
}
