package auth

// MenuNode is one entry of the navigation tree the dashboard renders. The
// create/update/delete flags are the per-route capability switches each
// screen reads before showing its buttons.
type MenuNode struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Path      string     `json:"path"`
	CanCreate bool       `json:"canCreate"`
	CanUpdate bool       `json:"canUpdate"`
	CanDelete bool       `json:"canDelete"`
	Children  []MenuNode `json:"children,omitempty"`
}

// FindNode walks the tree depth-first for the entry with the given key.
func FindNode(nodes []MenuNode, key string) *MenuNode {
	for i := range nodes {
		if nodes[i].Key == key {
			return &nodes[i]
		}
		if found := FindNode(nodes[i].Children, key); found != nil {
			return found
		}
	}
	return nil
}

// Allows reports whether the node grants the given action. Read access is
// implied by the node's presence in the tree.
func (n MenuNode) Allows(action string) bool {
	switch action {
	case ActionRead:
		return true
	case ActionCreate:
		return n.CanCreate
	case ActionUpdate:
		return n.CanUpdate
	case ActionDelete:
		return n.CanDelete
	default:
		return false
	}
}
