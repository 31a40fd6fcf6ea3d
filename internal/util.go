package internal

// ReconstructPath rebuilds the path ending at current from the cameFrom map.
// It reports false when the chain stops before reaching start or loops back
// on itself.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	current NodeType,
	start NodeType,
) ([]NodeType, bool) {
	path := []NodeType{current}
	for current != start {
		// a well-formed chain never has more links than recorded predecessors
		if len(path) > len(cameFrom) {
			return nil, false
		}
		previousNode, exists := cameFrom[current]
		if !exists {
			return nil, false
		}
		path = append(path, previousNode)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, true
}
