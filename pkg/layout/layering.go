package layout

// Layers assigns node ids to ordered layers consistent with edge direction.
//
// This is Kahn's algorithm taken layer by layer: every currently
// zero-in-degree node forms one layer, then its outgoing edges are removed.
// Two departures from the textbook version make it safe on arbitrary
// graphs:
//
//   - if no node starts at in-degree zero (the graph has no acyclic entry
//     point), the single node with the smallest in-degree seeds the first
//     layer on its own
//   - nodes the traversal never reaches are appended as one final layer in
//     input order
//
// Node order within a layer follows input order.
func Layers(ids []string, edges []Edge) [][]string {
	present := make(map[string]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}

	inDegree := make(map[string]int, len(ids))
	succ := make(map[string][]string)
	for _, e := range edges {
		if !present[e.Source] || !present[e.Target] {
			continue
		}
		inDegree[e.Target]++
		succ[e.Source] = append(succ[e.Source], e.Target)
	}

	var queue []string
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	if len(queue) == 0 && len(ids) > 0 {
		seed := ids[0]
		for _, id := range ids[1:] {
			if inDegree[id] < inDegree[seed] {
				seed = id
			}
		}
		queue = []string{seed}
	}

	visited := make(map[string]bool, len(ids))
	var layers [][]string
	for len(queue) > 0 {
		layer := queue
		queue = nil
		for _, id := range layer {
			visited[id] = true
		}
		for _, id := range layer {
			for _, next := range succ[id] {
				inDegree[next]--
				if inDegree[next] == 0 && !visited[next] {
					queue = append(queue, next)
				}
			}
		}
		layers = append(layers, layer)
	}

	var rest []string
	for _, id := range ids {
		if !visited[id] {
			rest = append(rest, id)
		}
	}
	if len(rest) > 0 {
		layers = append(layers, rest)
	}

	return layers
}
