package sched

// NumaInfo is the optional topology table the thread-pool collaborator
// supplies (spec.md §9 "Design Notes"): for each NUMA node, the team
// indices resident on it, and for each thread its node id and index
// within that node. Absent, victim selection degrades to uniform random
// over the whole team.
type NumaInfo struct {
	// Nodes[i] lists the team indices resident on NUMA node i.
	Nodes [][]int
	// NodeOf[teamID] is the NUMA node a given team member lives on.
	NodeOf []int
	// IndexInNode[teamID] is teamID's position within Nodes[NodeOf[teamID]].
	IndexInNode []int
}

// NewNumaInfo builds a NumaInfo from a partition of team indices into
// NUMA nodes, e.g. groups = [][]int{{0,1,2,3}, {4,5,6,7}} for an
// 8-thread team split across two nodes.
func NewNumaInfo(groups [][]int) *NumaInfo {
	var maxID int
	for _, g := range groups {
		for _, id := range g {
			if id > maxID {
				maxID = id
			}
		}
	}
	info := &NumaInfo{
		Nodes:       groups,
		NodeOf:      make([]int, maxID+1),
		IndexInNode: make([]int, maxID+1),
	}
	for node, g := range groups {
		for idx, id := range g {
			info.NodeOf[id] = node
			info.IndexInNode[id] = idx
		}
	}
	return info
}

// EvenNumaInfo splits nthreads team members evenly across nodeCount NUMA
// nodes, in contiguous blocks of team ids.
func EvenNumaInfo(nthreads, nodeCount int) *NumaInfo {
	if nodeCount <= 0 {
		nodeCount = 1
	}
	groups := make([][]int, nodeCount)
	for id := 0; id < nthreads; id++ {
		node := id * nodeCount / nthreads
		groups[node] = append(groups[node], id)
	}
	return NewNumaInfo(groups)
}
