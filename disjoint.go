package mazesearch

// disjointSets is a union-find forest over cell indices with union by rank
// and path compression.
type disjointSets struct {
	parent []int
	rank   []uint8
}

func newDisjointSets(size int) *disjointSets {
	sets := &disjointSets{
		parent: make([]int, size),
		rank:   make([]uint8, size),
	}
	for i := range sets.parent {
		sets.parent[i] = i
	}
	return sets
}

// find returns the root of i's set.
func (s *disjointSets) find(i int) int {
	for s.parent[i] != i {
		s.parent[i] = s.parent[s.parent[i]]
		i = s.parent[i]
	}
	return i
}

// union merges the sets of a and b and reports whether they were separate.
func (s *disjointSets) union(a, b int) bool {
	x, y := s.find(a), s.find(b)
	if x == y {
		return false
	}
	switch {
	case s.rank[x] > s.rank[y]:
		s.parent[y] = x
	case s.rank[x] < s.rank[y]:
		s.parent[x] = y
	default:
		s.parent[x] = y
		s.rank[y]++
	}
	return true
}
