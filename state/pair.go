package state

// Pair and Triple are small tuple helpers used by mock topologies and
// test fixtures.

type Pair[Ty1, Ty2 any] struct {
	V1 Ty1
	V2 Ty2
}

type Triple[Ty1, Ty2, Ty3 any] struct {
	V1 Ty1
	V2 Ty2
	V3 Ty3
}
