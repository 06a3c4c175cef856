package tracker

// Direction of a reorder move within a scope.
type Direction int

const (
	MoveUp Direction = iota // toward the front of the sort order
	MoveDown
)

// swapNeighbor locates the matching item in the order-sorted scope and swaps
// order values with its neighbor in the given direction. Exactly two items
// change; every other item keeps its order number. Out-of-bounds neighbors
// make the move a no-op, so boundary items stay put.
func swapNeighbor[T any](scope []*T, match func(*T) bool, swap func(a, b *T), dir Direction) {
	idx := -1
	for i, item := range scope {
		if match(item) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	neighbor := idx - 1
	if dir == MoveDown {
		neighbor = idx + 1
	}
	if neighbor < 0 || neighbor >= len(scope) {
		return
	}
	swap(scope[idx], scope[neighbor])
}
