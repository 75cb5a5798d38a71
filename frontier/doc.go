// Package frontier provides the three open-set disciplines used by grid
// search: a LIFO Stack, a FIFO Queue and a min-key Priority queue.
//
// All three satisfy Frontier[T], so a search engine can run one loop and
// swap only the discipline:
//
//	Stack[T]    – Push/Pop at the tail; key ignored.           (DFS)
//	Queue[T]    – Push at the tail, Pop at the head; key ignored. (BFS)
//	Priority[T] – Pop returns the smallest key.                 (Greedy, Dijkstra, A*)
//
// Priority breaks ties on equal keys by insertion order: the element pushed
// earlier is popped first. Internally it is a binary heap ordered by
// (key, sequence number), so the tie-break is exact and independent of
// heap layout.
//
// Complexity:
//
//   - Stack, Queue: O(1) amortized Push and Pop.
//   - Priority:     O(log n) Push and Pop.
//
// None of the types are safe for concurrent use; a frontier belongs to one
// search invocation.
package frontier
