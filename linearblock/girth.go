package linearblock

import (
	"context"
	"sync"

	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
)

// Girth returns the length of the shortest cycle in the Tanner graph of H, or
// -1 when the graph is a forest. Every cycle passes through a check node so a
// BFS is started from each row of H.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func (p *ParityCheck) Girth(ctx context.Context, threads int) int {
	rows := p.ParitySymbols()

	pool := threadpool.NewFixedSize(ctx, threads, rows)
	girth := -1
	mux := sync.Mutex{}
	for i := 0; i < rows; i++ {
		check := i
		pool.Add(func() {
			g := shortestCycleFrom(p.H, check)
			if g < 0 {
				return
			}

			mux.Lock()
			if girth < 0 || g < girth {
				girth = g
			}
			mux.Unlock()
		})
	}
	pool.Wait()
	return girth
}

// tanner node ids: checks are [0,rows), variables are rows+column
func shortestCycleFrom(H mat.SparseMat, check int) int {
	rows, _ := H.Dims()

	neighbors := func(node int) []int {
		if node < rows {
			cols := H.Row(node).NonzeroArray()
			vars := make([]int, len(cols))
			for i, c := range cols {
				vars[i] = c + rows
			}
			return vars
		}
		return H.Column(node - rows).NonzeroArray()
	}

	dist := map[int]int{check: 0}
	parent := map[int]int{check: -1}
	queue := []int{check}
	shortest := -1
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		//nothing found deeper can beat what we already have
		if shortest > 0 && 2*dist[node] >= shortest {
			break
		}

		for _, next := range neighbors(node) {
			if next == parent[node] {
				continue
			}
			d, seen := dist[next]
			if !seen {
				dist[next] = dist[node] + 1
				parent[next] = node
				queue = append(queue, next)
				continue
			}
			cycle := dist[node] + d + 1
			if shortest < 0 || cycle < shortest {
				shortest = cycle
			}
		}
	}
	return shortest
}
