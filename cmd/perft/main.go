// Command perft counts leaf nodes of the move-generation tree from a
// given position. Counts for known positions are the standard way to
// validate a move generator.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/aldenpark/chessmate-backend/internal/engine"
)

func main() {
	fen := flag.String("fen", engine.StartFEN, "position to search from")
	depth := flag.Int("depth", 5, "search depth in plies")
	divide := flag.Bool("divide", false, "print per-root-move subtotals")
	flag.Parse()

	board, err := engine.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "perft: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	if *divide {
		counts := engine.PerftDivide(board, *depth)
		roots := make([]string, 0, len(counts))
		for root := range counts {
			roots = append(roots, root)
		}
		sort.Strings(roots)
		var total uint64
		for _, root := range roots {
			fmt.Printf("%s: %d\n", root, counts[root])
			total += counts[root]
		}
		fmt.Printf("total: %d (%s)\n", total, time.Since(start).Round(time.Millisecond))
		return
	}

	nodes := engine.Perft(board, *depth)
	elapsed := time.Since(start)
	fmt.Printf("perft(%d) = %d (%s, %.0f nodes/s)\n",
		*depth, nodes, elapsed.Round(time.Millisecond), float64(nodes)/elapsed.Seconds())
}
