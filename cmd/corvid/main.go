// Command corvid searches a single chess position and prints the result as
// JSON. It is deliberately not a UCI engine: no protocol loop, no opening
// book, no tablebase probing — those are out of scope for this core.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kestrelchess/corvid/internal/engine"
	"github.com/kestrelchess/corvid/internal/position"
)

func main() {
	fen := flag.String("fen", position.StartFEN, "FEN of the position to search")
	depth := flag.Int("depth", 0, "maximum search depth (0 = use -movetime only)")
	moveTimeMs := flag.Int("movetime", 2000, "search time budget in milliseconds")
	hashMB := flag.Int("hash", 64, "transposition table size in megabytes")
	flag.Parse()

	pos, err := position.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("corvid: invalid FEN %q: %v", *fen, err)
	}

	eval := engine.NewEvaluator(pos)
	tt := engine.NewTable(*hashMB)

	var end engine.SearchEnd
	switch {
	case *depth > 0:
		end = engine.All{engine.DepthLimit{Max: *depth}, engine.DurationLimit(time.Duration(*moveTimeMs) * time.Millisecond)}
	default:
		end = engine.DurationLimit(time.Duration(*moveTimeMs) * time.Millisecond)
	}

	searcher := engine.NewSearcher(eval, tt, end)

	start := time.Now()
	outcome, err := searcher.Search()
	if err != nil {
		log.Fatalf("corvid: search failed: %v", err)
	}

	out, err := outcome.MarshalJSON()
	if err != nil {
		log.Fatalf("corvid: marshal outcome: %v", err)
	}

	fmt.Fprintln(os.Stdout, string(out))
	log.Printf("searched %s nodes in %s (hash table %dMB, hit rate %.1f%%)",
		humanize.Comma(int64(searcher.Nodes())), time.Since(start), *hashMB, tt.HitRate())
}
