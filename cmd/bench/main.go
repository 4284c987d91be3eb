// Command bench drives a book.OrderBook with synthetic add/amend/cancel
// traffic and reports per-operation latency. The engine itself is
// single-threaded by design, so this harness is too: it is timing one
// call path, not testing throughput under contention.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/fatih/color"
	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"github.com/flashbook-hft/lob/book"
)

// Benchmark times one labeled phase of work, printing its wall-clock cost
// when the phase ends. Mirrors the RAII timer the reference C++ harness
// uses, minus the destructor — Go has no equivalent, so the caller calls
// report explicitly when the phase ends.
type Benchmark struct {
	name  string
	start time.Time
}

func newBenchmark(name string) *Benchmark {
	return &Benchmark{name: name, start: time.Now()}
}

func (b *Benchmark) report() {
	elapsed := time.Since(b.start)
	fmt.Printf("%s took: %v (%.2f µs)\n", b.name, elapsed, float64(elapsed.Nanoseconds())/1000.0)
}

func main() {
	numOrders := flag.Int("orders", 100000, "number of orders to add")
	numAmends := flag.Int("amends", 10000, "number of amends to issue afterward")
	numCancels := flag.Int("cancels", 50000, "number of cancels to issue afterward")
	seed := flag.Int64("seed", 1, "PRNG seed")
	flag.Parse()

	runID := xid.New()
	fmt.Printf("run %s\n", runID.String())

	rng := rand.New(rand.NewSource(*seed))
	ob := book.NewOrderBook(book.DefaultConfig(), book.DiscardSink{})

	orderIDs := make([]uint64, 0, *numOrders)
	latencies := hdrhistogram.New(1, 10_000_000, 3)

	addBench := newBenchmark(fmt.Sprintf("Adding %d orders", *numOrders))
	for i := 0; i < *numOrders; i++ {
		orderID := uint64(i + 1)

		side := book.Buy
		if rng.Intn(2) == 1 {
			side = book.Sell
		}
		price := decimal.NewFromFloat(99.0 + rng.Float64()*2.0).Round(2)
		qty := uint64(100 + rng.Intn(9900))

		start := time.Now()
		ob.Add(book.Order{
			ID:        orderID,
			Side:      side,
			Type:      book.Limit,
			Price:     price,
			Quantity:  qty,
			Timestamp: start.UnixNano(),
		})
		latencies.RecordValue(time.Since(start).Nanoseconds())

		orderIDs = append(orderIDs, orderID)
	}
	addBench.report()

	if len(orderIDs) > 0 {
		amendBench := newBenchmark(fmt.Sprintf("Amending %d orders", *numAmends))
		for i := 0; i < *numAmends; i++ {
			id := orderIDs[rng.Intn(len(orderIDs))]
			price := decimal.NewFromFloat(99.0 + rng.Float64()*2.0).Round(2)
			qty := uint64(100 + rng.Intn(9900))
			ob.Amend(id, price, qty)
		}
		amendBench.report()

		cancelBench := newBenchmark(fmt.Sprintf("Cancelling %d orders", *numCancels))
		for i := 0; i < *numCancels; i++ {
			id := orderIDs[rng.Intn(len(orderIDs))]
			ob.Cancel(id)
		}
		cancelBench.report()
	}

	printSummary(ob, latencies)
}

func printSummary(ob *book.OrderBook, latencies *hdrhistogram.Histogram) {
	bold := color.New(color.Bold)
	bold.Println("\n=== add() latency (ns) ===")
	fmt.Printf("p50: %d  p99: %d  p99.9: %d  max: %d\n",
		latencies.ValueAtQuantile(50),
		latencies.ValueAtQuantile(99),
		latencies.ValueAtQuantile(99.9),
		latencies.Max())

	bold.Println("\n=== book state ===")
	fmt.Printf("resting orders: %d\n", ob.OrderCount())

	if bid, ok := ob.BestBid(); ok {
		color.Green("best bid: %s", bid.String())
	} else {
		color.Yellow("best bid: (none)")
	}
	if ask, ok := ob.BestAsk(); ok {
		color.Red("best ask: %s", ask.String())
	} else {
		color.Yellow("best ask: (none)")
	}

	bids, asks := ob.Snapshot(5)
	fmt.Println("\ntop bids:")
	for _, lvl := range bids {
		fmt.Printf("  %s @ qty %d\n", lvl.Price.String(), lvl.Quantity)
	}
	fmt.Println("top asks:")
	for _, lvl := range asks {
		fmt.Printf("  %s @ qty %d\n", lvl.Price.String(), lvl.Quantity)
	}
}
