// Command winoc runs a random-traffic simulation on a
// wireless-augmented mesh network-on-chip and reports the achieved
// bandwidth.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/encodeous/tint"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/winoc/mesh"
	"github.com/sarchlab/winoc/routing"
	"github.com/sarchlab/winoc/traffic"
)

var (
	numRows      int
	numCols      int
	hubList      string
	algorithm    string
	numFlits     uint64
	seed         int64
	wiredLatency int
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "winoc",
	Short: "winoc simulates routing on a wireless-augmented mesh NoC",
	Long: `winoc builds a mesh network-on-chip where designated hub routers ` +
		`share a token-arbitrated wireless broadcast medium, drives it with ` +
		`uniform random traffic, and reports the achieved bandwidth.`,
	Run: func(cmd *cobra.Command, args []string) {
		run()
	},
}

func init() {
	rootCmd.Flags().IntVar(&numRows, "rows", 8, "number of mesh rows")
	rootCmd.Flags().IntVar(&numCols, "cols", 8, "number of mesh columns")
	rootCmd.Flags().StringVar(&hubList, "hubs", "",
		"comma-separated hub router IDs, fully connected over the air "+
			"(e.g. 18,21,45,50)")
	rootCmd.Flags().StringVar(&algorithm, "algorithm", "hybrid",
		"routing algorithm: table, xy, or hybrid")
	rootCmd.Flags().Uint64Var(&numFlits, "flits", 10000,
		"number of flits to inject")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	rootCmd.Flags().IntVar(&wiredLatency, "wired-latency", 1,
		"wired link traversal latency in cycles")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false,
		"log at debug level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() {
	setUpLogger()

	rng := rand.New(rand.NewSource(seed))
	engine := sim.NewSerialEngine()
	freq := 1 * sim.GHz

	connector := mesh.NewConnector().
		WithEngine(engine).
		WithFreq(freq).
		WithSize(numRows, numCols).
		WithAlgorithm(parseAlgorithm(algorithm)).
		WithHubs(fullyConnectedHubs(parseHubs(hubList))).
		WithWiredLatency(wiredLatency).
		WithRand(rng)
	connector.CreateNetwork("Mesh")

	test := traffic.NewTest().WithRand(rng)

	var agents []*traffic.Agent
	for r := 0; r < numRows*numCols; r++ {
		agent := traffic.NewAgent(
			engine, freq, fmt.Sprintf("Agent[%d]", r), test)
		connector.AddTerminal(r, agent.Port)
		agents = append(agents, agent)
	}

	connector.EstablishNetwork()

	for r, agent := range agents {
		test.RegisterAgent(agent, connector.Terminal(r))
	}

	slog.Info("network established",
		"routers", numRows*numCols,
		"hubs", hubList,
		"algorithm", algorithm)

	test.GenerateFlits(numFlits)

	if err := engine.Run(); err != nil {
		slog.Error("simulation failed", "err", err)
		atexit.Exit(1)
	}

	test.MustHaveReceivedAllFlits()

	now := engine.CurrentTime()
	slog.Info("simulation finished",
		"flits", numFlits,
		"simulated_seconds", float64(now),
		"bandwidth_bytes_per_sec", test.ReportBandwidthAchieved(now))

	atexit.Exit(0)
}

func setUpLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(logger)
}

func parseAlgorithm(name string) routing.Algorithm {
	switch name {
	case "table":
		return routing.AlgorithmTable
	case "xy":
		return routing.AlgorithmXY
	case "hybrid":
		return routing.AlgorithmHybrid
	default:
		slog.Error("unknown routing algorithm", "algorithm", name)
		atexit.Exit(1)
		return routing.AlgorithmTable
	}
}

func parseHubs(list string) []int {
	if list == "" {
		return nil
	}

	var hubs []int
	for _, field := range strings.Split(list, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			slog.Error("invalid hub ID", "hub", field)
			atexit.Exit(1)
		}

		hubs = append(hubs, id)
	}

	return hubs
}

func fullyConnectedHubs(hubs []int) map[int][]int {
	conns := make(map[int][]int, len(hubs))

	for _, hub := range hubs {
		for _, other := range hubs {
			if other != hub {
				conns[hub] = append(conns[hub], other)
			}
		}
	}

	return conns
}
