package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"holdem-server/internal/simulate"
	"holdem-server/pkg/holdem"
)

// CLI are the simulator flags
type CLI struct {
	Hands          int      `default:"1000" help:"Number of hands to simulate"`
	Workers        int      `default:"4" help:"Number of hands played at once"`
	Seats          int      `default:"6" help:"Participants at the table"`
	Tiers          []string `default:"easy,medium,hard" help:"Tiers assigned to the seats in turn"`
	StartingStack  int      `default:"1000" help:"Chips each participant starts with"`
	RaiseIncrement int      `default:"20" help:"Minimum raise increment"`
	Seed           int64    `default:"0" help:"Seed of the first hand (0 for random)"`
	JSON           bool     `help:"Print the report as JSON"`
	Verbose        bool     `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli, kong.Description("Plays automated participants against each other and checks every action."))

	if cli.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano() & 0x7fffffff
	}

	tiers := make([]holdem.Tier, len(cli.Tiers))
	for i, s := range cli.Tiers {
		tier, err := holdem.ParseTier(s)
		kctx.FatalIfErrorf(err)
		tiers[i] = tier
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	progress := func(done int) {
		if interactive && (done%100 == 0 || done == cli.Hands) {
			fmt.Fprintf(os.Stderr, "\r%d/%d hands", done, cli.Hands)
		}
	}

	logrus.WithFields(logrus.Fields{
		"hands": cli.Hands,
		"seed":  cli.Seed,
		"seats": cli.Seats,
	}).Debug("starting simulation")

	start := time.Now()
	report, err := simulate.Run(ctx, simulate.Options{
		Hands:          cli.Hands,
		Workers:        cli.Workers,
		Tiers:          tiers,
		Seats:          cli.Seats,
		StartingStack:  cli.StartingStack,
		RaiseIncrement: cli.RaiseIncrement,
		Seed:           cli.Seed,
	}, progress)
	if interactive {
		fmt.Fprintln(os.Stderr)
	}
	kctx.FatalIfErrorf(err)

	if cli.JSON {
		kctx.FatalIfErrorf(json.NewEncoder(os.Stdout).Encode(report))
		return
	}

	printReport(report, cli.Seed, time.Since(start))
}

func printReport(r *simulate.Report, seed int64, took time.Duration) {
	fmt.Printf("%d hands in %s (seed %d)\n", r.Hands, took.Round(time.Millisecond), seed)
	fmt.Printf("%d actions, %d showdowns, %d fold-outs\n\n", r.Actions, r.Showdowns, r.FoldOuts)

	tiers := make([]holdem.Tier, 0, len(r.Tiers))
	for tier := range r.Tiers {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })

	fmt.Printf("%-8s %8s %8s %10s\n", "tier", "seats", "wins", "net")
	for _, tier := range tiers {
		t := r.Tiers[tier]
		fmt.Printf("%-8s %8d %8d %10d\n", tier, t.Seats, t.Wins, t.Net)
	}
}
