package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"route-decision-service/internal/api/dto"
	"route-decision-service/internal/app"
	"route-decision-service/internal/config"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"route-decision-service/internal/report"
	"route-decision-service/internal/services"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		start    = flag.String("from", cfg.StartPlace, "start place name")
		end      = flag.String("to", cfg.EndPlace, "destination place name")
		strategy = flag.String("strategy", cfg.DefaultStrategy, "fast, economical, safe, comfortable or balanced")
		seed     = flag.Int64("seed", 0, "seed for the synthetic route characteristics (random when unset)")
		simulate = flag.Bool("simulate", false, "drive the chosen route segment by segment")
		traffic  = flag.String("traffic", "normal", "traffic condition for the simulation: fluid, normal or dense")
		offline  = flag.Bool("offline", false, "do not query Nominatim")
		asJSON   = flag.Bool("json", false, "print the decision as JSON")
		htmlOut  = flag.String("html", "", "also write an HTML report with the route map to this file")
	)
	flag.Parse()

	args := runArgs{
		start: *start, end: *end, strategy: *strategy, traffic: *traffic, html: *htmlOut,
		simulate: *simulate, offline: *offline, json: *asJSON,
	}
	// -seed 0 is a valid seed; only an absent flag picks a random one
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			args.seed = seed
		}
	})

	// console logs go to stderr so -json output stays clean
	obs.SetupLogger(cfg.LogLevel, "console")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, args, os.Stdout); err != nil {
		log.Error().Err(err).Msg("trip failed")
		os.Exit(1)
	}
}

type runArgs struct {
	start, end, strategy, traffic string
	// nil picks a random seed
	seed *int64
	// path of the HTML report, empty for none
	html                    string
	simulate, offline, json bool
}

func run(ctx context.Context, cfg config.Config, args runArgs, out io.Writer) error {
	a, err := app.Build(ctx, cfg, app.Options{Offline: args.offline, Seed: cfg.DatabaseURL == ""})
	if err != nil {
		return err
	}
	defer a.Close()

	req := services.PlanTripRequest{Start: args.start, End: args.end, Strategy: args.strategy, Seed: args.seed}

	decision, err := a.Planner.PlanTrip(ctx, req)
	if err != nil {
		return err
	}

	var vehicle *domain.Vehicle
	if args.simulate {
		vehicle = domain.NewVehicle(decision.Start.Name, decision.End.Name)
		err := services.ExecuteRoute(ctx, vehicle, decision.Chosen, a.Planner.Routes().CostModel(), services.ExecuteOptions{
			StepDelay:    cfg.SimulationStepDelay,
			Traffic:      services.ParseTrafficCondition(args.traffic),
			Intermediate: 3,
		})
		if err != nil {
			return err
		}
	}

	res := dto.NewPlanResponse(decision, vehicle)
	if args.html != "" {
		if err := writeReport(args.html, res); err != nil {
			return err
		}
		log.Info().Str("path", args.html).Msg("report written")
	}

	if args.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printDecision(out, decision, vehicle)
	return nil
}

func writeReport(path string, res dto.PlanResponse) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write report: %w", cerr)
		}
	}()
	return report.Render(f, res, time.Now())
}

func printDecision(out io.Writer, d *services.TripDecision, v *domain.Vehicle) {
	fmt.Fprintf(out, "%s -> %s\n", d.Start, d.End)
	fmt.Fprintf(out, "strategy: %s", d.Strategy.Strategy)
	if d.Strategy.Fallback {
		fmt.Fprintf(out, " (unknown %q, using default)", d.Strategy.Requested)
	}
	fmt.Fprintf(out, "  seed: %d\n\n", d.Seed)

	c := d.Chosen.Characteristics
	fmt.Fprintf(out, "chosen: %s\n", d.Chosen.Name)
	names := make([]string, 0, len(d.Chosen.Points))
	for _, p := range d.Chosen.Points {
		names = append(names, p.Name)
	}
	fmt.Fprintf(out, "  %s\n", strings.Join(names, " > "))
	fmt.Fprintf(out, "  %s, %s, $%.2f\n\n", services.FormatDistance(c.DistanceKm), services.FormatDuration(c.TimeMin), c.CostUSD)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUTE\tSCORE\tDISTANCE\tTIME\tCOST\tCONGESTION\tSAFETY\tCOMFORT")
	for _, e := range d.Analysis.Entries() {
		mark := ""
		if e.Name == d.Chosen.Name {
			mark = " *"
		}
		ec := e.Characteristics
		fmt.Fprintf(tw, "%s%s\t%.3f\t%s\t%s\t$%.2f\t%.2f\t%.2f\t%.2f\n",
			e.Name, mark, e.Score,
			services.FormatDistance(ec.DistanceKm), services.FormatDuration(ec.TimeMin), ec.CostUSD,
			ec.CongestionLevel, ec.SafetyLevel, ec.ComfortLevel)
	}
	_ = tw.Flush()

	if v == nil {
		return
	}
	fmt.Fprintf(out, "\nsimulation: %s\n", v.Status)
	for i, s := range v.Segments {
		fmt.Fprintf(out, "  %d. %s -> %s  %s, %s\n", i+1, s.From.Name, s.To.Name,
			services.FormatDistance(s.DistanceKm), services.FormatDuration(s.DurationMin))
	}
	fmt.Fprintf(out, "  total %s, %s planned\n", services.FormatDistance(v.DistanceKm()), services.FormatDuration(v.PlannedMinutes()))
}
