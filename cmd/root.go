package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"ccplan/internal/cli"
	"ccplan/internal/config"
	"ccplan/internal/fiscal"
	"ccplan/internal/forecast"
	"ccplan/internal/model"
	"ccplan/internal/pocketsmith"
	"ccplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagNoCache  bool
	flagQuiet    bool
	flagHeadroom float64
)

var rootCmd = &cobra.Command{
	Use:   "ccplan",
	Short: "Credit-card repayment planner for PocketSmith",
	Long: "Project your PocketSmith budget onto a daily spending calendar for the\n" +
		"current fiscal year and plan monthly credit-card repayments.",
	RunE: runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the local event cache, refetch from the API")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress and warning output")
	rootCmd.PersistentFlags().Float64Var(&flagHeadroom, "headroom", -1, "Headroom percent override, 0-100 (default from config)")
}

// planData is the shared computation every command starts from.
type planData struct {
	cfg     config.Config
	loc     *time.Location
	now     time.Time
	fy      fiscal.Year
	events  []model.BudgetEvent
	daily   forecast.BuildResult
	periods []model.BillingPeriod
}

func (p *planData) options() forecast.Options {
	return forecast.Options{RepaymentCategory: p.cfg.Budget.RepaymentCategory}
}

// headroomPercent resolves the effective headroom: flag wins over config.
func (p *planData) headroomPercent() float64 {
	if flagHeadroom >= 0 {
		return flagHeadroom
	}
	return p.cfg.Budget.HeadroomPercent
}

// loadPlan is the shared data loading path used by all commands: config,
// events (cache or API), daily map, and the aggregated repayment schedule.
func loadPlan(ctx context.Context) (*planData, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	loc := cfg.Location()
	now := time.Now().In(loc)

	pd := &planData{
		cfg: cfg,
		loc: loc,
		now: now,
		fy:  fiscal.CurrentYear(now, loc),
	}

	pd.events, err = loadEvents(ctx, pd)
	if err != nil {
		return nil, err
	}

	opts := pd.options()
	pd.daily = forecast.BuildDailyMap(pd.events, pd.fy, opts)

	periods := forecast.GeneratePeriods(pd.daily.Days, now)
	filled, warnings := forecast.AggregateSchedule(pd.events, periods, pd.fy, opts)
	pd.periods = filled

	printWarnings(warnings)
	if pd.daily.SkippedDates > 0 {
		printWarnings([]string{fmt.Sprintf("%d event(s) skipped for missing dates", pd.daily.SkippedDates)})
	}

	return pd, nil
}

// loadEvents serves the fiscal-year event span from the SQLite cache when
// fresh, otherwise fetches from the API and refreshes the cache.
func loadEvents(ctx context.Context, pd *planData) ([]model.BudgetEvent, error) {
	span := fiscal.DayKey(pd.fy.Start) + ".." + fiscal.DayKey(pd.fy.End)
	ttl := time.Duration(pd.cfg.General.CacheTTLMinutes) * time.Minute

	var cache *store.Cache
	if !flagNoCache {
		var err error
		cache, err = store.Open(config.CachePath())
		if err != nil {
			progress("Cache unavailable, fetching from API")
		} else {
			defer func() { _ = cache.Close() }()

			fetched, ok, err := cache.FetchedAt(span)
			if err == nil && ok && pd.now.Sub(fetched) <= ttl {
				events, err := cache.LoadEvents(span, pd.loc)
				if err == nil {
					progress(fmt.Sprintf("Loaded %d events from cache", len(events)))
					return events, nil
				}
				progress("Cache read failed, fetching from API")
			}
		}
	}

	apiKey := config.GetAPIKey(pd.cfg)
	if apiKey == "" {
		return nil, errors.New("no API key configured; run `ccplan setup` or set POCKETSMITH_API_KEY")
	}

	client := pocketsmith.NewClient(apiKey, pd.cfg.PocketSmith.BaseURL)
	if client == nil {
		return nil, errors.New("invalid API key")
	}

	progress("Fetching budget events...")
	user, err := client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.Events(ctx, user.ID, pd.fy.Start, pd.fy.End, pd.loc)
	if err != nil {
		return nil, err
	}
	if result.SkippedDates > 0 {
		printWarnings([]string{fmt.Sprintf("%d event(s) dropped for unparseable dates", result.SkippedDates)})
	}
	progress(fmt.Sprintf("Fetched %d events for %s", len(result.Events), user.Login))

	if cache != nil {
		if err := cache.ReplaceEvents(span, result.Events, pd.now); err != nil {
			progress("Cache write failed, continuing without cache")
		}
	}

	return result.Events, nil
}

func progress(msg string) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  %s\n", msg)
}

func printWarnings(warnings []string) {
	if flagQuiet {
		return
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(w))
	}
}

func runSummary(_ *cobra.Command, _ []string) error {
	pd, err := loadPlan(context.Background())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CCPLAN  %s – %s",
		pd.fy.Start.Format("Jan 2006"), pd.fy.End.Format("Jan 2006"))))
	fmt.Println()

	var yearTotal float64
	for _, amount := range pd.daily.Days {
		yearTotal += amount
	}
	fmt.Printf("  Events: %d    Projected spend: %s    Daily average: %s\n",
		len(pd.events),
		cli.FormatAmount(yearTotal),
		cli.FormatAmount(yearTotal/float64(pd.fy.Days())))
	fmt.Println()

	if len(pd.periods) == 0 {
		fmt.Println("  No upcoming billing periods in the available data.")
		return nil
	}

	renderSchedule(pd)
	return nil
}

// renderSchedule prints the repayment schedule, original and
// headroom-adjusted side by side when headroom is configured.
func renderSchedule(pd *planData) {
	pct := pd.headroomPercent()

	adjusted, err := forecast.ApplyHeadroom(pd.periods, pct)
	if err != nil {
		printWarnings([]string{fmt.Sprintf("invalid headroom %s: totals shown unadjusted", cli.FormatPercent(pct))})
		adjusted = pd.periods
		pct = 0
	}

	headers := []string{"Repayment", "Cycle", "Spending"}
	if pct > 0 {
		headers = append(headers, fmt.Sprintf("+%s", cli.FormatPercent(pct)))
	}

	rows := make([][]string, 0, len(pd.periods))
	for i, p := range pd.periods {
		row := []string{
			cli.FormatMonthKey(p.RepaymentMonth),
			fmt.Sprintf("%s – %s", cli.FormatDateShort(p.Start), cli.FormatDateShort(p.End)),
			cli.FormatAmount(p.TotalSpending),
		}
		if pct > 0 {
			row = append(row, cli.FormatAmount(adjusted[i].TotalSpending))
		}
		rows = append(rows, row)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "REPAYMENT SCHEDULE",
		Headers: headers,
		Rows:    rows,
	}))
}
