package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/peksoon/account/internal/config"
	"github.com/peksoon/account/internal/domain"
	"github.com/peksoon/account/internal/service"
	"github.com/peksoon/account/internal/session"
	"github.com/peksoon/account/internal/util"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := session.New(cfg, logger)
	defer s.Close()

	args := os.Args[2:]
	switch os.Args[1] {
	case "month":
		err = runMonth(ctx, s, args)
	case "day":
		err = runDay(ctx, s, args)
	case "search":
		err = runSearch(ctx, s, args)
	case "range":
		err = runRange(ctx, s, args)
	case "budget":
		err = runBudget(ctx, s, args)
	case "stats":
		err = runStats(ctx, s, args)
	case "compare":
		err = runCompare(ctx, s, args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", domain.UserMessage(err, err.Error()))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return log.Logger
}

func printUsage() {
	fmt.Println("ledger - account book client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ledger <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  month    List the entries of a month")
	fmt.Println("  day      List the entries of one day")
	fmt.Println("  search   Search entries by keyword")
	fmt.Println("  range    List entries between two dates")
	fmt.Println("  budget   Show budget compliance for a user")
	fmt.Println("  stats    Show statistics for a period")
	fmt.Println("  compare  Compare a month with the month before")
	fmt.Println()
	fmt.Println("Run 'ledger <command> -h' for command flags.")
}

func monthFlags(fs *flag.FlagSet) (*int, *int) {
	now := time.Now()
	year := fs.Int("year", now.Year(), "calendar year")
	month := fs.Int("month", int(now.Month()), "calendar month (1-12)")
	return year, month
}

func runMonth(ctx context.Context, s *session.Session, args []string) error {
	fs := flag.NewFlagSet("month", flag.ExitOnError)
	year, month := monthFlags(fs)
	_ = fs.Parse(args)

	if !util.ValidMonth(*month) {
		return fmt.Errorf("month %d out of range", *month)
	}
	if err := s.Ledger.FetchWindow(ctx, *year, *month); err != nil {
		return err
	}

	fmt.Printf("%d-%s\n", *year, util.PadMonth(*month))
	printEntries(s.Ledger.Entries())
	return nil
}

func runDay(ctx context.Context, s *session.Session, args []string) error {
	fs := flag.NewFlagSet("day", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(domain.DateLayout), "day (YYYY-MM-DD)")
	_ = fs.Parse(args)

	day, err := time.ParseInLocation(domain.DateLayout, util.DatePrefix(*date), time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", *date, err)
	}
	if err := s.Ledger.FetchWindow(ctx, day.Year(), int(day.Month())); err != nil {
		return err
	}

	printEntries(s.Ledger.FetchForDate(*date))
	return nil
}

func runSearch(ctx context.Context, s *session.Session, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	keyword := fs.String("keyword", "", "keyword to search for (required)")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if strings.TrimSpace(*keyword) == "" {
		fs.Usage()
		return fmt.Errorf("keyword is required")
	}

	printResult(s.Ledger.SearchByKeyword(ctx, *keyword, *start, *end))
	return nil
}

func runRange(ctx context.Context, s *session.Session, args []string) error {
	fs := flag.NewFlagSet("range", flag.ExitOnError)
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	printResult(s.Ledger.FetchRange(ctx, *start, *end))
	return nil
}

func runBudget(ctx context.Context, s *session.Session, args []string) error {
	fs := flag.NewFlagSet("budget", flag.ExitOnError)
	user := fs.String("user", "", "user name (required)")
	_ = fs.Parse(args)

	if *user == "" {
		fs.Usage()
		return fmt.Errorf("user is required")
	}

	budgets := s.Budgets.FetchBudgets(ctx, *user, 0)
	usages := s.Budgets.FetchUsage(ctx, *user)
	if msg := s.Budgets.ErrorMessage(); msg != "" {
		fmt.Fprintln(os.Stderr, "Warning:", msg)
	}

	fmt.Printf("Budgets for %s: %d categories\n", *user, len(budgets))
	fmt.Printf("  monthly %s / %s\n", s.Budgets.TotalMonthlyUsed(), s.Budgets.TotalMonthlyBudget())
	fmt.Printf("  yearly  %s / %s\n", s.Budgets.TotalYearlyUsed(), s.Budgets.TotalYearlyBudget())
	for _, u := range usages {
		marker := " "
		if u.IsOver() {
			marker = "!"
		}
		fmt.Printf("%s %-16s month %6.1f%%  year %6.1f%%\n", marker, u.CategoryName, u.MonthlyPercent, u.YearlyPercent)
	}
	fmt.Printf("Over budget: %d\n", s.Budgets.OverBudgetCount())
	return nil
}

func runStats(ctx context.Context, s *session.Session, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	period := fs.String("period", string(domain.PeriodMonth), "month, week, year, all or custom")
	direction := fs.String("type", string(domain.EntryTypeExpense), "out or in")
	start := fs.String("start", "", "start date for custom periods")
	end := fs.String("end", "", "end date for custom periods")
	top := fs.Int("top", service.DefaultTopCategories, "number of top categories to print")
	_ = fs.Parse(args)

	entryType := domain.EntryType(*direction)
	if !entryType.Valid() {
		return domain.ErrInvalidEntryType
	}
	if _, err := s.Statistics.FetchPeriod(ctx, domain.PeriodType(*period), entryType, *start, *end); err != nil {
		return err
	}

	summary := s.Statistics.SummaryInfo()
	fmt.Printf("Period %s: total %s over %d entries (avg %s)\n",
		summary.Period, summary.TotalAmount, summary.TotalCount, summary.AverageAmount)
	for i, c := range s.Statistics.TopCategories(*top) {
		fmt.Printf("%2d. %-16s %12s %5.1f%% (%d)\n", i+1, c.CategoryName, c.TotalAmount, c.Percentage, c.Count)
	}
	return nil
}

func runCompare(ctx context.Context, s *session.Session, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	year, month := monthFlags(fs)
	direction := fs.String("type", string(domain.EntryTypeExpense), "out or in")
	_ = fs.Parse(args)

	if !util.ValidMonth(*month) {
		return fmt.Errorf("month %d out of range", *month)
	}
	entryType := domain.EntryType(*direction)
	if !entryType.Valid() {
		return domain.ErrInvalidEntryType
	}

	prevYear, prevMonth := util.PreviousMonth(*year, *month)
	curStart, curEnd := util.MonthBounds(*year, *month)
	prevStart, prevEnd := util.MonthBounds(prevYear, prevMonth)

	cmp, err := s.Statistics.FetchComparison(ctx,
		domain.StatisticsParams{Type: domain.PeriodCustom, Category: entryType, StartDate: curStart, EndDate: curEnd},
		domain.StatisticsParams{Type: domain.PeriodCustom, Category: entryType, StartDate: prevStart, EndDate: prevEnd},
	)
	if err != nil {
		return err
	}

	fmt.Printf("%d-%s vs %d-%s\n", *year, util.PadMonth(*month), prevYear, util.PadMonth(prevMonth))
	fmt.Printf("  amount %s -> %s (%s, %s%%)\n",
		cmp.Previous.TotalAmount, cmp.Current.TotalAmount,
		cmp.Changes.AmountChange, cmp.Changes.AmountChangePercent.StringFixed(1))
	fmt.Printf("  count  %d -> %d (%+d, %s%%)\n",
		cmp.Previous.TotalCount, cmp.Current.TotalCount,
		cmp.Changes.CountChange, cmp.Changes.CountChangePercent.StringFixed(1))
	return nil
}

func printResult(result domain.SearchResult) {
	if result.Degraded {
		fmt.Fprintln(os.Stderr, "Warning: server unavailable, showing cached entries only")
	}
	printEntries(result.Entries)
}

func printEntries(entries []domain.Entry) {
	if len(entries) == 0 {
		fmt.Println("(no entries)")
		return
	}
	for _, e := range entries {
		via := ""
		if d, ok := e.Expense(); ok {
			via = d.PaymentMethodName
		} else if d, ok := e.Income(); ok {
			via = d.DepositPath
		}
		fmt.Printf("%s %-3s %12s  %-10s %-12s %-10s %s\n",
			util.FormatWireDate(e.Date), e.Type(), e.Money, e.User, e.CategoryName, via, e.KeywordName)
	}
}
