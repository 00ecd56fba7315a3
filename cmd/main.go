package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	app "github.com/okian/qperformance/internal/app"
	"github.com/okian/qperformance/internal/cli"
	"github.com/okian/qperformance/internal/config"
	"github.com/okian/qperformance/internal/domain/model"
	"github.com/okian/qperformance/pkg/logger"
	"github.com/okian/qperformance/pkg/metrics"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code. stdout only
// ever carries the report or the help text.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		cli.PrintUsage(stderr)
		return cli.ExitUsage
	}
	if opts.Help {
		cli.PrintUsage(stdout)
		return cli.ExitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return cli.ExitError
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	if err := logger.Init(logger.WithWriter(stderr), logger.WithJSON(cfg.LogFormat == "json")); err != nil {
		fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return cli.ExitError
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to warn", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("warn")
	}
	if opts.Verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Get().With(logger.String("run_id", uuid.NewString()))

	types, err := cfg.TypeSet()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	selected, err := types.Select(opts.Types)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.ExitError
	}
	if opts.Delimiter != "" {
		cfg.Delimiter = opts.Delimiter
	}
	log.Debug(ctx, "configuration",
		logger.String("question_types", typeCodes(types.Codes())),
		logger.String("selected", typeCodes(selected)),
		logger.String("delimiter", cfg.Delimiter),
		logger.String("tournament", opts.Tournament),
		logger.Bool("show_rounds", opts.ShowRounds),
	)

	m := metrics.NewManager()
	svc := app.New(
		app.WithLogger(log),
		app.WithMetrics(m),
		app.WithTypeSet(types),
		app.WithEventCodes(cfg.EventCodes),
		app.WithLayout(cfg.Columns),
		app.WithTabMarker(cfg.TabMarker),
		app.WithPageSize(cfg.PageSize),
		app.WithGeneralPosition(cfg.GeneralPosition),
		app.WithDocumentExt(cfg.DocumentExt),
		app.WithDelimiter(cfg.Delimiter),
	)

	out, err := svc.Run(ctx, app.Request{
		QuestionSets: opts.QuestionSets,
		EventLog:     opts.EventLog,
		Types:        selected,
		Tournament:   opts.Tournament,
		ShowRounds:   opts.ShowRounds,
	})
	code := cli.ExitOK
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		code = cli.ExitError
	} else {
		for _, w := range out.Warnings {
			fmt.Fprintf(stderr, "Warning: %s\n", w)
		}
		fmt.Fprint(stdout, out.Report)
	}

	if err := m.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Error(ctx, "failed to write metrics textfile", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
	}
	return code
}

func typeCodes(types []model.QuestionType) string {
	b := make([]rune, len(types))
	for i, t := range types {
		b[i] = rune(t)
	}
	return string(b)
}
