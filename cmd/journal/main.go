package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vitos/trade_journal/internal/config"
	"github.com/vitos/trade_journal/internal/domain"
	"github.com/vitos/trade_journal/internal/infrastructure/exchange"
	"github.com/vitos/trade_journal/internal/infrastructure/logger"
	"github.com/vitos/trade_journal/internal/journal"
	"github.com/vitos/trade_journal/internal/usecase"
)

const defaultReportsDir = "reports"

func main() {
	timeframeFlag := flag.String("timeframe", "Daily", "report timeframe: Daily, Weekly or Monthly")
	dateFlag := flag.String("date", "", "start date of the report window (YYYY-MM-DD, default today)")
	configFlag := flag.String("config", "config/config.yaml", "path to the config file")
	flag.Parse()

	// 1. Env + Config
	_ = godotenv.Load()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	var log *zap.Logger
	if cfg.Logging.File != "" {
		log, err = logger.NewFileLogger(cfg.Logging.File, cfg.Logging.Level)
	} else {
		log, err = logger.NewLogger(cfg.Logging.Level)
	}
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	cfg.Normalize(log)

	// 3. Reporting window
	timeframe, err := domain.ParseTimeframe(*timeframeFlag)
	if err != nil {
		log.Warn("Unsupported timeframe, defaulting to Daily", zap.Error(err))
		timeframe = domain.TimeframeDaily
	}
	date := *dateFlag
	if date != "" && !timeframe.ValidDate(date) {
		log.Warn("Invalid date, defaulting to today", zap.String("date", date))
		date = ""
	}
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	start, end, err := timeframe.Window(date)
	if err != nil {
		log.Fatal("Invalid date", zap.Error(err))
	}

	// 4. Init Exchange (Bybit)
	adapter, err := exchange.NewBybitAdapter(
		os.Getenv("BYBIT_API_KEY"),
		os.Getenv("BYBIT_API_SECRET"),
		cfg.API.RESTEndpoint,
		cfg.API.RecvWindow,
		log,
	)
	if err != nil {
		log.Fatal("Failed to init exchange adapter", zap.Error(err))
	}

	// 5. Build + run the pipeline
	aggregator := usecase.NewAggregator(cfg.EntryCalc(), cfg.Journal.RiskThreshold, log)
	pipeline := usecase.NewPipeline(adapter, aggregator, cfg.ProfitColumn(), log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	data, err := pipeline.Run(ctx, start, end)
	if err != nil {
		log.Fatal("Journal pipeline failed", zap.Error(err))
	}
	if len(data.Trades) == 0 {
		log.Fatal("No trades found for the requested window",
			zap.String("timeframe", string(timeframe)), zap.String("date", date))
	}

	// 6. Render the report
	content, title := render(cfg, timeframe, date, data)

	// 7. Write it out
	reportsDir := os.Getenv("REPORTS_DIR")
	if reportsDir == "" {
		reportsDir = defaultReportsDir
	}
	writer, err := journal.NewFileWriter(reportsDir, log)
	if err != nil {
		log.Fatal("Failed to init journal writer", zap.Error(err))
	}
	path, err := writer.Write(timeframe, title, content)
	if err != nil {
		log.Fatal("Failed to write journal", zap.Error(err))
	}
	log.Info("Journal report ready",
		zap.String("path", path),
		zap.Int("trades", len(data.Trades)),
		zap.Int("failed_groups", len(data.Failed)),
		zap.Float64("pnl", data.Stats.PnL))
}

func render(cfg *config.Config, timeframe domain.Timeframe, date string, data *usecase.JournalData) (content, title string) {
	renderer := journal.NewRenderer(cfg.Journal.RiskThreshold)
	formatter := journal.NewFormatter(timeframe, date, cfg.API.Name, data.Stats.PnL)

	for _, tc := range cfg.Journal.Tables {
		formatter.AddTable(tc.Name,
			renderer.TableForType(tc.Type, tc.Name, data.Detailed, data.Trades, tc.Columns, tc.Descriptions))
	}
	for _, cc := range cfg.Journal.Charts {
		slices, ok := journal.ChartData(cc.Name, data.Stats)
		if !ok {
			continue
		}
		formatter.AddChart(cc.Name, journal.RenderPieChart(cc.Name, slices))
	}
	formatter.BuildProperties(cfg.Journal.CSSClasses)
	formatter.BuildTags(cfg.Journal.Tags)

	return formatter.Document(cfg.Journal.DisplayOrder), formatter.Title(cfg.Journal.Name)
}
