package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/robfig/cron"

	"sharkwatch/src/analysis"
	"sharkwatch/src/cleaner"
	"sharkwatch/src/config"
	"sharkwatch/src/datasource/email"
	"sharkwatch/src/datasource/file"
	"sharkwatch/src/notify"
	"sharkwatch/src/storage"
	"sharkwatch/src/visualization"
)

func main() {
	configDir := flag.String("config", "./config", "configuration directory")
	watch := flag.Bool("watch", false, "keep running, re-process on new data")
	flag.Parse()

	cfg, dcfg, err := config.LoadConfig(*configDir, "config.json", "dataconfig.json")
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	logger, err := storage.NewLogger(cfg.LogName)
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer logger.Close()

	rawPath := filepath.Join(cfg.Data.Dir, cfg.Data.RawFile)
	if err := processDataset(rawPath, cfg, dcfg, logger); err != nil {
		logger.Error(err.Error())
		if !*watch {
			log.Fatal(err)
		}
	}

	if !*watch {
		return
	}

	// Watch mode: poll the mailbox for dataset updates and re-process any
	// file dropped into the data directory.
	if cfg.Email.Server != "" {
		c := cron.New()
		interval := time.Duration(cfg.Email.CheckInterval)
		if interval <= 0 {
			interval = 30 * time.Minute
		}
		spec := fmt.Sprintf("@every %s", interval)

		mailClient := email.NewEmailClient(cfg.Email.Server, cfg.Email.Username, cfg.Email.Password)
		handler := email.NewDatasetHandler(cfg.Email.TargetSubject, cfg.Data.Dir, cfg.Data.SheetName)

		err = c.AddFunc(spec, func() {
			logger.Info(fmt.Sprintf("scheduled mailbox check (interval %v)", interval))
			msg, err := email.CheckAndProcessEmails(mailClient, cfg.Email.TargetSubject, logger)
			if err != nil {
				logger.Error("mailbox check failed: " + err.Error())
				return
			}
			if err := handler.Handle(msg, logger); err != nil {
				logger.Error("dataset mail handling failed: " + err.Error())
			}
			if rotErr := logger.CheckRotate(cfg.LogMaxSize); rotErr != nil {
				logger.Warning("log rotation failed: " + rotErr.Error())
			}
		})
		if err != nil {
			logger.Error("failed to schedule mailbox check: " + err.Error())
			return
		}
		c.Start()
		defer c.Stop()
	}

	monitor, err := file.NewMonitor(cfg.Data.Dir)
	if err != nil {
		logger.Error("failed to watch data directory: " + err.Error())
		return
	}
	defer monitor.Close()

	logger.Info("watching " + cfg.Data.Dir + " for dataset updates")
	err = monitor.Watch(func(path string) {
		logger.Info("new dataset file: " + path)
		if err := processDataset(path, cfg, dcfg, logger); err != nil {
			logger.Error(err.Error())
		}
	})
	if err != nil {
		logger.Error("monitoring stopped: " + err.Error())
	}
}

// processDataset runs the full load → clean → analyze → render → distribute
// sequence for one dataset file.
func processDataset(path string, cfg *config.Config, dcfg *config.DataConfig, logger *storage.Logger) error {
	logger.Info("processing dataset " + path)

	df, err := loadDataset(path, cfg.Data.SheetName)
	if err != nil {
		return err
	}

	cl := cleaner.New(df, true)
	clean := cl.CleanAll(dcfg.MissingThreshold)
	report := cl.GetReport()
	for _, step := range report.Log {
		logger.Info(step)
	}

	if err := file.WriteCSV(clean, filepath.Join(cfg.Data.Dir, cfg.Data.CleanedFile)); err != nil {
		return err
	}
	if cfg.Data.Workbook != "" {
		if err := file.SaveToExcel(clean, filepath.Join(cfg.Data.Dir, cfg.Data.Workbook)); err != nil {
			return err
		}
	}

	charts, summary, err := analyzeAndRender(clean, cfg, dcfg)
	if err != nil {
		return err
	}
	logger.Info(summary)

	if cfg.WebhookURL != "" {
		if err := notify.NewNotifier(cfg.WebhookURL).NotifyCleaningDone(path, report); err != nil {
			logger.Warning("webhook notification failed: " + err.Error())
		}
	}

	if cfg.SendEmail.Server != "" && len(cfg.SendEmail.To) > 0 {
		subject := "Shark attack analysis " + time.Now().Format("2006-01-02")
		if err := email.SendReport(cfg, subject, summary, charts); err != nil {
			logger.Warning("report mail failed: " + err.Error())
		}
	}

	return nil
}

func loadDataset(path, sheetName string) (dataframe.DataFrame, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return file.ReadXLSX(path, sheetName)
	}
	return file.ReadCSV(path, ';')
}

// analyzeAndRender derives every aggregate and writes the chart set,
// returning the chart paths and a one-paragraph text summary.
func analyzeAndRender(df dataframe.DataFrame, cfg *config.Config, dcfg *config.DataConfig) ([]string, string, error) {
	insights := analysis.ValidateAllHypotheses(df, dcfg.TopN, dcfg.StartYear, dcfg.EndYear)
	species := analysis.AnalyzeSpecies(df, dcfg.TopN)
	ages := analysis.AnalyzeAgeDistribution(df)
	fatality := analysis.AnalyzeFatalityRates(df, 5)
	risks := analysis.CalculateSurfRiskScore(df, dcfg.MinSurfAttacks)

	charts := []struct {
		name   string
		render func(string) error
	}{
		{"h1_geographic.png", func(p string) error { return visualization.PlotTopCountries(insights.Geographic, p) }},
		{"h2_activities.png", func(p string) error { return visualization.PlotTopActivities(insights.Activity, p) }},
		{"h3_gender.png", func(p string) error { return visualization.PlotGender(insights.Gender, p) }},
		{"h4_decades.png", func(p string) error { return visualization.PlotAttacksByDecade(insights.Temporal, p) }},
		{"h4_trend.png", func(p string) error { return visualization.PlotRecentTrend(insights.Temporal, p) }},
		{"species.png", func(p string) error { return visualization.PlotSpecies(species, p) }},
		{"age_distribution.png", func(p string) error { return visualization.PlotAgeHistogram(ages, p) }},
		{"fatality.png", func(p string) error { return visualization.PlotFatalityByCountry(fatality, p) }},
		{"risk_score.png", func(p string) error { return visualization.PlotRiskScores(risks, p) }},
	}

	var paths []string
	for _, c := range charts {
		p := filepath.Join(cfg.ReportDir, c.name)
		if err := c.render(p); err != nil {
			return nil, "", err
		}
		paths = append(paths, p)
	}

	summary := fmt.Sprintf(
		"%d attacks (%d-%d), %d countries, fatality rate %.1f%%, "+
			"top 3 countries hold %.1f%% of attacks, surfing+swimming %.1f%%, M:F ratio %.1f:1",
		insights.Summary.TotalAttacks,
		insights.Summary.MinYear, insights.Summary.MaxYear,
		insights.Summary.CountriesCount,
		insights.Summary.OverallFatalityRate,
		insights.Geographic.Top3Percentage,
		insights.Activity.SurfingSwimmingPct,
		insights.Gender.Ratio,
	)

	return paths, summary, nil
}
