package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Data struct {
		Dir         string `json:"dir"`          // dataset directory
		RawFile     string `json:"raw_file"`     // raw GSAF export inside Dir
		CleanedFile string `json:"cleaned_file"` // cleaned CSV output
		Workbook    string `json:"workbook"`     // cleaned XLSX output, empty to skip
		SheetName   string `json:"sheet_name"`   // sheet to read from XLSX drops
	} `json:"data"`

	ReportDir string `json:"report_dir"` // chart output directory

	Email struct {
		Server        string   `json:"server"`         // IMAP server address
		Username      string   `json:"username"`       // mailbox account
		Password      string   `json:"password"`       // password / app token
		TargetSubject string   `json:"target_subject"` // subject keyword for dataset mails
		CheckInterval Duration `json:"check_interval"` // polling interval in watch mode
	} `json:"email"`

	SendEmail struct {
		Server   string   `json:"server"` // SMTP server address
		Username string   `json:"username"`
		Password string   `json:"password"`
		To       []string `json:"to"` // report recipients
	} `json:"send_email"`

	WebhookURL string `json:"webhook_url"` // cleaning-report webhook, empty to skip
	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"`
}

// DataConfig holds the analysis parameters kept separate from the
// application config so they can be tuned without touching credentials.
type DataConfig struct {
	MissingThreshold float64 `json:"missing_threshold"` // column prune threshold
	TopN             int     `json:"top_n"`             // size of top-N rankings
	StartYear        int     `json:"start_year"`        // temporal analysis bounds
	EndYear          int     `json:"end_year"`
	MinSurfAttacks   int     `json:"min_surf_attacks"` // risk score relevance cutoff
}

var (
	once               sync.Once
	instance           *Config
	dataConfigInstance *DataConfig
)

// LoadConfig reads both configuration files once per process.
func LoadConfig(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	var err error
	once.Do(func() {
		instance, dataConfigInstance, err = loadConfigs(jsonFolder, jsonFile, dataJsonFile)
	})
	return instance, dataConfigInstance, err
}

func loadConfigs(jsonFolder, jsonFile, dataJsonFile string) (*Config, *DataConfig, error) {
	configData, err := readFile(filepath.Join(jsonFolder, jsonFile))
	if err != nil {
		return nil, nil, fmt.Errorf("read config file: %w", err)
	}

	dataConfigData, err := readFile(filepath.Join(jsonFolder, dataJsonFile))
	if err != nil {
		return nil, nil, fmt.Errorf("read data config file: %w", err)
	}

	cfgChan := make(chan *Config, 1)
	dcfgChan := make(chan *DataConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseDataConfig(dataConfigData, dcfgChan, errChan)

	return waitForResults(cfgChan, dcfgChan, errChan)
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		errChan <- fmt.Errorf("parse Config: %w", err)
		return
	}
	applyDefaults(&cfg)
	resultChan <- &cfg
}

func parseDataConfig(data []byte, resultChan chan<- *DataConfig, errChan chan<- error) {
	var dcfg DataConfig
	if err := json.Unmarshal(data, &dcfg); err != nil {
		errChan <- fmt.Errorf("parse DataConfig: %w", err)
		return
	}
	applyDataDefaults(&dcfg)
	resultChan <- &dcfg
}

func applyDefaults(cfg *Config) {
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.CleanedFile == "" {
		cfg.Data.CleanedFile = "shark_attacks_cleaned.csv"
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "reports"
	}
	if cfg.LogName == "" {
		cfg.LogName = "sharkwatch.log"
	}
}

func applyDataDefaults(dcfg *DataConfig) {
	if dcfg.MissingThreshold == 0 {
		dcfg.MissingThreshold = 0.7
	}
	if dcfg.TopN == 0 {
		dcfg.TopN = 10
	}
	if dcfg.StartYear == 0 {
		dcfg.StartYear = 1900
	}
	if dcfg.EndYear == 0 {
		dcfg.EndYear = 2025
	}
	if dcfg.MinSurfAttacks == 0 {
		dcfg.MinSurfAttacks = 10
	}
}

func waitForResults(
	cfgChan <-chan *Config,
	dcfgChan <-chan *DataConfig,
	errChan <-chan error,
) (*Config, *DataConfig, error) {
	var (
		cfg  *Config
		dcfg *DataConfig
		errs []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case d := <-dcfgChan:
			dcfg = d
		case err := <-errChan:
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, nil, combineErrors(errs)
	}
	if cfg == nil || dcfg == nil {
		return nil, nil, fmt.Errorf("configuration only partially loaded")
	}

	return cfg, dcfg, nil
}

func combineErrors(errs []error) error {
	msg := "configuration load failed:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// Duration wraps time.Duration for JSON round-tripping of values like "5m".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
