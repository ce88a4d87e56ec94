// webhook.go
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sharkwatch/src/cleaner"
)

const (
	retryTimes    = 5
	retryInterval = 2 * time.Second
	requestTime   = 10 * time.Second
)

// CleaningNotification is the JSON payload posted after a pipeline run.
type CleaningNotification struct {
	Dataset        string   `json:"dataset"`
	Rows           int      `json:"rows"`
	Cols           int      `json:"cols"`
	StepsPerformed int      `json:"steps_performed"`
	Columns        []string `json:"columns"`
	FinishedAt     string   `json:"finished_at"`
}

// Notifier posts cleaning reports to a webhook.
type Notifier struct {
	url    string
	client *http.Client
}

func NewNotifier(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: requestTime},
	}
}

// NotifyCleaningDone posts the pipeline report, retrying transient failures.
func (n *Notifier) NotifyCleaningDone(dataset string, report cleaner.Report) error {
	payload := CleaningNotification{
		Dataset:        dataset,
		Rows:           report.Rows,
		Cols:           report.Cols,
		StepsPerformed: report.StepsPerformed,
		Columns:        report.Columns,
		FinishedAt:     time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	return retry(func() error {
		return n.post(body)
	}, retryTimes, retryInterval)
}

func (n *Notifier) post(body []byte) error {
	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}

func retry(fn func() error, times int, interval time.Duration) error {
	var err error
	for i := 0; i < times; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < times-1 {
			time.Sleep(interval)
		}
	}
	return fmt.Errorf("failed after %d attempts: %v", times, err)
}
