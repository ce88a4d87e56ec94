// webhook_test.go
package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"sharkwatch/src/cleaner"
)

func testReport() cleaner.Report {
	return cleaner.Report{
		StepsPerformed: 12,
		Rows:           4000,
		Cols:           9,
		Columns:        []string{"Date", "Year", "Country"},
	}
}

func TestNotifyCleaningDone(t *testing.T) {
	var got CleaningNotification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewNotifier(srv.URL).NotifyCleaningDone("attacks.csv", testReport()); err != nil {
		t.Fatal(err)
	}

	if got.Dataset != "attacks.csv" || got.Rows != 4000 || got.StepsPerformed != 12 {
		t.Errorf("payload = %+v", got)
	}
	if got.FinishedAt == "" {
		t.Error("FinishedAt not set")
	}
}

func TestNotifyRetriesTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewNotifier(srv.URL).NotifyCleaningDone("attacks.csv", testReport()); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestRetryExhaustion(t *testing.T) {
	attempts := 0
	err := retry(func() error {
		attempts++
		return http.ErrServerClosed
	}, 3, 0)

	if err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}
