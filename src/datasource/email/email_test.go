// email_test.go
package email

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sharkwatch/src/storage"
)

type fakeMailService struct {
	emails     []*Email
	fetchErr   error
	connectErr error
}

func (f *fakeMailService) Connect() error { return f.connectErr }
func (f *fakeMailService) Disconnect()    {}
func (f *fakeMailService) FetchUnreadEmails() ([]*Email, error) {
	return f.emails, f.fetchErr
}

func testLogger(t *testing.T) *storage.Logger {
	t.Helper()
	logger, err := storage.NewLogger(filepath.Join(t.TempDir(), "test.log"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logger.Close() })
	return logger
}

func TestFilterLatestTargetEmail(t *testing.T) {
	old := &Email{Subject: "shark data March", Date: time.Now().Add(-48 * time.Hour)}
	newer := &Email{Subject: "shark data April", Date: time.Now()}
	other := &Email{Subject: "lunch plans", Date: time.Now().Add(time.Hour)}

	got := filterLatestTargetEmail([]*Email{old, other, newer}, "shark data")
	if got != newer {
		t.Errorf("got %+v, want the newest matching mail", got)
	}

	if got := filterLatestTargetEmail([]*Email{other}, "shark data"); got != nil {
		t.Errorf("got %+v, want nil when nothing matches", got)
	}
}

func TestCheckAndProcessEmails(t *testing.T) {
	want := &Email{Subject: "shark data update", Date: time.Now()}
	svc := &fakeMailService{emails: []*Email{
		{Subject: "newsletter", Date: time.Now()},
		want,
	}}

	got, err := CheckAndProcessEmails(svc, "shark data", testLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want the matching mail", got)
	}
}

func TestCheckAndProcessEmailsEmptyInbox(t *testing.T) {
	got, err := CheckAndProcessEmails(&fakeMailService{}, "shark data", testLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for an empty inbox", got)
	}
}

func TestCheckAndProcessEmailsErrors(t *testing.T) {
	if _, err := CheckAndProcessEmails(&fakeMailService{connectErr: errors.New("refused")}, "x", testLogger(t)); err == nil {
		t.Error("expected a connect error")
	}
	if _, err := CheckAndProcessEmails(&fakeMailService{fetchErr: errors.New("broken")}, "x", testLogger(t)); err == nil {
		t.Error("expected a fetch error")
	}
}

func TestDatasetHandlerSavesAttachments(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	h := NewDatasetHandler("shark data", dir, "Sheet1")

	mail := &Email{
		Subject: "shark data refresh",
		Attachments: []*Attachment{
			{Filename: "attacks.csv", Content: []byte("Country;Age\nUSA;25\n")},
			{Filename: "notes.txt", Content: []byte("ignore me")},
		},
	}

	if err := h.Handle(mail, testLogger(t)); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "attacks.csv")); err != nil {
		t.Errorf("dataset attachment not saved: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("non-dataset attachment should not be saved")
	}
}

func TestDatasetHandlerIgnoresOtherSubjects(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	h := NewDatasetHandler("shark data", dir, "Sheet1")

	mail := &Email{
		Subject:     "invoice",
		Attachments: []*Attachment{{Filename: "attacks.csv", Content: []byte("x")}},
	}
	if err := h.Handle(mail, testLogger(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "attacks.csv")); err == nil {
		t.Error("attachment saved despite subject mismatch")
	}

	if err := h.Handle(nil, testLogger(t)); err != nil {
		t.Errorf("nil mail should be a no-op, got %v", err)
	}
}

func TestLoadAttachmentCSV(t *testing.T) {
	h := NewDatasetHandler("shark data", t.TempDir(), "Sheet1")

	df, err := h.LoadAttachment(&Attachment{
		Filename: "attacks.csv",
		Content:  []byte("Country;Age\nUSA;25\nAUSTRALIA;30\n"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if df.Nrow() != 2 || df.Ncol() != 2 {
		t.Errorf("shape = %dx%d, want 2x2", df.Nrow(), df.Ncol())
	}

	if _, err := h.LoadAttachment(&Attachment{Filename: "readme.pdf"}); err == nil {
		t.Error("expected an error for an unsupported attachment type")
	}
}

func TestIsDatasetAttachment(t *testing.T) {
	tests := map[string]bool{
		"attacks.csv":  true,
		"attacks.XLSX": true,
		"attacks.pdf":  false,
		"attacks":      false,
	}
	for name, want := range tests {
		if got := isDatasetAttachment(name); got != want {
			t.Errorf("isDatasetAttachment(%q) = %v, want %v", name, got, want)
		}
	}
}
