package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"swipepilot/internal/abtest"
	"swipepilot/internal/domain"
	"swipepilot/internal/report"
)

func TestNewRunCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRunCmd()
	if cmd.Use != "run" {
		t.Errorf("Use: %q", cmd.Use)
	}
	for _, flag := range []string{"count", "strategy", "headless", "no-persist"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("flag %q not registered", flag)
		}
	}
}

func TestNewReportCmd(t *testing.T) {
	t.Parallel()

	cmd := NewReportCmd()
	if cmd.Use != "report" {
		t.Errorf("Use: %q", cmd.Use)
	}
	if cmd.Flags().Lookup("account") == nil {
		t.Error("flag 'account' not registered")
	}
}

func TestNewABTestCmd(t *testing.T) {
	t.Parallel()

	cmd := NewABTestCmd()
	if cmd.Use != "abtest" {
		t.Errorf("Use: %q", cmd.Use)
	}
	for _, flag := range []string{"account-a", "account-b"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("flag %q not registered", flag)
		}
	}
}

func TestABTestRejectsMissingArms(t *testing.T) {
	t.Parallel()

	cmd := NewABTestCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--account-a", "1"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing --account-b")
	}

	cmd = NewABTestCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--account-a", "3", "--account-b", "3"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "different accounts") {
		t.Fatalf("expected same-account rejection, got %v", err)
	}
}

func TestNewTrainCmd(t *testing.T) {
	t.Parallel()

	cmd := NewTrainCmd()
	if cmd.Use != "train" {
		t.Errorf("Use: %q", cmd.Use)
	}
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--out") {
		t.Fatalf("expected missing --out error, got %v", err)
	}
}

func TestTrainingDataKeepsOnlyLikes(t *testing.T) {
	t.Parallel()

	records := []domain.StoredRecord{
		{Action: domain.ActionRight, Matched: true},
		{Action: domain.ActionLeft, Matched: false},
		{Action: domain.ActionSuper, Matched: false},
		{Action: domain.ActionRight, Matched: false},
	}
	samples, labels := trainingData(records)

	if len(samples) != 3 || len(labels) != 3 {
		t.Fatalf("sizes: %d samples, %d labels", len(samples), len(labels))
	}
	want := []int{1, 0, 0}
	for i, label := range labels {
		if label != want[i] {
			t.Fatalf("labels: got %v, want %v", labels, want)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	score := 75.0
	records := []domain.StoredRecord{
		{Action: domain.ActionRight, Matched: true, Score: &score, SwipedAt: time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)},
		{Action: domain.ActionLeft, SwipedAt: time.Date(2026, 1, 1, 20, 5, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	printSummary(&buf, 7, report.Summarize(records))

	out := buf.String()
	for _, want := range []string{"account 7", "Total swipes: 2", "Matches:      1", "Peak hour:    20:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintComparison(t *testing.T) {
	t.Parallel()

	result := abtest.Compare(
		[]domain.StoredRecord{{Action: domain.ActionRight, Matched: true}},
		[]domain.StoredRecord{{Action: domain.ActionRight}},
	)

	var buf bytes.Buffer
	printComparison(&buf, 1, 2, result)

	out := buf.String()
	for _, want := range []string{"account 1", "account 2", "Winner:         arm_a", "Recommendation:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
