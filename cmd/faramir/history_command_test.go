package main

import (
	"encoding/json"
	"testing"

	"faramir/internal/testsupport"
)

func TestHistoryListsAndShowsRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	folder, csv := setupRoll(t, env, cliRowOne, cliRowTwo)

	if _, _, err := runCLI(t, []string{"run", folder, csv}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []runSummaryJSON
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.Status != "completed" || run.Renamed != 2 || run.Tagged != 2 {
		t.Fatalf("unexpected run %+v", run)
	}

	out, _, err = runCLI(t, []string{"history", "show", shortID(run.ID)}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, run.ID)
	requireContains(t, out, "Kodak_Gold_200_Paris_Summer 2024_R01_F02.jpg")
	requireContains(t, out, "tagged")

	out, _, err = runCLI(t, []string{"history", "show", "--json", run.ID}, env.configPath)
	if err != nil {
		t.Fatalf("history show json: %v", err)
	}
	var detail runDetailJSON
	if err := json.Unmarshal([]byte(out), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if len(detail.Items) != 2 || detail.Items[0].Tags != 8 {
		t.Fatalf("unexpected items %+v", detail.Items)
	}
}

func TestHistoryShowUnknownRun(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"history", "show", "deadbeef"}, env.configPath)
	if err == nil {
		t.Fatal("expected unknown run to fail")
	}
	requireContains(t, err.Error(), "no run matches")
}

func TestHistoryDisabledJournal(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithJournalDisabled())
	_, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err == nil {
		t.Fatal("expected disabled journal to fail")
	}
	requireContains(t, err.Error(), "journal is disabled")
}

func TestRollLabel(t *testing.T) {
	if got := rollLabel("/scans/Kodak Gold 200/Paris - Summer 2024"); got != "Kodak Gold 200/Paris - Summer 2024" {
		t.Fatalf("unexpected label %q", got)
	}
}
