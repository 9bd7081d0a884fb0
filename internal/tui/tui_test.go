package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/blob"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/store"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	b, err := blob.OpenInMemory()
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}
	t.Cleanup(func() { b.Close() })

	return engine.New(s, b)
}

func seedProject(t *testing.T, eng *engine.Engine, name string) model.Project {
	t.Helper()
	p, err := eng.CreateProject(name)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func seedReport(t *testing.T, eng *engine.Engine, date string) model.DailyReport {
	t.Helper()
	r, err := eng.NewReport(date)
	if err != nil {
		t.Fatalf("new report: %v", err)
	}
	saved, err := eng.SaveReport(r)
	if err != nil {
		t.Fatalf("save report: %v", err)
	}
	return saved
}

func collectMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

// ============================================================
// Helpers
// ============================================================

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
	}
	for _, c := range cases {
		if got := formatBytes(c.in); got != c.want {
			t.Errorf("formatBytes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPercentClamps(t *testing.T) {
	if got := percent(50, 100); got != 50 {
		t.Errorf("percent(50,100) = %v", got)
	}
	if got := percent(150, 100); got != 100 {
		t.Errorf("percent should clamp at 100, got %v", got)
	}
	if got := percent(10, 0); got != 0 {
		t.Errorf("percent with zero total should be 0, got %v", got)
	}
	if got := percent(-5, 100); got != 0 {
		t.Errorf("percent should clamp at 0, got %v", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate should keep short strings, got %q", got)
	}
	got := truncate("a long description here", 10)
	if len(got) > len("a long de")+len("…") {
		t.Errorf("truncate too long: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated string should end with ellipsis, got %q", got)
	}
}

// ============================================================
// Reports view
// ============================================================

func TestReportsRefreshLoadsActiveReports(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")
	seedReport(t, eng, "2025-03-01")
	seedReport(t, eng, "2025-03-02")

	m := newReportsModel(eng)
	msg := collectMsg(t, m.refresh())

	m, _ = m.update(msg)
	if len(m.reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(m.reports))
	}
	if m.reports[0].Date != "2025-03-02" {
		t.Errorf("reports should be newest first, got %s", m.reports[0].Date)
	}
}

func TestReportsCursorClampsAfterShrink(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")
	r1 := seedReport(t, eng, "2025-03-01")
	seedReport(t, eng, "2025-03-02")

	m := newReportsModel(eng)
	m, _ = m.update(collectMsg(t, m.refresh()))
	m.cursor = 1

	if err := eng.DeleteReport(r1.ID); err != nil {
		t.Fatal(err)
	}
	m, _ = m.update(collectMsg(t, m.refresh()))
	if m.cursor != 0 {
		t.Errorf("cursor should clamp to 0, got %d", m.cursor)
	}
}

func TestReportsDetailFollowsSave(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")
	r := seedReport(t, eng, "2025-03-01")

	m := newReportsModel(eng)
	m, _ = m.update(collectMsg(t, m.refresh()))
	m.mode = reportsDetail
	m.selected = r

	edited := r.Clone()
	edited.Weather = "Rainy"
	if _, err := eng.SaveReport(edited); err != nil {
		t.Fatal(err)
	}

	m, _ = m.update(collectMsg(t, m.refresh()))
	if m.selected.Weather != "Rainy" {
		t.Errorf("detail view should track saved report, weather = %q", m.selected.Weather)
	}
}

func TestReportsDetailClosesWhenReportDeleted(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")
	r := seedReport(t, eng, "2025-03-01")

	m := newReportsModel(eng)
	m, _ = m.update(collectMsg(t, m.refresh()))
	m.mode = reportsDetail
	m.selected = r

	if err := eng.DeleteReport(r.ID); err != nil {
		t.Fatal(err)
	}
	m, _ = m.update(collectMsg(t, m.refresh()))
	if m.mode != reportsList {
		t.Error("detail view should fall back to list when the report is gone")
	}
}

func TestReportsNewWithoutProjectShowsError(t *testing.T) {
	eng := newTestEngine(t)
	m := newReportsModel(eng)

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	msg := collectMsg(t, cmd)
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", msg)
	}
	if !status.isError {
		t.Error("creating a report with no project should be an error status")
	}
	if m.formActive {
		t.Error("form should not open without a project")
	}
}

func TestReportsRestoreConfirmCancel(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")

	backup := model.Empty()
	backup.Projects = append(backup.Projects, model.Project{ID: "p-x", Name: "Imported"})

	m := newReportsModel(eng)
	eng.StageRestore(backup)
	m.confirmingRestore = true

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.confirmingRestore {
		t.Error("n should dismiss the restore confirmation")
	}
	if eng.PendingRestore() != nil {
		t.Error("cancel should discard the staged backup")
	}
	if len(eng.Data().Projects) != 1 || eng.Data().Projects[0].Name != "Bridge" {
		t.Error("cancel must leave current data untouched")
	}
}

func TestReportsRestoreConfirmApply(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")

	backup := model.Empty()
	backup.Projects = append(backup.Projects, model.Project{ID: "p-x", Name: "Imported"})
	backup.ActiveProjectID = "p-x"

	m := newReportsModel(eng)
	eng.StageRestore(backup)
	m.confirmingRestore = true

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if m.confirmingRestore {
		t.Error("y should dismiss the restore confirmation")
	}
	if cmd == nil {
		t.Fatal("confirm should emit refresh commands")
	}
	data := eng.Data()
	if len(data.Projects) != 1 || data.Projects[0].Name != "Imported" {
		t.Errorf("restore should replace the snapshot, got %+v", data.Projects)
	}
}

// ============================================================
// Problems view
// ============================================================

func obstacleReport(t *testing.T, eng *engine.Engine, date, desc string) model.DailyReport {
	t.Helper()
	r, err := eng.NewReport(date)
	if err != nil {
		t.Fatal(err)
	}
	r.Obstacles = append(r.Obstacles, model.Obstacle{
		ID:          model.NewID("obs"),
		Description: desc,
		DateAdded:   date,
		Type:        "equipment",
		Priority:    "high",
		Status:      model.StatusOpen,
	})
	saved, err := eng.SaveReport(r)
	if err != nil {
		t.Fatal(err)
	}
	return saved
}

func TestProblemsOpenFilter(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")
	r := obstacleReport(t, eng, "2025-03-01", "Crane broke down")

	if err := eng.SolveObstacle(r.ID, r.Obstacles[0].ID, "2025-03-02", "Repaired"); err != nil {
		t.Fatal(err)
	}

	m := newProblemsModel(eng)
	m, _ = m.update(collectMsg(t, m.refresh()))

	if len(m.visible()) != 0 {
		t.Errorf("open-only filter should hide closed obstacles, saw %d", len(m.visible()))
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	if len(m.visible()) != 1 {
		t.Errorf("all filter should show closed obstacles, saw %d", len(m.visible()))
	}
}

func TestProblemsCursorClamp(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")
	r := obstacleReport(t, eng, "2025-03-01", "Material shortage")

	m := newProblemsModel(eng)
	m, _ = m.update(collectMsg(t, m.refresh()))
	m.cursor = 0

	if err := eng.SolveObstacle(r.ID, r.Obstacles[0].ID, "2025-03-02", ""); err != nil {
		t.Fatal(err)
	}
	m, _ = m.update(collectMsg(t, m.refresh()))
	if m.cursor != 0 {
		t.Errorf("cursor should clamp, got %d", m.cursor)
	}
}

// ============================================================
// Dashboard view
// ============================================================

func TestDashboardAggregates(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")

	r, err := eng.NewReport("2025-03-01")
	if err != nil {
		t.Fatal(err)
	}
	r.HumanResources = []model.HumanResource{{ID: "hr-1", Description: "Welder", Count: 4}}
	r.Machinery = []model.Machinery{{ID: "m-1", Description: "Crane", Count: 2, HoursWorked: 8}}
	r.PerformedActivities = []model.Activity{{ID: "a-1", Description: "Concrete", Unit: "m3", DoneToday: 12}}
	if _, err := eng.SaveReport(r); err != nil {
		t.Fatal(err)
	}

	d := newDashboardModel(eng)
	d.setSize(100, 40)
	d, _ = d.update(collectMsg(t, d.refresh()))

	if len(d.summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(d.summaries))
	}
	s := d.summaries[0]
	if s.Personnel != 4 || s.MachineryCount != 2 || s.ActivityVolume != 12 {
		t.Errorf("unexpected summary: %+v", s)
	}

	view := d.view()
	if !strings.Contains(view, "Bridge") {
		t.Error("dashboard should show the active project name")
	}
}

func TestDashboardNoProject(t *testing.T) {
	eng := newTestEngine(t)
	d := newDashboardModel(eng)
	d.setSize(100, 40)

	view := d.view()
	if !strings.Contains(view, "No active project") {
		t.Error("dashboard should prompt for a project")
	}
}

// ============================================================
// Trends view
// ============================================================

func TestTrendsProgress(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")

	r, err := eng.NewReport("2025-03-01")
	if err != nil {
		t.Fatal(err)
	}
	r.PerformedActivities = []model.Activity{{
		ID: "a-1", Description: "Excavation", Unit: "m3",
		DoneToday: 30, DonePrevious: 20, TotalVolume: 100,
	}}
	if _, err := eng.SaveReport(r); err != nil {
		t.Fatal(err)
	}

	m := newTrendsModel(eng)
	m.setSize(100, 40)
	m, _ = m.update(collectMsg(t, m.refresh()))

	if len(m.trends) != 1 {
		t.Fatalf("expected 1 trend, got %d", len(m.trends))
	}
	if m.trends[0].Done != 50 {
		t.Errorf("done should be previous+today, got %g", m.trends[0].Done)
	}

	view := m.view()
	if !strings.Contains(view, "Excavation") {
		t.Error("trend view should list the activity")
	}
	if !strings.Contains(view, "50.0%") {
		t.Errorf("trend view should show 50.0%%:\n%s", view)
	}
}

// ============================================================
// Documents view
// ============================================================

func TestDocumentsRefresh(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")

	if _, err := eng.AddDocument("plan.pdf", "application/pdf", []byte("pdf bytes"), "Site plan"); err != nil {
		t.Fatal(err)
	}

	m := newDocumentsModel(eng)
	m.setSize(100, 40)
	m, _ = m.update(collectMsg(t, m.refresh()))

	if len(m.documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(m.documents))
	}
	view := m.view()
	if !strings.Contains(view, "plan.pdf") {
		t.Error("document list should show the file name")
	}
}

func TestDocumentsDeleteKey(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")
	if _, err := eng.AddDocument("plan.pdf", "application/pdf", []byte("x"), ""); err != nil {
		t.Fatal(err)
	}

	m := newDocumentsModel(eng)
	m, _ = m.update(collectMsg(t, m.refresh()))

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd == nil {
		t.Fatal("delete should emit commands")
	}
	if len(eng.ActiveDocuments()) != 0 {
		t.Error("document should be deleted")
	}
}

// ============================================================
// Projects view
// ============================================================

func TestProjectsSwitchWithEnter(t *testing.T) {
	eng := newTestEngine(t)
	seedProject(t, eng, "Bridge")
	second := seedProject(t, eng, "Tunnel")

	if eng.Data().ActiveProjectID != second.ID {
		t.Fatal("newest project should start active")
	}

	m := newProjectsModel(eng)
	m, _ = m.update(collectMsg(t, m.refresh()))
	m.cursor = 0 // Bridge

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if eng.Data().ActiveProjectID == second.ID {
		t.Error("enter should switch the active project")
	}
}

func TestProjectsDeleteNeedsConfirm(t *testing.T) {
	eng := newTestEngine(t)
	p := seedProject(t, eng, "Bridge")

	m := newProjectsModel(eng)
	m, _ = m.update(collectMsg(t, m.refresh()))

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if !m.confirming {
		t.Fatal("d should open the confirmation overlay")
	}
	if len(eng.Data().Projects) != 1 {
		t.Fatal("nothing should be deleted before confirmation")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.confirming {
		t.Error("n should dismiss the confirmation")
	}
	if len(eng.Data().Projects) != 1 {
		t.Error("declined delete must keep the project")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m, _ = m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if len(eng.Data().Projects) != 0 {
		t.Errorf("confirmed delete should remove %s", p.Name)
	}
}

// ============================================================
// App routing
// ============================================================

func newTestApp(t *testing.T) App {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	b, err := blob.OpenInMemory()
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}
	t.Cleanup(func() { b.Close() })

	return NewApp(engine.New(s, b), s)
}

func TestAppTabSwitching(t *testing.T) {
	a := newTestApp(t)

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	a = model.(App)
	if a.activeView != viewProblems {
		t.Errorf("3 should open problems, got %v", a.activeView)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = model.(App)
	if a.activeView != viewTrends {
		t.Errorf("tab should advance to trends, got %v", a.activeView)
	}
}

func TestAppStatusMessages(t *testing.T) {
	a := newTestApp(t)

	model, _ := a.Update(statusMsg{text: "saved", isError: false})
	a = model.(App)
	if a.status != "saved" || a.statusError {
		t.Errorf("status not recorded: %q err=%v", a.status, a.statusError)
	}

	model, _ = a.Update(statusMsg{text: "boom", isError: true})
	a = model.(App)
	if !a.statusError {
		t.Error("error flag should be set")
	}
}

func TestAppViewRendersTabs(t *testing.T) {
	a := newTestApp(t)
	model, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a = model.(App)

	view := a.View()
	for _, name := range viewNames {
		if !strings.Contains(view, name) {
			t.Errorf("header should list the %s tab", name)
		}
	}
}
