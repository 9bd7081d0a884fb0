package tui

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/engine"
	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// documentsModel manages project file attachments. File bytes live in the
// blob store; the snapshot only carries the metadata records shown here.
type documentsModel struct {
	eng    *engine.Engine
	width  int
	height int

	documents []model.ProjectDocument
	cursor    int

	formActive bool
	form       *huh.Form
	fPath      *string
	fDesc      *string
}

func newDocumentsModel(eng *engine.Engine) documentsModel {
	path, desc := "", ""
	return documentsModel{eng: eng, fPath: &path, fDesc: &desc}
}

func (m *documentsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type documentsDataMsg struct {
	documents []model.ProjectDocument
}

func (m documentsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return documentsDataMsg{documents: m.eng.ActiveDocuments()}
	}
}

func (m documentsModel) update(msg tea.Msg) (documentsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case documentsDataMsg:
		m.documents = msg.documents
		if m.cursor >= len(m.documents) {
			m.cursor = max(0, len(m.documents)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.documents)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showAddForm()
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.documents) {
				if err := m.eng.DeleteDocument(m.documents[m.cursor].ID); err != nil {
					return m, func() tea.Msg { return errorStatus(err) }
				}
				return m, tea.Batch(
					m.refresh(),
					func() tea.Msg { return dataChangedMsg{} },
					func() tea.Msg { return statusMsg{text: "Document deleted"} },
				)
			}
		}
	}
	return m, nil
}

func (m documentsModel) showAddForm() (documentsModel, tea.Cmd) {
	*m.fPath = ""
	*m.fDesc = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("File path").
				Value(m.fPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
			huh.NewInput().Title("Description").Value(m.fDesc),
		).Title("Attach Document"),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m documentsModel) updateForm(msg tea.Msg) (documentsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitAddForm()
	}
	return m, cmd
}

func (m documentsModel) submitAddForm() (documentsModel, tea.Cmd) {
	path := strings.TrimSpace(*m.fPath)
	data, err := os.ReadFile(path)
	if err != nil {
		return m, func() tea.Msg { return errorStatus(err) }
	}

	name := filepath.Base(path)
	mimeType := mime.TypeByExtension(filepath.Ext(path))

	doc, err := m.eng.AddDocument(name, mimeType, data, *m.fDesc)
	if err != nil {
		return m, func() tea.Msg { return errorStatus(err) }
	}
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return dataChangedMsg{} },
		func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Attached %s (%s)", doc.Name, formatBytes(doc.Size))}
		},
	)
}

func (m documentsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Attach Document"), "", m.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Documents")
	if p := m.eng.ActiveProject(); p != nil {
		title += mutedStyle.Render("  " + p.Name)
	}

	if len(m.documents) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title, "",
			mutedStyle.Render("No documents attached. Press n to attach a file."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-30s %-20s %10s  %s", "Name", "Type", "Size", "Uploaded")))

	for i, doc := range m.documents {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		uploaded := doc.UploadDate
		if t, err := time.Parse(time.RFC3339, doc.UploadDate); err == nil {
			uploaded = t.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-30s %-20s %10s  %s",
			cursor, truncate(doc.Name, 30), truncate(doc.Type, 20), formatBytes(doc.Size), uploaded,
		)))
		if i == m.cursor && doc.Description != "" {
			rows = append(rows, mutedStyle.Render("    "+truncate(doc.Description, w-8)))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: attach  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
