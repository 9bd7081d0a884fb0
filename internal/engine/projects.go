package engine

import (
	"fmt"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// CreateProject adds a new project and makes it the active one.
func (e *Engine) CreateProject(name string) (model.Project, error) {
	p := model.Project{ID: model.NewID("proj"), Name: name}
	next := e.data.Clone()
	next.Projects = append(next.Projects, p)
	next.ActiveProjectID = p.ID
	return p, e.apply(next)
}

// RenameProject updates the project name in place. Projects carry no audit
// trail. Unknown ids are a no-op.
func (e *Engine) RenameProject(id, newName string) error {
	next := e.data.Clone()
	for i := range next.Projects {
		if next.Projects[i].ID == id {
			next.Projects[i].Name = newName
			return e.apply(next)
		}
	}
	return nil
}

// SwitchProject makes the given project active. Unknown ids are a no-op.
func (e *Engine) SwitchProject(id string) error {
	if e.data.FindProject(id) == nil {
		return nil
	}
	next := e.data.Clone()
	next.ActiveProjectID = id
	return e.apply(next)
}

// DeleteProject removes a project together with its reports, documents and
// document blobs. Blob deletion runs first; if any blob delete fails the
// whole command aborts with the state unchanged. The caller is responsible
// for having confirmed this with the user. If the deleted project was
// active, the first remaining project becomes active.
func (e *Engine) DeleteProject(id string) error {
	for _, doc := range e.data.Documents {
		if doc.ProjectID != id {
			continue
		}
		if err := e.blobs.Delete(doc.FileID); err != nil {
			return fmt.Errorf("delete file %s: %w", doc.FileID, err)
		}
	}

	next := e.data.Clone()
	projects := next.Projects[:0]
	for _, p := range next.Projects {
		if p.ID != id {
			projects = append(projects, p)
		}
	}
	next.Projects = projects
	reports := next.Reports[:0]
	for _, r := range next.Reports {
		if r.ProjectID != id {
			reports = append(reports, r)
		}
	}
	next.Reports = reports
	docs := next.Documents[:0]
	for _, d := range next.Documents {
		if d.ProjectID != id {
			docs = append(docs, d)
		}
	}
	next.Documents = docs

	if next.ActiveProjectID == id {
		if len(next.Projects) > 0 {
			next.ActiveProjectID = next.Projects[0].ID
		} else {
			next.ActiveProjectID = ""
		}
	}
	return e.apply(next)
}
