package model

// CurrentVersion is the AppData schema version written by this build.
// It gates future migrations; no migration logic exists yet.
const CurrentVersion = 2

// Obstacle status values. Closed is terminal; there is no reopening path.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// History actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Activity is one quantified unit of work with today's and cumulative progress.
type Activity struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	DoneToday    float64 `json:"doneToday"`
	DonePrevious float64 `json:"donePrevious"`
	Remaining    float64 `json:"remaining"`
	TotalVolume  float64 `json:"totalVolume"`
	WorkFront    string  `json:"workFront"`
}

type HumanResource struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type Machinery struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	HoursWorked float64 `json:"hoursWorked"`
}

// Obstacle is a two-state lifecycle entity: open until resolved, then closed.
type Obstacle struct {
	ID              string `json:"id"`
	Description     string `json:"description"`
	DateAdded       string `json:"dateAdded"`
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
	ResolutionDate  string `json:"resolutionDate,omitempty"`
	ResolutionNotes string `json:"resolutionNotes,omitempty"`
}

// HistoryEntry is one immutable audit-trail record. Report history is kept
// newest-first and is never edited or removed.
type HistoryEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

// DailyReport is one day's site report for one project. ProjectID is the
// source of truth; ProjectName is carried for display only.
type DailyReport struct {
	ID                  string          `json:"id"`
	ProjectID           string          `json:"projectId"`
	ProjectName         string          `json:"project"`
	Client              string          `json:"client"`
	Contractor          string          `json:"contractor"`
	Consultant          string          `json:"consultant"`
	Date                string          `json:"date"` // ISO YYYY-MM-DD, lexicographically sortable
	Day                 string          `json:"day"`
	Weather             string          `json:"weather"`
	Temperature         float64         `json:"temperature"`
	StartTime           string          `json:"startTime"`
	EndTime             string          `json:"endTime"`
	PerformedActivities []Activity      `json:"performedActivities"`
	HumanResources      []HumanResource `json:"humanResources"`
	Machinery           []Machinery     `json:"machinery"`
	Obstacles           []Obstacle      `json:"obstacles"`
	ExecutivePersonnel  string          `json:"executivePersonnel"`
	SupervisorOpinion   string          `json:"supervisorOpinion"`
	ClientOpinion       string          `json:"clientOpinion"`
	History             []HistoryEntry  `json:"history"`
}

// ProjectDocument is attachment metadata. FileID references the blob store;
// the document owns those bytes, so deleting the document deletes the blob.
type ProjectDocument struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	FileID      string `json:"fileId"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	Description string `json:"description"`
	UploadDate  string `json:"uploadDate"` // ISO 8601 timestamp
}

// AppData is the full application snapshot: the unit of persistence and of
// backup/restore. Every report and document must reference a project present
// in Projects; ActiveProjectID is either empty or a valid project id.
type AppData struct {
	Version         int               `json:"version"`
	Projects        []Project         `json:"projects"`
	Reports         []DailyReport     `json:"reports"`
	Documents       []ProjectDocument `json:"documents"`
	ActiveProjectID string            `json:"activeProjectId"`
}

// Empty returns the skeleton snapshot used on first run and after a reset.
func Empty() AppData {
	return AppData{
		Version:   CurrentVersion,
		Projects:  []Project{},
		Reports:   []DailyReport{},
		Documents: []ProjectDocument{},
	}
}

// FindProject returns the project with the given id, or nil.
func (d AppData) FindProject(id string) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i]
		}
	}
	return nil
}

// FindReport returns the report with the given id, or nil.
func (d AppData) FindReport(id string) *DailyReport {
	for i := range d.Reports {
		if d.Reports[i].ID == id {
			return &d.Reports[i]
		}
	}
	return nil
}

// FindDocument returns the document with the given id, or nil.
func (d AppData) FindDocument(id string) *ProjectDocument {
	for i := range d.Documents {
		if d.Documents[i].ID == id {
			return &d.Documents[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the report. All slice fields are copied so
// mutating the clone never aliases the original.
func (r DailyReport) Clone() DailyReport {
	c := r
	c.PerformedActivities = append([]Activity(nil), r.PerformedActivities...)
	c.HumanResources = append([]HumanResource(nil), r.HumanResources...)
	c.Machinery = append([]Machinery(nil), r.Machinery...)
	c.Obstacles = append([]Obstacle(nil), r.Obstacles...)
	c.History = append([]HistoryEntry(nil), r.History...)
	return c
}

// Clone returns a deep copy of the snapshot.
func (d AppData) Clone() AppData {
	c := d
	c.Projects = append([]Project(nil), d.Projects...)
	c.Documents = append([]ProjectDocument(nil), d.Documents...)
	c.Reports = make([]DailyReport, len(d.Reports))
	for i := range d.Reports {
		c.Reports[i] = d.Reports[i].Clone()
	}
	return c
}
