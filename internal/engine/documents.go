package engine

import (
	"fmt"
	"time"

	"github.com/tohidahmadvand1989-ship-it/daily-report-app1/internal/model"
)

// AddDocument stores the file bytes in the blob store and records a document
// for the active project. Bytes are stored first so a failure leaves no
// dangling metadata.
func (e *Engine) AddDocument(name, mimeType string, data []byte, description string) (model.ProjectDocument, error) {
	p := e.ActiveProject()
	if p == nil {
		return model.ProjectDocument{}, ErrNoActiveProject
	}
	if mimeType == "" {
		mimeType = "unknown"
	}

	fileID := model.NewID("file")
	if err := e.blobs.Put(fileID, data); err != nil {
		return model.ProjectDocument{}, fmt.Errorf("store file: %w", err)
	}

	doc := model.ProjectDocument{
		ID:          model.NewID("doc"),
		ProjectID:   p.ID,
		FileID:      fileID,
		Name:        name,
		Type:        mimeType,
		Size:        int64(len(data)),
		Description: description,
		UploadDate:  time.Now().UTC().Format(time.RFC3339),
	}
	next := e.data.Clone()
	next.Documents = append([]model.ProjectDocument{doc}, next.Documents...)
	return doc, e.apply(next)
}

// DeleteDocument removes a document and its blob. The blob goes first; if
// that fails the record is retained so no reference ever dangles. Unknown
// ids are a no-op.
func (e *Engine) DeleteDocument(docID string) error {
	doc := e.data.FindDocument(docID)
	if doc == nil {
		return nil
	}
	if err := e.blobs.Delete(doc.FileID); err != nil {
		return fmt.Errorf("delete file %s: %w", doc.FileID, err)
	}

	next := e.data.Clone()
	docs := next.Documents[:0]
	for _, d := range next.Documents {
		if d.ID != docID {
			docs = append(docs, d)
		}
	}
	next.Documents = docs
	return e.apply(next)
}
