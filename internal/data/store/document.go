package store

import (
	"github.com/penwyp/go-life-tracker/internal/core/constants"
	"github.com/penwyp/go-life-tracker/internal/core/model"
)

// document is the on-disk shape. Timestamps are epoch milliseconds; a running
// interval has a null end.
type document struct {
	Version               int               `json:"version"`
	Categories            []categoryDoc     `json:"categories"`
	Projects              []projectDoc      `json:"projects"`
	Intervals             []intervalDoc     `json:"intervals"`
	LastProjectByCategory map[string]string `json:"lastProjectByCategory"`
}

type categoryDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Examples    string `json:"examples"`
	GoalMinutes int    `json:"goalMinutes"`
}

type projectDoc struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
}

type intervalDoc struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	ProjectID  string `json:"projectId"`
	Start      int64  `json:"start"`
	End        *int64 `json:"end"`
	Note       string `json:"note,omitempty"`
}

func toDocument(s model.State) document {
	doc := document{
		Version:               constants.StateVersion,
		Categories:            make([]categoryDoc, 0, len(s.Categories)),
		Projects:              make([]projectDoc, 0, len(s.Projects)),
		Intervals:             make([]intervalDoc, 0, len(s.Intervals)+1),
		LastProjectByCategory: make(map[string]string, len(s.LastProjectByCategory)),
	}
	for _, c := range s.Categories {
		doc.Categories = append(doc.Categories, categoryDoc{ID: c.ID, Name: c.Name, Examples: c.Examples, GoalMinutes: c.GoalMinutes})
	}
	for _, p := range s.Projects {
		doc.Projects = append(doc.Projects, projectDoc{ID: p.ID, CategoryID: p.CategoryID, Name: p.Name})
	}
	for _, f := range s.Intervals {
		end := f.End
		doc.Intervals = append(doc.Intervals, intervalDoc{
			ID: f.ID, CategoryID: f.CategoryID, ProjectID: f.ProjectID,
			Start: f.Start, End: &end, Note: f.Note,
		})
	}
	if r := s.Running; r != nil {
		doc.Intervals = append(doc.Intervals, intervalDoc{
			ID: r.ID, CategoryID: r.CategoryID, ProjectID: r.ProjectID, Start: r.Start,
		})
	}
	for k, v := range s.LastProjectByCategory {
		doc.LastProjectByCategory[k] = v
	}
	return doc
}
