package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/penwyp/go-life-tracker/internal/core/model"
)

// fromDocument turns a decoded document into a State that satisfies the model
// invariants, returning a description of every repair made.
func fromDocument(doc document, newID func() string) (model.State, []string) {
	var repairs []string
	note := func(format string, args ...interface{}) {
		repairs = append(repairs, fmt.Sprintf(format, args...))
	}

	state := model.State{
		Categories:            repairCategories(doc.Categories, note),
		LastProjectByCategory: make(map[string]string),
	}
	state.Projects = repairProjects(doc.Projects, note)
	if len(state.Projects) == 0 {
		state.Projects = model.DefaultProjects(newID)
		note("seeded %d default projects", len(state.Projects))
	}
	state.Intervals, state.Running = repairIntervals(state, doc.Intervals, note)

	for catID, projID := range doc.LastProjectByCategory {
		if p, ok := state.Project(projID); ok && p.CategoryID == catID {
			state.LastProjectByCategory[catID] = projID
		} else if projID != "" {
			note("dropped last project %q for %q", projID, catID)
		}
	}
	return state, repairs
}

func repairCategories(docs []categoryDoc, note func(string, ...interface{})) []model.Category {
	byID := make(map[string]categoryDoc, len(docs))
	for _, d := range docs {
		if d.ID != "" {
			byID[d.ID] = d
		}
	}

	out := model.DefaultCategories()
	for i := range out {
		d, ok := byID[out[i].ID]
		if !ok {
			note("added missing category %s", out[i].ID)
			continue
		}
		delete(byID, out[i].ID)
		if strings.TrimSpace(d.Name) != "" {
			out[i].Name = d.Name
		}
		if d.Examples != "" {
			out[i].Examples = d.Examples
		}
		if d.GoalMinutes < 0 {
			note("reset negative goal of %s", d.ID)
			continue
		}
		out[i].GoalMinutes = d.GoalMinutes
	}

	// Categories outside the fixed set are kept so their intervals stay displayable.
	for _, d := range docs {
		if _, extra := byID[d.ID]; !extra {
			continue
		}
		delete(byID, d.ID)
		out = append(out, model.Category{ID: d.ID, Name: d.Name, Examples: d.Examples, GoalMinutes: max(d.GoalMinutes, 0)})
	}
	return out
}

func repairProjects(docs []projectDoc, note func(string, ...interface{})) []model.Project {
	out := make([]model.Project, 0, len(docs))
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		name := strings.TrimSpace(d.Name)
		if d.ID == "" || name == "" || seen[d.ID] {
			note("dropped invalid project %q", d.ID)
			continue
		}
		seen[d.ID] = true
		out = append(out, model.Project{ID: d.ID, CategoryID: d.CategoryID, Name: name})
	}
	return out
}

// repairIntervals enforces start < end and a single running interval. An open
// interval that is not the latest is closed where the next one starts.
func repairIntervals(state model.State, docs []intervalDoc, note func(string, ...interface{})) ([]model.Finished, *model.Running) {
	valid := make([]intervalDoc, 0, len(docs))
	for _, d := range docs {
		switch {
		case d.ID == "":
			note("dropped interval without id")
		case d.End != nil && *d.End <= d.Start:
			note("dropped empty or inverted interval %s", d.ID)
		default:
			if p, ok := state.Project(d.ProjectID); ok && p.CategoryID != d.CategoryID {
				note("moved interval %s to category %s of its project", d.ID, p.CategoryID)
				d.CategoryID = p.CategoryID
			}
			valid = append(valid, d)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Start < valid[j].Start })

	finished := make([]model.Finished, 0, len(valid))
	var running *model.Running
	for i, d := range valid {
		meta := model.IntervalMeta{ID: d.ID, CategoryID: d.CategoryID, ProjectID: d.ProjectID, Start: d.Start}
		if d.End != nil {
			finished = append(finished, model.Finished{IntervalMeta: meta, End: *d.End, Note: strings.TrimSpace(d.Note)})
			continue
		}
		if i == len(valid)-1 {
			running = &model.Running{IntervalMeta: meta}
			continue
		}
		next := valid[i+1].Start
		if next <= d.Start {
			note("dropped open interval %s", d.ID)
			continue
		}
		note("closed stray open interval %s", d.ID)
		finished = append(finished, model.Finished{IntervalMeta: meta, End: next})
	}
	return finished, running
}
