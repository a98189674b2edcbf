// Package render turns Shortcut entities into the compact Markdown returned to
// tool callers.
package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/opensdd/osdd-shortcut/core/shortcut"
)

const storyTemplate = `# sc-{{.ID}}: {{.Name}}

{{range .Fields}}- {{.Key}}: {{.Value}}
{{end}}{{if .Description}}
## Description

{{.Description}}
{{end}}{{if .Tasks}}
## Tasks

{{range .Tasks}}- [{{if .Complete}}x{{else}} {{end}}] {{.Description}}
{{end}}{{end}}`

const storiesTemplate = `{{if .}}Found {{len .}} {{if eq (len .) 1}}story{{else}}stories{{end}}:

{{range .}}- sc-{{.ID}} [{{.State}}] {{.Name}} ({{.Type}})
{{end}}{{else}}No stories found.
{{end}}`

const epicTemplate = `# Epic {{.ID}}: {{.Name}}

{{range .Fields}}- {{.Key}}: {{.Value}}
{{end}}{{if .Description}}
## Description

{{.Description}}
{{end}}`

const workflowsTemplate = `{{range $i, $w := .}}{{if $i}}
{{end}}## {{$w.Name}} (workflow {{$w.ID}})

{{range $w.States}}- {{.Name}} (id {{.ID}}, {{.Category}}){{if .Default}} [default]{{end}}
{{end}}{{else}}No workflows configured.
{{end}}`

const membersTemplate = `{{range .}}- {{.Label}}, id {{.ID}}{{if .Disabled}} [disabled]{{end}}
{{else}}No members found.
{{end}}`

var (
	storyTpl     = template.Must(template.New("story").Parse(storyTemplate))
	storiesTpl   = template.Must(template.New("stories").Parse(storiesTemplate))
	epicTpl      = template.Must(template.New("epic").Parse(epicTemplate))
	workflowsTpl = template.Must(template.New("workflows").Parse(workflowsTemplate))
	membersTpl   = template.Must(template.New("members").Parse(membersTemplate))
)

type field struct {
	Key   string
	Value string
}

func execute(tpl *template.Template, data any) (string, error) {
	var out bytes.Buffer
	if err := tpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", tpl.Name(), err)
	}
	return out.String(), nil
}

// Story renders a single story with its state and owners labelled through ix.
func Story(s shortcut.Story, ix *Index) (string, error) {
	fields := []field{
		{"Type", s.StoryType},
		{"State", ix.StateName(s.WorkflowStateID)},
	}
	if len(s.OwnerIDs) > 0 {
		owners := make([]string, 0, len(s.OwnerIDs))
		for _, id := range s.OwnerIDs {
			owners = append(owners, ix.MemberName(id))
		}
		fields = append(fields, field{"Owners", strings.Join(owners, ", ")})
	}
	if s.Estimate != nil {
		fields = append(fields, field{"Estimate", strconv.FormatInt(*s.Estimate, 10)})
	}
	if s.EpicID != nil {
		fields = append(fields, field{"Epic", strconv.FormatInt(*s.EpicID, 10)})
	}
	if len(s.Labels) > 0 {
		names := make([]string, 0, len(s.Labels))
		for _, l := range s.Labels {
			names = append(names, l.Name)
		}
		fields = append(fields, field{"Labels", strings.Join(names, ", ")})
	}
	if s.Archived {
		fields = append(fields, field{"Archived", "yes"})
	}
	if s.AppURL != "" {
		fields = append(fields, field{"URL", s.AppURL})
	}

	data := struct {
		ID          int64
		Name        string
		Fields      []field
		Description string
		Tasks       []shortcut.Task
	}{
		ID:          s.ID,
		Name:        s.Name,
		Fields:      fields,
		Description: strings.TrimSpace(s.Description),
		Tasks:       s.Tasks,
	}
	return execute(storyTpl, data)
}

// Stories renders a search result listing, one line per story.
func Stories(stories []shortcut.Story, ix *Index) (string, error) {
	type row struct {
		ID    int64
		State string
		Name  string
		Type  string
	}
	rows := make([]row, 0, len(stories))
	for _, s := range stories {
		rows = append(rows, row{ID: s.ID, State: ix.StateName(s.WorkflowStateID), Name: s.Name, Type: s.StoryType})
	}
	return execute(storiesTpl, rows)
}

func Epic(e shortcut.Epic) (string, error) {
	fields := []field{{"State", e.State}}
	if e.Stats.NumStoriesTotal > 0 {
		fields = append(fields, field{"Stories", fmt.Sprintf("%d total, %d done, %d started, %d unstarted",
			e.Stats.NumStoriesTotal, e.Stats.NumStoriesDone, e.Stats.NumStoriesStarted, e.Stats.NumStoriesUnstarted)})
	}
	if e.AppURL != "" {
		fields = append(fields, field{"URL", e.AppURL})
	}
	data := struct {
		ID          int64
		Name        string
		Fields      []field
		Description string
	}{e.ID, e.Name, fields, strings.TrimSpace(e.Description)}
	return execute(epicTpl, data)
}

// Workflows lists every workflow with its states in position order as returned
// by the API. The workflow's default state is marked.
func Workflows(workflows []shortcut.Workflow) (string, error) {
	type stateVM struct {
		ID       int64
		Name     string
		Category string
		Default  bool
	}
	type workflowVM struct {
		ID     int64
		Name   string
		States []stateVM
	}
	vm := make([]workflowVM, 0, len(workflows))
	for _, wf := range workflows {
		w := workflowVM{ID: wf.ID, Name: wf.Name}
		for _, st := range wf.States {
			w.States = append(w.States, stateVM{
				ID:       st.ID,
				Name:     st.Name,
				Category: st.Category(),
				Default:  st.ID == wf.DefaultStateID,
			})
		}
		vm = append(vm, w)
	}
	return execute(workflowsTpl, vm)
}

func Members(members []shortcut.Member) (string, error) {
	type memberVM struct {
		ID       string
		Label    string
		Disabled bool
	}
	vm := make([]memberVM, 0, len(members))
	for _, m := range members {
		vm = append(vm, memberVM{ID: m.ID, Label: memberLabel(m), Disabled: m.Disabled})
	}
	return execute(membersTpl, vm)
}

func Identity(m shortcut.Member) string {
	return fmt.Sprintf("Authenticated as %s, id %s\n", memberLabel(m), m.ID)
}

func Comment(storyID int64, c shortcut.Comment) string {
	return fmt.Sprintf("Comment %d added to sc-%d.\n", c.ID, storyID)
}

func Task(storyID int64, t shortcut.Task) string {
	return fmt.Sprintf("Task %d added to sc-%d: %s\n", t.ID, storyID, t.Description)
}
