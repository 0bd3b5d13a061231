// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	ExecutableNotFoundId,
	UnsupportedPlatformId,
	CompilationFailedId,
	CommandTimeoutId,
	ConfigLoadFailedId,
	InvalidArgumentsId,
}

// stubRender replaces the glamour renderer with an identity function.
func stubRender(t *testing.T) {
	t.Helper()
	original := render
	t.Cleanup(func() { render = original })
	render = func(in string, _ string) (string, error) { return in, nil }
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if ExecutableNotFoundId != 1 {
		t.Errorf("ExecutableNotFoundId = %d, want 1", ExecutableNotFoundId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ExecutableNotFoundId, false, "could not be started"},
		{UnsupportedPlatformId, false, "No bundled Sass build"},
		{CompilationFailedId, false, "Sass reported an error"},
		{CommandTimeoutId, false, "did not finish in time"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{InvalidArgumentsId, false, "Invalid compile arguments"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			got := Get(tt.id)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}
			if got == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if got.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", got.Id(), tt.id)
			}
			if !strings.Contains(string(got.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(allIds) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(allIds))
	}
	for i, v := range values {
		if v.Id() != allIds[i] {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), allIds[i])
		}
		if len(v.DocLinks()) == 0 {
			t.Errorf("issue %d has no doc links", v.Id())
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	entry := Get(ExecutableNotFoundId)
	links := entry.DocLinks()
	links[0] = "modified"
	if entry.DocLinks()[0] == "modified" {
		t.Error("DocLinks() should return a clone")
	}

	ext := entry.ExtLinks()
	ext[0] = "modified"
	if entry.ExtLinks()[0] == "modified" {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	stubRender(t)

	withLinks := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}
	rendered, err := withLinks.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	for _, want := range []string{"See also", "https://docs.example.com", "https://external.example.com"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() = %q, should contain %q", rendered, want)
		}
	}

	noLinks := &Issue{id: Id(9998), mdMsg: "# Test Issue\n\nNo links here."}
	rendered, err = noLinks.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	for _, entry := range Values() {
		rendered, err := entry.Render("notty")
		if err != nil {
			t.Errorf("issue %d failed to render: %v", entry.Id(), err)
		}
		if rendered == "" {
			t.Errorf("issue %d rendered to empty string", entry.Id())
		}
	}
}
