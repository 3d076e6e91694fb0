package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/api"
	"github.com/jonathan/optihire/internal/poller"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resume := &api.ResumeComplete{
		Resume: api.Resume{
			ID:               uuid.New(),
			VersionName:      "Backend Engineer",
			FullName:         strPtr("Ada Lovelace"),
			Email:            strPtr("ada@example.com"),
			ProcessingStatus: api.StatusCompleted,
		},
		Experiences: []api.Experience{
			{JobTitle: "Engineer", CompanyName: "Acme"},
			{JobTitle: "Analyst", CompanyName: "Babbage & Co"},
		},
		Skills: []api.Skill{{SkillName: "Go"}},
	}

	p.PrintResume(resume)
	out := buf.String()

	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Experiences:    2")
	assert.Contains(t, out, "Engineer, Acme")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestPrintResume_NilIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResumeList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeList([]api.ResumeListItem{
		{VersionName: "Primary", IsPrimary: true, ProcessingStatus: api.StatusCompleted},
		{VersionName: "Startup variant", ProcessingStatus: api.StatusProcessing},
	})
	out := buf.String()

	assert.Contains(t, out, "Total: 2")
	assert.Contains(t, out, "* Primary")
	assert.Contains(t, out, "Startup variant")
}

func TestPrintResumeList_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeList(nil)
	assert.Contains(t, buf.String(), "No resumes found")
}

func TestPrintParseProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintParseProgress(poller.State{Attempt: 3, Status: api.StatusProcessing}, 60)
	assert.Equal(t, "Parse check 3/60: Processing\n", buf.String())
}

func TestPrintParseStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	detail := "Could not read page 2"
	p.PrintParseStatus(&api.ParseStatus{
		ID:           uuid.New(),
		Status:       api.StatusFailed,
		ErrorDetails: &detail,
		UpdatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	out := buf.String()

	assert.Contains(t, out, "Failed")
	assert.Contains(t, out, "Could not read page 2")
	assert.Contains(t, out, "2025-06-01T12:00:00Z")
}

func TestPrintDraft(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDraft("My Draft", time.Now(), true)
	out := buf.String()

	assert.Contains(t, out, "My Draft")
	assert.Contains(t, out, "autosave")
	assert.Contains(t, out, "UNSAVED DRAFT")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}
