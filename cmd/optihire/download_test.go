package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/optihire/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedLister serves a fixed resume list in limit-sized slices and
// records the offsets it was asked for.
type pagedLister struct {
	items   []api.ResumeListItem
	offsets []int
	err     error
}

func (l *pagedLister) ListResumes(_ context.Context, limit, offset int) ([]api.ResumeListItem, error) {
	l.offsets = append(l.offsets, offset)
	if l.err != nil {
		return nil, l.err
	}
	if offset >= len(l.items) {
		return nil, nil
	}
	end := offset + limit
	if end > len(l.items) {
		end = len(l.items)
	}
	return l.items[offset:end], nil
}

func TestCompletedResumeIDs_WalksPastFirstPage(t *testing.T) {
	lister := &pagedLister{}
	var want []uuid.UUID
	for i := 0; i < 230; i++ {
		item := api.ResumeListItem{
			ID:               uuid.New(),
			VersionName:      fmt.Sprintf("Version %d", i),
			ProcessingStatus: api.StatusCompleted,
		}
		if i%7 == 0 {
			item.ProcessingStatus = api.StatusFailed
		} else {
			want = append(want, item.ID)
		}
		lister.items = append(lister.items, item)
	}

	ids, err := completedResumeIDs(context.Background(), lister)

	require.NoError(t, err)
	assert.Equal(t, want, ids)
	assert.Equal(t, []int{0, 100, 200}, lister.offsets)
}

func TestCompletedResumeIDs_ExactPageBoundary(t *testing.T) {
	lister := &pagedLister{}
	for i := 0; i < listPageSize; i++ {
		lister.items = append(lister.items, api.ResumeListItem{
			ID:               uuid.New(),
			ProcessingStatus: api.StatusCompleted,
		})
	}

	ids, err := completedResumeIDs(context.Background(), lister)

	require.NoError(t, err)
	assert.Len(t, ids, listPageSize)
	// A full page forces one more request to find the end of the list.
	assert.Equal(t, []int{0, 100}, lister.offsets)
}

func TestCompletedResumeIDs_ListError(t *testing.T) {
	lister := &pagedLister{err: fmt.Errorf("list failed")}

	ids, err := completedResumeIDs(context.Background(), lister)

	assert.Error(t, err)
	assert.Nil(t, ids)
}
