// AngelaMos | 2026
// machine_test.go

package moderation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pitchside/internal/core"
)

type fakeItem struct {
	status      Status
	moderatedBy *string
	moderatedAt *time.Time
	publishedAt *time.Time
}

func (f *fakeItem) CurrentStatus() Status { return f.status }
func (f *fakeItem) SetStatus(s Status)    { f.status = s }

func (f *fakeItem) SetModeration(actorID string, at time.Time) {
	f.moderatedBy = &actorID
	f.moderatedAt = &at
}

func (f *fakeItem) SetPublishedAt(at *time.Time) { f.publishedAt = at }

var (
	admin  = Actor{ID: "admin-1", Role: "admin"}
	reader = Actor{ID: "user-1", Role: "user"}
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"draft", "pending", "published"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), status)
	}

	_, err := ParseStatus("archived")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr error
	}{
		{"draft to pending", StatusDraft, StatusPending, nil},
		{"pending to published", StatusPending, StatusPublished, nil},
		{"pending to draft", StatusPending, StatusDraft, nil},
		{"published to draft", StatusPublished, StatusDraft, nil},
		{"same status is noop", StatusPublished, StatusPublished, nil},
		{"draft to published skips review", StatusDraft, StatusPublished, core.ErrInvalidTransition},
		{"published to pending", StatusPublished, StatusPending, core.ErrInvalidTransition},
		{"unknown target", StatusDraft, Status("archived"), core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApply_Approve(t *testing.T) {
	now := time.Now()
	item := &fakeItem{status: StatusPending}

	res, err := Apply(item, StatusPublished, admin, now)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, StatusPublished, item.status)
	require.NotNil(t, item.moderatedBy)
	assert.Equal(t, "admin-1", *item.moderatedBy)
	require.NotNil(t, item.moderatedAt)
	assert.Equal(t, now, *item.moderatedAt)
	require.NotNil(t, item.publishedAt)
	assert.Equal(t, now, *item.publishedAt)
}

func TestApply_ApproveTwiceIsNoop(t *testing.T) {
	now := time.Now()
	item := &fakeItem{status: StatusPending}

	first, err := Apply(item, StatusPublished, admin, now)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	second, err := Apply(item, StatusPublished, admin, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, StatusPublished, item.status)
	// First decision is untouched by the no-op.
	assert.Equal(t, now, *item.moderatedAt)
}

func TestApply_Reject(t *testing.T) {
	now := time.Now()
	item := &fakeItem{status: StatusPending}

	res, err := Apply(item, StatusDraft, admin, now)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, StatusDraft, item.status)
	require.NotNil(t, item.moderatedBy)
	assert.Equal(t, "admin-1", *item.moderatedBy)
	assert.Nil(t, item.publishedAt)
}

func TestApply_Unpublish(t *testing.T) {
	published := time.Now().Add(-time.Hour)
	item := &fakeItem{status: StatusPublished, publishedAt: &published}

	res, err := Apply(item, StatusDraft, admin, time.Now())
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, StatusDraft, item.status)
	assert.Nil(t, item.publishedAt)
}

func TestApply_NonAdminForbidden(t *testing.T) {
	item := &fakeItem{status: StatusPending}

	_, err := Apply(item, StatusPublished, reader, time.Now())
	assert.ErrorIs(t, err, core.ErrForbidden)

	// No mutation occurred.
	assert.Equal(t, StatusPending, item.status)
	assert.Nil(t, item.moderatedBy)
	assert.Nil(t, item.publishedAt)
}

func TestApply_SubmitDoesNotStampModeration(t *testing.T) {
	item := &fakeItem{status: StatusDraft}

	res, err := Apply(item, StatusPending, admin, time.Now())
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, StatusPending, item.status)
	assert.Nil(t, item.moderatedBy)
	assert.Nil(t, item.moderatedAt)
}
