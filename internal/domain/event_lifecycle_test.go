package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testSuper = Actor{ID: "super-1", Role: RoleSuperAdmin}
	testOwner = Actor{ID: "admin-1", Role: RoleAdmin}
)

var allStatuses = []EventStatus{StatusPending, StatusApproved, StatusRejected, StatusPendingEdit, StatusPendingDelete}

var allOperations = []Operation{
	OpSubmit, OpPublish, OpOverrideEdit, OpEditDraft, OpProposeEdit,
	OpForceDelete, OpDeleteDraft, OpRequestDelete, OpApprove, OpApproveEdit,
	OpReject, OpApproveDelete, OpRejectDelete,
}

func liveFields() EventFields {
	return EventFields{
		Title: "Derby", Date: "Sat", Location: "Stadium", Description: "Local derby",
		Image: "img", Tags: []string{"football"}, Category: "Football",
	}
}

// eventIn builds a consistent event in the given status.
func eventIn(status EventStatus) *Event {
	approver := testSuper.ID
	at := testNow.Add(-time.Hour)
	e := &Event{
		ID: "ev-1", EventFields: liveFields(), Status: status, CreatedBy: testOwner.ID,
		CreatedAt: at, UpdatedAt: at, Version: 3,
	}
	switch status {
	case StatusApproved:
		e.ApprovedBy, e.ApprovedAt = &approver, &at
	case StatusRejected:
		reason := "nope"
		e.RejectedBy, e.RejectedAt, e.RejectionReason = &approver, &at, &reason
	case StatusPendingEdit:
		staged := liveFields()
		staged.Title = "Derby II"
		e.ApprovedBy, e.ApprovedAt, e.PendingChanges = &approver, &at, &staged
	case StatusPendingDelete:
		requester := testOwner.ID
		e.ApprovedBy, e.ApprovedAt = &approver, &at
		e.DeleteRequestedBy, e.DeleteRequestedAt = &requester, &at
	}
	return e
}

func TestTransitionTable(t *testing.T) {
	legal := map[Operation]map[EventStatus]EventStatus{
		OpOverrideEdit:  {StatusPending: StatusPending, StatusApproved: StatusApproved, StatusRejected: StatusRejected, StatusPendingEdit: StatusPendingEdit, StatusPendingDelete: StatusPendingDelete},
		OpEditDraft:     {StatusPending: StatusPending, StatusRejected: StatusRejected, StatusPendingEdit: StatusPendingEdit, StatusPendingDelete: StatusPendingDelete},
		OpProposeEdit:   {StatusApproved: StatusPendingEdit},
		OpRequestDelete: {StatusApproved: StatusPendingDelete},
		OpApprove:       {StatusPending: StatusApproved, StatusApproved: StatusApproved, StatusRejected: StatusApproved, StatusPendingEdit: StatusApproved, StatusPendingDelete: StatusApproved},
		OpApproveEdit:   {StatusPendingEdit: StatusApproved},
		OpReject:        {StatusPending: StatusRejected, StatusApproved: StatusRejected, StatusRejected: StatusRejected, StatusPendingEdit: StatusApproved, StatusPendingDelete: StatusRejected},
		OpRejectDelete:  {StatusPendingDelete: StatusApproved},
	}
	removing := map[Operation]map[EventStatus]bool{
		OpForceDelete:   {StatusPending: true, StatusApproved: true, StatusRejected: true, StatusPendingEdit: true, StatusPendingDelete: true},
		OpDeleteDraft:   {StatusPending: true, StatusRejected: true, StatusPendingEdit: true, StatusPendingDelete: true},
		OpApproveDelete: {StatusPendingDelete: true},
	}

	for _, op := range allOperations {
		for _, from := range allStatuses {
			t.Run(string(op)+"/"+string(from), func(t *testing.T) {
				in := TransitionInput{Actor: testSuper, Now: testNow, Patch: EventPatch{Title: ptr("Changed")}}
				before := eventIn(from)
				snapshot := before.Clone()

				got, tr, err := Apply(before, op, in)
				assert.Equal(t, snapshot, before, "input event must not be modified")

				if removing[op][from] {
					require.NoError(t, err)
					assert.True(t, tr.Remove)
					return
				}
				want, ok := legal[op][from]
				if !ok {
					require.ErrorIs(t, err, ErrConflict)
					assert.Nil(t, got)
					return
				}
				require.NoError(t, err)
				assert.False(t, tr.Remove)
				assert.Equal(t, from, tr.From)
				assert.Equal(t, want, got.Status)
				assert.NoError(t, CheckInvariants(got))
				assert.Equal(t, testOwner.ID, got.CreatedBy)
			})
		}
	}
}

func TestApply_Create(t *testing.T) {
	fields := liveFields()
	fields.Tags = nil

	submitted, tr, err := Apply(nil, OpSubmit, TransitionInput{Actor: testOwner, Now: testNow, Fields: fields})
	require.NoError(t, err)
	assert.Equal(t, statusNone, tr.From)
	assert.Equal(t, StatusPending, submitted.Status)
	assert.Equal(t, testOwner.ID, submitted.CreatedBy)
	assert.Equal(t, testNow, submitted.CreatedAt)
	assert.Equal(t, []string{}, submitted.Tags)
	assert.Nil(t, submitted.ApprovedBy)
	assert.NoError(t, CheckInvariants(submitted))

	published, _, err := Apply(nil, OpPublish, TransitionInput{Actor: testSuper, Now: testNow, Fields: liveFields()})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, published.Status)
	require.NotNil(t, published.ApprovedBy)
	assert.Equal(t, testSuper.ID, *published.ApprovedBy)
	assert.Equal(t, testNow, *published.ApprovedAt)

	_, _, err = Apply(nil, OpApprove, TransitionInput{Actor: testSuper, Now: testNow})
	assert.ErrorIs(t, err, ErrConflict)
	_, _, err = Apply(eventIn(StatusPending), OpSubmit, TransitionInput{Actor: testOwner, Now: testNow})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApply_ProposeEditLeavesLiveFields(t *testing.T) {
	e := eventIn(StatusApproved)
	got, _, err := Apply(e, OpProposeEdit, TransitionInput{Actor: testOwner, Now: testNow, Patch: EventPatch{Title: ptr("New")}})
	require.NoError(t, err)
	assert.Equal(t, e.EventFields, got.EventFields)
	require.NotNil(t, got.PendingChanges)
	want := liveFields()
	want.Title = "New"
	assert.Equal(t, want, *got.PendingChanges)
	assert.Equal(t, testNow, got.UpdatedAt)
}

func TestApply_ApprovePromotesPendingChanges(t *testing.T) {
	for _, op := range []Operation{OpApprove, OpApproveEdit} {
		t.Run(string(op), func(t *testing.T) {
			e := eventIn(StatusPendingEdit)
			got, _, err := Apply(e, op, TransitionInput{Actor: testSuper, Now: testNow})
			require.NoError(t, err)
			assert.Equal(t, *e.PendingChanges, got.EventFields)
			assert.Nil(t, got.PendingChanges)
			assert.Equal(t, testNow, *got.ApprovedAt)
		})
	}
}

func TestApply_EditThenRejectIsIdentityOnLiveFields(t *testing.T) {
	start := eventIn(StatusApproved)
	edited, _, err := Apply(start, OpProposeEdit, TransitionInput{Actor: testOwner, Now: testNow, Patch: EventPatch{
		Title: ptr("Other"), Tags: &[]string{"a", "b"}, Location: ptr("Elsewhere"),
	}})
	require.NoError(t, err)

	rejected, _, err := Apply(edited, OpReject, TransitionInput{Actor: testSuper, Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, rejected.Status)
	assert.Equal(t, start.EventFields, rejected.EventFields)
	assert.Equal(t, start.ApprovedBy, rejected.ApprovedBy)
	assert.Nil(t, rejected.RejectedBy)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "Changes rejected", *rejected.RejectionReason)
}

func TestApply_RejectDefaultsAndClearsApproval(t *testing.T) {
	got, _, err := Apply(eventIn(StatusApproved), OpReject, TransitionInput{Actor: testSuper, Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, "No reason provided", *got.RejectionReason)
	assert.Nil(t, got.ApprovedBy)
	assert.Nil(t, got.ApprovedAt)
	assert.Equal(t, testSuper.ID, *got.RejectedBy)

	got, _, err = Apply(eventIn(StatusPending), OpReject, TransitionInput{Actor: testSuper, Now: testNow, Reason: "too vague"})
	require.NoError(t, err)
	assert.Equal(t, "too vague", *got.RejectionReason)
}

func TestApply_ApproveClearsRejection(t *testing.T) {
	got, _, err := Apply(eventIn(StatusRejected), OpApprove, TransitionInput{Actor: testSuper, Now: testNow})
	require.NoError(t, err)
	assert.Nil(t, got.RejectedBy)
	assert.Nil(t, got.RejectedAt)
	assert.Nil(t, got.RejectionReason)
	assert.Equal(t, testSuper.ID, *got.ApprovedBy)
}

func TestApply_EditDraftKeepsReviewState(t *testing.T) {
	in := TransitionInput{Actor: testOwner, Now: testNow, Patch: EventPatch{Location: ptr("Arena")}}

	got, _, err := Apply(eventIn(StatusPendingEdit), OpEditDraft, in)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingEdit, got.Status)
	assert.Equal(t, "Arena", got.Location)
	require.NotNil(t, got.PendingChanges)
	assert.Equal(t, "Derby II", got.PendingChanges.Title)
	assert.Equal(t, "Stadium", got.PendingChanges.Location)
	assert.Equal(t, testNow, got.UpdatedAt)

	got, _, err = Apply(eventIn(StatusPendingDelete), OpEditDraft, in)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingDelete, got.Status)
	assert.Equal(t, "Arena", got.Location)
	assert.Equal(t, testOwner.ID, *got.DeleteRequestedBy)
	assert.NoError(t, CheckInvariants(got))
}

func TestApply_RequestDelete(t *testing.T) {
	got, _, err := Apply(eventIn(StatusApproved), OpRequestDelete, TransitionInput{Actor: testOwner, Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, StatusPendingDelete, got.Status)
	assert.Equal(t, testOwner.ID, *got.DeleteRequestedBy)
	assert.Equal(t, testNow, *got.DeleteRequestedAt)
}

func TestResolveOperations(t *testing.T) {
	for _, status := range allStatuses {
		e := eventIn(status)
		assert.Equal(t, OpOverrideEdit, UpdateOperation(testSuper, e))
		assert.Equal(t, OpForceDelete, DeleteOperation(testSuper, e))
	}
	assert.Equal(t, OpPublish, CreateOperation(testSuper))
	assert.Equal(t, OpSubmit, CreateOperation(testOwner))

	assert.Equal(t, OpEditDraft, UpdateOperation(testOwner, eventIn(StatusPending)))
	assert.Equal(t, OpEditDraft, UpdateOperation(testOwner, eventIn(StatusRejected)))
	assert.Equal(t, OpProposeEdit, UpdateOperation(testOwner, eventIn(StatusApproved)))
	assert.Equal(t, OpEditDraft, UpdateOperation(testOwner, eventIn(StatusPendingEdit)))
	assert.Equal(t, OpEditDraft, UpdateOperation(testOwner, eventIn(StatusPendingDelete)))

	assert.Equal(t, OpRequestDelete, DeleteOperation(testOwner, eventIn(StatusApproved)))
	for _, status := range []EventStatus{StatusPending, StatusRejected, StatusPendingEdit, StatusPendingDelete} {
		assert.Equal(t, OpDeleteDraft, DeleteOperation(testOwner, eventIn(status)), status)
	}
}

func TestCheckInvariants(t *testing.T) {
	staged := liveFields()
	who := "x"
	tests := []struct {
		name    string
		mutate  func(e *Event)
		wantErr bool
	}{
		{name: "consistent", mutate: func(e *Event) {}},
		{name: "unknown status", mutate: func(e *Event) { e.Status = "archived" }, wantErr: true},
		{name: "pending changes outside pending_edit", mutate: func(e *Event) { e.PendingChanges = &staged }, wantErr: true},
		{name: "delete request outside pending_delete", mutate: func(e *Event) { e.DeleteRequestedBy = &who }, wantErr: true},
		{name: "approved and rejected", mutate: func(e *Event) { e.RejectedBy = &who }, wantErr: true},
		{name: "no creator", mutate: func(e *Event) { e.CreatedBy = "" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := eventIn(StatusApproved)
			tt.mutate(e)
			err := CheckInvariants(e)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventClone_IsDeep(t *testing.T) {
	e := eventIn(StatusPendingEdit)
	c := e.Clone()
	c.Tags[0] = "changed"
	c.PendingChanges.Title = "changed"
	*c.ApprovedBy = "changed"

	assert.Equal(t, "football", e.Tags[0])
	assert.Equal(t, "Derby II", e.PendingChanges.Title)
	assert.Equal(t, testSuper.ID, *e.ApprovedBy)
}

func ptr(s string) *string { return &s }
