package domain

import (
	"fmt"
	"time"
)

// Operation is a concrete step of the event lifecycle. Requests coming from the
// API are resolved to an Operation by CreateOperation, UpdateOperation and
// DeleteOperation, then checked by Authorize and applied by Apply.
type Operation string

const (
	OpSubmit        Operation = "submit"
	OpPublish       Operation = "publish"
	OpOverrideEdit  Operation = "override_edit"
	OpEditDraft     Operation = "edit_draft"
	OpProposeEdit   Operation = "propose_edit"
	OpForceDelete   Operation = "force_delete"
	OpDeleteDraft   Operation = "delete_draft"
	OpRequestDelete Operation = "request_delete"
	OpApprove       Operation = "approve"
	OpApproveEdit   Operation = "approve_edit"
	OpReject        Operation = "reject"
	OpApproveDelete Operation = "approve_delete"
	OpRejectDelete  Operation = "reject_delete"
)

type access int

const (
	accessSubmitter access = iota + 1
	accessOwner
	accessModerator
)

func (op Operation) access() access {
	switch op {
	case OpSubmit:
		return accessSubmitter
	case OpEditDraft, OpProposeEdit, OpDeleteDraft, OpRequestDelete:
		return accessOwner
	case OpPublish, OpOverrideEdit, OpForceDelete, OpApprove, OpApproveEdit, OpReject, OpApproveDelete, OpRejectDelete:
		return accessModerator
	}
	return 0
}

// CreateOperation picks the creation step for the actor's role.
func CreateOperation(actor Actor) Operation {
	if actor.Role.Can(CapModerate) {
		return OpPublish
	}
	return OpSubmit
}

// UpdateOperation picks the edit step for the actor and the event's current status.
// Only a published event needs review; any other status is edited in place.
func UpdateOperation(actor Actor, e *Event) Operation {
	if actor.Role.Can(CapModerate) {
		return OpOverrideEdit
	}
	if e.Status == StatusApproved {
		return OpProposeEdit
	}
	return OpEditDraft
}

// DeleteOperation picks the delete step for the actor and the event's current status.
func DeleteOperation(actor Actor, e *Event) Operation {
	if actor.Role.Can(CapModerate) {
		return OpForceDelete
	}
	if e.Status == StatusApproved {
		return OpRequestDelete
	}
	return OpDeleteDraft
}

// TransitionInput carries what the effects of a transition may need.
type TransitionInput struct {
	Actor  Actor
	Now    time.Time
	Fields EventFields
	Patch  EventPatch
	Reason string
}

type effect func(e *Event, in TransitionInput)

// Transition is one row of the lifecycle table.
type Transition struct {
	From    EventStatus
	Op      Operation
	To      EventStatus
	Remove  bool
	effects []effect
}

const (
	statusNone EventStatus = ""
	anyStatus  EventStatus = "*"
)

type transitionKey struct {
	from EventStatus
	op   Operation
}

const (
	defaultEditRejectionReason = "Changes rejected"
	defaultRejectionReason     = "No reason provided"
)

// transitions is the full lifecycle table. A (status, operation) pair with no row,
// exact or wildcard, is not a legal move.
var transitions = buildTransitions([]Transition{
	{From: statusNone, Op: OpSubmit, To: StatusPending, effects: []effect{setFields, stampCreated}},
	{From: statusNone, Op: OpPublish, To: StatusApproved, effects: []effect{setFields, stampCreated, stampApproval}},

	{From: anyStatus, Op: OpOverrideEdit, effects: []effect{applyPatch, touch}},
	{From: StatusPending, Op: OpEditDraft, effects: []effect{applyPatch, touch}},
	{From: StatusRejected, Op: OpEditDraft, effects: []effect{applyPatch, touch}},
	{From: StatusPendingEdit, Op: OpEditDraft, effects: []effect{applyPatch, touch}},
	{From: StatusPendingDelete, Op: OpEditDraft, effects: []effect{applyPatch, touch}},
	{From: StatusApproved, Op: OpProposeEdit, To: StatusPendingEdit, effects: []effect{stagePatch, touch}},

	{From: anyStatus, Op: OpForceDelete, Remove: true},
	{From: StatusPending, Op: OpDeleteDraft, Remove: true},
	{From: StatusRejected, Op: OpDeleteDraft, Remove: true},
	{From: StatusPendingEdit, Op: OpDeleteDraft, Remove: true},
	{From: StatusPendingDelete, Op: OpDeleteDraft, Remove: true},
	{From: StatusApproved, Op: OpRequestDelete, To: StatusPendingDelete, effects: []effect{markDeleteRequested}},

	{From: anyStatus, Op: OpApprove, To: StatusApproved, effects: []effect{stampApproval, clearRejection, touch}},
	{From: StatusPendingEdit, Op: OpApprove, To: StatusApproved, effects: []effect{promotePending, stampApproval, clearRejection, touch}},
	{From: StatusPendingEdit, Op: OpApproveEdit, To: StatusApproved, effects: []effect{promotePending, stampApproval, clearRejection, touch}},
	{From: StatusPendingEdit, Op: OpReject, To: StatusApproved, effects: []effect{reason(defaultEditRejectionReason), touch}},
	{From: anyStatus, Op: OpReject, To: StatusRejected, effects: []effect{stampRejection, reason(defaultRejectionReason), clearApproval}},
	{From: StatusPendingDelete, Op: OpApproveDelete, Remove: true},
	{From: StatusPendingDelete, Op: OpRejectDelete, To: StatusApproved},
})

func buildTransitions(rows []Transition) map[transitionKey]Transition {
	m := make(map[transitionKey]Transition, len(rows))
	for _, t := range rows {
		k := transitionKey{t.From, t.Op}
		if _, dup := m[k]; dup {
			panic(fmt.Sprintf("duplicate transition %q/%q", t.From, t.Op))
		}
		m[k] = t
	}
	return m
}

// LookupTransition returns the row for (from, op), preferring an exact match
// over a wildcard one.
func LookupTransition(from EventStatus, op Operation) (Transition, bool) {
	if t, ok := transitions[transitionKey{from, op}]; ok {
		return t, true
	}
	if from == statusNone {
		return Transition{}, false
	}
	t, ok := transitions[transitionKey{anyStatus, op}]
	return t, ok
}

// Apply runs op against a copy of e and returns the resulting event and the
// transition used. e may be nil for creation operations. The input event is never
// modified. When the transition removes the record the returned event is the
// unchanged copy.
//
// Leaving pending_edit always drops PendingChanges and leaving pending_delete
// always drops the delete-request fields.
func Apply(e *Event, op Operation, in TransitionInput) (*Event, Transition, error) {
	from := statusNone
	next := &Event{}
	if e != nil {
		from = e.Status
		next = e.Clone()
	}
	t, ok := LookupTransition(from, op)
	if !ok {
		return nil, Transition{}, fmt.Errorf("%w: cannot %s an event in status %q", ErrConflict, op, from)
	}
	t.From = from
	if t.Remove {
		return next, t, nil
	}
	for _, fx := range t.effects {
		fx(next, in)
	}
	if t.To != "" {
		next.Status = t.To
	}
	if next.Status != StatusPendingEdit {
		next.PendingChanges = nil
	}
	if next.Status != StatusPendingDelete {
		next.DeleteRequestedBy = nil
		next.DeleteRequestedAt = nil
	}
	return next, t, nil
}

// CheckInvariants verifies the state-dependent fields of e.
func CheckInvariants(e *Event) error {
	if !e.Status.Valid() {
		return fmt.Errorf("unknown status %q", e.Status)
	}
	if (e.PendingChanges != nil) != (e.Status == StatusPendingEdit) {
		return fmt.Errorf("pending changes present=%t with status %q", e.PendingChanges != nil, e.Status)
	}
	hasDeleteRequest := e.DeleteRequestedBy != nil || e.DeleteRequestedAt != nil
	if hasDeleteRequest != (e.Status == StatusPendingDelete) {
		return fmt.Errorf("delete request present=%t with status %q", hasDeleteRequest, e.Status)
	}
	if e.ApprovedBy != nil && e.RejectedBy != nil {
		return fmt.Errorf("event is both approved and rejected")
	}
	if e.CreatedBy == "" {
		return fmt.Errorf("event has no creator")
	}
	return nil
}

func setFields(e *Event, in TransitionInput) {
	e.EventFields = in.Fields.Clone()
	if e.Tags == nil {
		e.Tags = []string{}
	}
}

func stampCreated(e *Event, in TransitionInput) {
	e.CreatedBy = in.Actor.ID
	e.CreatedAt = in.Now
	e.UpdatedAt = in.Now
}

func applyPatch(e *Event, in TransitionInput) {
	e.EventFields = in.Patch.ApplyTo(e.EventFields)
}

// stagePatch layers the patch over the live fields so the snapshot is always complete.
func stagePatch(e *Event, in TransitionInput) {
	staged := in.Patch.ApplyTo(e.EventFields)
	e.PendingChanges = &staged
}

func promotePending(e *Event, _ TransitionInput) {
	if e.PendingChanges != nil {
		e.EventFields = e.PendingChanges.Clone()
	}
}

func stampApproval(e *Event, in TransitionInput) {
	id, now := in.Actor.ID, in.Now
	e.ApprovedBy = &id
	e.ApprovedAt = &now
}

func clearApproval(e *Event, _ TransitionInput) {
	e.ApprovedBy = nil
	e.ApprovedAt = nil
}

func stampRejection(e *Event, in TransitionInput) {
	id, now := in.Actor.ID, in.Now
	e.RejectedBy = &id
	e.RejectedAt = &now
}

func clearRejection(e *Event, _ TransitionInput) {
	e.RejectedBy = nil
	e.RejectedAt = nil
	e.RejectionReason = nil
}

func reason(fallback string) effect {
	return func(e *Event, in TransitionInput) {
		r := in.Reason
		if r == "" {
			r = fallback
		}
		e.RejectionReason = &r
	}
}

func markDeleteRequested(e *Event, in TransitionInput) {
	id, now := in.Actor.ID, in.Now
	e.DeleteRequestedBy = &id
	e.DeleteRequestedAt = &now
}

func touch(e *Event, in TransitionInput) {
	e.UpdatedAt = in.Now
}
