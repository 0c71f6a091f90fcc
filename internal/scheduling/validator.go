package scheduling

import (
	"context"
	"fmt"
)

// Reader is the read-only data access the validator consults. Implementations
// must return plain query errors for infrastructure failures; the validator
// propagates those as errors rather than violations.
type Reader interface {
	Session(ctx context.Context, sessionID string) (SessionRecord, error)
	Presentation(ctx context.Context, presentationID string) (PresentationRecord, error)
	SessionsInVenue(ctx context.Context, venueID string) ([]SessionRecord, error)
	PresentationsInSession(ctx context.Context, sessionID string) ([]PresentationRecord, error)
	CommitmentsForParticipant(ctx context.Context, participantID, eventID string) ([]Commitment, error)
}

// SessionRecord is the validator's view of a stored program session.
type SessionRecord struct {
	ID           string
	EventID      string
	VenueID      string
	Type         SessionType
	Interval     Interval
	IsBreak      bool
	ModeratorIDs []string
}

// PresentationRecord is the validator's view of a stored presentation. A nil
// Interval means the presentation inherits its parent session's time.
type PresentationRecord struct {
	ID              string
	SessionID       string
	Interval        *Interval
	DurationMinutes int
	SpeakerIDs      []string
}

// SessionMutation proposes creating, moving, or resizing a session. An empty
// SessionID means create; otherwise the named session is excluded from its
// own conflict checks.
type SessionMutation struct {
	SessionID    string
	EventID      string
	VenueID      string
	Type         SessionType
	StartMinutes int
	EndMinutes   int
	ModeratorIDs []string
}

// PresentationMutation proposes creating or moving a presentation. Start and
// End are optional as a pair; a presentation without them inherits the
// session interval and is exempt from sibling conflict checks.
type PresentationMutation struct {
	PresentationID  string
	EventID         string
	SessionID       string
	StartMinutes    *int
	EndMinutes      *int
	DurationMinutes int
	SpeakerIDs      []string
}

// ReorderItemKind discriminates bulk reorder entries.
type ReorderItemKind string

const (
	ReorderSession      ReorderItemKind = "session"
	ReorderPresentation ReorderItemKind = "presentation"
)

// ReorderItem is one entry of a bulk drag-and-drop batch. Unset optional
// fields keep the entity's stored value.
type ReorderItem struct {
	Kind         ReorderItemKind
	EntityID     string
	VenueID      string
	SessionID    string
	StartMinutes *int
	EndMinutes   *int
	SortOrder    *int
}

// Validator runs the full validation pass for proposed program mutations. It
// holds no mutable state and is safe for concurrent use; the surrounding
// transaction discipline is the caller's responsibility.
type Validator struct {
	reader   Reader
	policies PolicyTable
}

// NewValidator wires a validator over the given reader. A nil policy table
// selects the defaults.
func NewValidator(reader Reader, policies PolicyTable) *Validator {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &Validator{reader: reader, policies: policies}
}

// ValidateSession checks a proposed session create, move, or resize.
func (v *Validator) ValidateSession(ctx context.Context, mutation SessionMutation) (Result, error) {
	if v == nil || v.reader == nil {
		return Result{}, fmt.Errorf("scheduling: validator not configured")
	}
	return v.validateSession(ctx, mutation, nil)
}

// ValidatePresentation checks a proposed presentation create, move, or
// retiming within its session.
func (v *Validator) ValidatePresentation(ctx context.Context, mutation PresentationMutation) (Result, error) {
	if v == nil || v.reader == nil {
		return Result{}, fmt.Errorf("scheduling: validator not configured")
	}
	return v.validatePresentation(ctx, mutation, nil)
}

// ValidateBatch checks a bulk reorder. Every item is validated against the
// stored state with all batch items overlaid, so a batch that swaps two
// slots validates against the post-batch picture rather than tripping over
// the superseded stored rows. Items are reported in caller order; any
// violation in any item rejects the whole batch and the caller must commit
// all items or none.
func (v *Validator) ValidateBatch(ctx context.Context, items []ReorderItem) (Result, error) {
	if v == nil || v.reader == nil {
		return Result{}, fmt.Errorf("scheduling: validator not configured")
	}

	result := Result{}
	overlay := newBatchOverlay()

	type resolvedItem struct {
		kind         ReorderItemKind
		session      SessionMutation
		presentation PresentationMutation
	}

	resolved := make([]resolvedItem, 0, len(items))
	for index, item := range items {
		if item.SortOrder != nil && !ValidExplicitOrder(*item.SortOrder) {
			result.add(Violation{
				EntityID: item.EntityID,
				Code:     CodeInvalidSortOrder,
				Message:  fmt.Sprintf("sort order %d must be a non-negative integer", *item.SortOrder),
			})
		}

		switch item.Kind {
		case ReorderSession:
			mutation, err := v.sessionMutationForItem(ctx, item)
			if err != nil {
				return Result{}, fmt.Errorf("scheduling: batch item %d: %w", index, err)
			}
			overlay.applySession(mutation)
			resolved = append(resolved, resolvedItem{kind: ReorderSession, session: mutation})
		case ReorderPresentation:
			mutation, err := v.presentationMutationForItem(ctx, item)
			if err != nil {
				return Result{}, fmt.Errorf("scheduling: batch item %d: %w", index, err)
			}
			overlay.applyPresentation(mutation)
			resolved = append(resolved, resolvedItem{kind: ReorderPresentation, presentation: mutation})
		default:
			result.add(Violation{
				EntityID: item.EntityID,
				Code:     CodeInvalidSortOrder,
				Message:  fmt.Sprintf("unknown reorder item kind %q", item.Kind),
			})
		}
	}

	for index, entry := range resolved {
		switch entry.kind {
		case ReorderSession:
			itemResult, err := v.validateSession(ctx, entry.session, overlay)
			if err != nil {
				return Result{}, fmt.Errorf("scheduling: batch item %d: %w", index, err)
			}
			result.add(itemResult.Violations...)
		case ReorderPresentation:
			itemResult, err := v.validatePresentation(ctx, entry.presentation, overlay)
			if err != nil {
				return Result{}, fmt.Errorf("scheduling: batch item %d: %w", index, err)
			}
			result.add(itemResult.Violations...)
		}
	}

	return result, nil
}

func (v *Validator) validateSession(ctx context.Context, mutation SessionMutation, overlay *batchOverlay) (Result, error) {
	result := Result{}

	candidate, err := NewInterval(mutation.StartMinutes, mutation.EndMinutes)
	if err != nil {
		result.add(Violation{
			EntityID: mutation.SessionID,
			Code:     CodeInvalidInterval,
			Message:  fmt.Sprintf("invalid session interval [%s, %s)", FormatClock(mutation.StartMinutes), FormatClock(mutation.EndMinutes)),
		})
		return result, nil
	}

	policy := v.policies.For(mutation.Type)
	if ok, reason := policy.SessionDurationBounds(candidate.DurationMinutes()); !ok {
		result.add(Violation{EntityID: mutation.SessionID, Code: CodeInvalidInterval, Message: reason})
	}

	siblings, err := v.venueSlots(ctx, mutation.VenueID, overlay)
	if err != nil {
		return Result{}, err
	}
	for _, conflictID := range FindConflicts(candidate, siblings, mutation.SessionID, 0) {
		result.add(Violation{
			EntityID:      mutation.SessionID,
			Code:          CodeVenueTimeConflict,
			Message:       fmt.Sprintf("session %s overlaps session %s in the same venue", candidate, conflictID),
			ConflictsWith: conflictID,
		})
	}

	// Resizes and moves must not orphan existing child presentations.
	if mutation.SessionID != "" {
		if err := v.checkChildrenFit(ctx, mutation.SessionID, candidate, policy, overlay, &result); err != nil {
			return Result{}, err
		}
	}

	for _, moderatorID := range mutation.ModeratorIDs {
		if err := v.checkAvailability(ctx, moderatorID, mutation.EventID, candidate, mutation.SessionID, &result); err != nil {
			return Result{}, err
		}
	}

	return result, nil
}

func (v *Validator) validatePresentation(ctx context.Context, mutation PresentationMutation, overlay *batchOverlay) (Result, error) {
	result := Result{}

	parent, err := v.reader.Session(ctx, mutation.SessionID)
	if err != nil {
		return Result{}, fmt.Errorf("scheduling: load parent session %s: %w", mutation.SessionID, err)
	}

	timed := mutation.StartMinutes != nil || mutation.EndMinutes != nil
	if timed && (mutation.StartMinutes == nil || mutation.EndMinutes == nil) {
		result.add(Violation{
			EntityID: mutation.PresentationID,
			Code:     CodeInvalidInterval,
			Message:  "presentation start and end times must be supplied together",
		})
		return result, nil
	}

	var explicit *Interval
	if timed {
		interval, err := NewInterval(*mutation.StartMinutes, *mutation.EndMinutes)
		if err != nil {
			result.add(Violation{
				EntityID: mutation.PresentationID,
				Code:     CodeInvalidInterval,
				Message:  fmt.Sprintf("invalid presentation interval [%s, %s)", FormatClock(*mutation.StartMinutes), FormatClock(*mutation.EndMinutes)),
			})
			return result, nil
		}
		explicit = &interval

		if !parent.Interval.Contains(interval) {
			result.add(Violation{
				EntityID: mutation.PresentationID,
				Code:     CodeOutOfBounds,
				Message:  fmt.Sprintf("presentation %s is not contained in session %s", interval, parent.Interval),
			})
		}
	}

	siblings, err := v.sessionPresentations(ctx, mutation.SessionID, overlay)
	if err != nil {
		return Result{}, err
	}

	if explicit != nil {
		var slots []Slot
		for _, sibling := range siblings {
			if sibling.Interval == nil {
				continue
			}
			slots = append(slots, Slot{ID: sibling.ID, Interval: *sibling.Interval})
		}
		for _, conflictID := range FindConflicts(*explicit, slots, mutation.PresentationID, PresentationBufferMinutes) {
			result.add(Violation{
				EntityID:      mutation.PresentationID,
				Code:          CodePresentationTimeConflict,
				Message:       fmt.Sprintf("presentation %s is within %d minutes of presentation %s", *explicit, PresentationBufferMinutes, conflictID),
				ConflictsWith: conflictID,
			})
		}
	}

	duration := mutation.DurationMinutes
	if duration <= 0 && explicit != nil {
		duration = explicit.DurationMinutes()
	}

	count := 0
	aggregate := 0
	for _, sibling := range siblings {
		if sibling.ID == mutation.PresentationID {
			continue
		}
		count++
		aggregate += sibling.DurationMinutes
	}

	policy := v.policies.For(parent.Type)
	capacityViolations := policy.Evaluate(CapacityCheck{
		CurrentPresentationCount: count,
		CurrentAggregateMinutes:  aggregate,
		SessionDurationMinutes:   parent.Interval.DurationMinutes(),
		ProposedDurationMinutes:  duration,
	})
	for _, violation := range capacityViolations {
		violation.EntityID = mutation.PresentationID
		result.add(violation)
	}

	availabilityInterval := parent.Interval
	if explicit != nil {
		availabilityInterval = *explicit
	}
	for _, speakerID := range mutation.SpeakerIDs {
		if err := v.checkAvailability(ctx, speakerID, mutation.EventID, availabilityInterval, mutation.PresentationID, &result); err != nil {
			return Result{}, err
		}
	}

	return result, nil
}

func (v *Validator) checkChildrenFit(ctx context.Context, sessionID string, candidate Interval, policy CapacityPolicy, overlay *batchOverlay, result *Result) error {
	children, err := v.sessionPresentations(ctx, sessionID, overlay)
	if err != nil {
		return err
	}

	aggregate := 0
	for _, child := range children {
		aggregate += child.DurationMinutes
		if child.Interval != nil && !candidate.Contains(*child.Interval) {
			result.add(Violation{
				EntityID:      sessionID,
				Code:          CodeOutOfBounds,
				Message:       fmt.Sprintf("session %s would no longer contain presentation %s (%s)", candidate, child.ID, *child.Interval),
				ConflictsWith: child.ID,
			})
		}
	}

	if len(children) > policy.MaxPresentations {
		result.add(Violation{
			EntityID: sessionID,
			Code:     CodeCapacityExceeded,
			Message:  fmt.Sprintf("session holds %d presentations but its type allows at most %d", len(children), policy.MaxPresentations),
		})
	}

	if budget := policy.DurationBudgetMinutes(candidate.DurationMinutes()); aggregate > budget {
		result.add(Violation{
			EntityID: sessionID,
			Code:     CodeDurationBudgetExceeded,
			Message:  fmt.Sprintf("existing presentations total %d min, above the %d min budget for a %d min session", aggregate, budget, candidate.DurationMinutes()),
		})
	}

	return nil
}

func (v *Validator) checkAvailability(ctx context.Context, participantID, eventID string, candidate Interval, excludeID string, result *Result) error {
	commitments, err := v.reader.CommitmentsForParticipant(ctx, participantID, eventID)
	if err != nil {
		return fmt.Errorf("scheduling: load commitments for participant %s: %w", participantID, err)
	}
	for _, conflict := range FindUnavailable(candidate, commitments, excludeID) {
		result.add(Violation{
			EntityID:      excludeID,
			Code:          CodeParticipantDoubleBooking,
			Message:       fmt.Sprintf("participant %s is already booked %s as %s (%s %s)", participantID, conflict.Interval, conflict.Role, conflict.Source, conflict.ID),
			ConflictsWith: conflict.ID,
			Role:          conflict.Role,
			ParticipantID: participantID,
		})
	}
	return nil
}

// venueSlots lists the occupied intervals of a venue, with batch overlay
// overrides applied: sessions the batch moved away disappear from their old
// venue, sessions it moved in appear with their new times.
func (v *Validator) venueSlots(ctx context.Context, venueID string, overlay *batchOverlay) ([]Slot, error) {
	stored, err := v.reader.SessionsInVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list sessions in venue %s: %w", venueID, err)
	}

	var slots []Slot
	for _, session := range stored {
		if overlay.hasSession(session.ID) {
			continue
		}
		slots = append(slots, Slot{ID: session.ID, Interval: session.Interval})
	}
	if overlay != nil {
		for _, session := range overlay.sessionsInVenue(venueID) {
			slots = append(slots, session)
		}
	}
	return slots, nil
}

func (v *Validator) sessionPresentations(ctx context.Context, sessionID string, overlay *batchOverlay) ([]PresentationRecord, error) {
	stored, err := v.reader.PresentationsInSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list presentations in session %s: %w", sessionID, err)
	}

	var records []PresentationRecord
	for _, record := range stored {
		if overlay.hasPresentation(record.ID) {
			continue
		}
		records = append(records, record)
	}
	if overlay != nil {
		records = append(records, overlay.presentationsInSession(sessionID)...)
	}
	return records, nil
}

func (v *Validator) sessionMutationForItem(ctx context.Context, item ReorderItem) (SessionMutation, error) {
	current, err := v.reader.Session(ctx, item.EntityID)
	if err != nil {
		return SessionMutation{}, fmt.Errorf("load session %s: %w", item.EntityID, err)
	}

	mutation := SessionMutation{
		SessionID:    current.ID,
		EventID:      current.EventID,
		VenueID:      current.VenueID,
		Type:         current.Type,
		StartMinutes: current.Interval.Start,
		EndMinutes:   current.Interval.End,
		ModeratorIDs: current.ModeratorIDs,
	}
	if item.VenueID != "" {
		mutation.VenueID = item.VenueID
	}
	if item.StartMinutes != nil {
		mutation.StartMinutes = *item.StartMinutes
	}
	if item.EndMinutes != nil {
		mutation.EndMinutes = *item.EndMinutes
	}
	return mutation, nil
}

func (v *Validator) presentationMutationForItem(ctx context.Context, item ReorderItem) (PresentationMutation, error) {
	current, err := v.reader.Presentation(ctx, item.EntityID)
	if err != nil {
		return PresentationMutation{}, fmt.Errorf("load presentation %s: %w", item.EntityID, err)
	}

	parentID := current.SessionID
	if item.SessionID != "" {
		parentID = item.SessionID
	}

	parent, err := v.reader.Session(ctx, parentID)
	if err != nil {
		return PresentationMutation{}, fmt.Errorf("load session %s: %w", parentID, err)
	}

	mutation := PresentationMutation{
		PresentationID:  current.ID,
		EventID:         parent.EventID,
		SessionID:       parentID,
		DurationMinutes: current.DurationMinutes,
		SpeakerIDs:      current.SpeakerIDs,
	}
	if current.Interval != nil {
		start, end := current.Interval.Start, current.Interval.End
		mutation.StartMinutes = &start
		mutation.EndMinutes = &end
	}
	if item.StartMinutes != nil {
		mutation.StartMinutes = item.StartMinutes
	}
	if item.EndMinutes != nil {
		mutation.EndMinutes = item.EndMinutes
	}
	return mutation, nil
}

// batchOverlay tracks the intermediate occupancy produced by earlier batch
// items so later items validate against the post-batch picture.
type batchOverlay struct {
	sessions      map[string]SessionMutation
	presentations map[string]PresentationMutation
}

func newBatchOverlay() *batchOverlay {
	return &batchOverlay{
		sessions:      make(map[string]SessionMutation),
		presentations: make(map[string]PresentationMutation),
	}
}

func (o *batchOverlay) applySession(mutation SessionMutation) {
	if o == nil || mutation.SessionID == "" {
		return
	}
	o.sessions[mutation.SessionID] = mutation
}

func (o *batchOverlay) applyPresentation(mutation PresentationMutation) {
	if o == nil || mutation.PresentationID == "" {
		return
	}
	o.presentations[mutation.PresentationID] = mutation
}

func (o *batchOverlay) hasSession(id string) bool {
	if o == nil {
		return false
	}
	_, ok := o.sessions[id]
	return ok
}

func (o *batchOverlay) hasPresentation(id string) bool {
	if o == nil {
		return false
	}
	_, ok := o.presentations[id]
	return ok
}

func (o *batchOverlay) sessionsInVenue(venueID string) []Slot {
	if o == nil {
		return nil
	}
	var slots []Slot
	for _, mutation := range o.sessions {
		if mutation.VenueID != venueID {
			continue
		}
		interval, err := NewInterval(mutation.StartMinutes, mutation.EndMinutes)
		if err != nil {
			continue
		}
		slots = append(slots, Slot{ID: mutation.SessionID, Interval: interval})
	}
	return slots
}

func (o *batchOverlay) presentationsInSession(sessionID string) []PresentationRecord {
	if o == nil {
		return nil
	}
	var records []PresentationRecord
	for _, mutation := range o.presentations {
		if mutation.SessionID != sessionID {
			continue
		}
		record := PresentationRecord{
			ID:              mutation.PresentationID,
			SessionID:       mutation.SessionID,
			DurationMinutes: mutation.DurationMinutes,
			SpeakerIDs:      mutation.SpeakerIDs,
		}
		if mutation.StartMinutes != nil && mutation.EndMinutes != nil {
			if interval, err := NewInterval(*mutation.StartMinutes, *mutation.EndMinutes); err == nil {
				record.Interval = &interval
			}
		}
		records = append(records, record)
	}
	return records
}
