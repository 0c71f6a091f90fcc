package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/scheduling"
)

// ConflictReportService re-validates an event's whole program and reports
// every violation currently present, including ones that predate the rules
// (imported programs, policy changes). Reports are cached per event until the
// TTL elapses or a program mutation invalidates them.
type ConflictReportService struct {
	events        persistence.EventRepository
	sessions      persistence.SessionRepository
	presentations persistence.PresentationRepository
	validator     *scheduling.Validator
	cache         *reportCache
	now           func() time.Time
	logger        *slog.Logger
}

// NewConflictReportService wires dependencies for program audits.
func NewConflictReportService(events persistence.EventRepository, sessions persistence.SessionRepository, presentations persistence.PresentationRepository, validator *scheduling.Validator, ttl time.Duration, now func() time.Time, logger *slog.Logger) *ConflictReportService {
	if now == nil {
		now = time.Now
	}
	return &ConflictReportService{
		events:        events,
		sessions:      sessions,
		presentations: presentations,
		validator:     validator,
		cache:         newReportCache(ttl, now),
		now:           now,
		logger:        logger,
	}
}

// AuditEvent validates every session and presentation of the event as it is
// stored and returns the aggregated violation list.
func (s *ConflictReportService) AuditEvent(ctx context.Context, eventID string) (ConflictReport, error) {
	if s == nil || s.sessions == nil || s.validator == nil {
		return ConflictReport{}, fmt.Errorf("conflict report service not configured")
	}
	logger := serviceLogger(ctx, s.logger, "conflict_report", "audit", "event_id", eventID)

	if _, err := s.events.GetEvent(ctx, eventID); err != nil {
		return ConflictReport{}, mapRepoError(err)
	}

	if report, ok := s.cache.Get(eventID); ok {
		return report, nil
	}

	sessions, err := s.sessions.ListSessionsForEvent(ctx, eventID)
	if err != nil {
		return ConflictReport{}, mapRepoError(err)
	}

	var violations []scheduling.Violation
	for _, session := range sessions {
		result, err := s.validator.ValidateSession(ctx, scheduling.SessionMutation{
			SessionID:    session.ID,
			EventID:      eventID,
			VenueID:      session.VenueID,
			Type:         auditSessionType(session),
			StartMinutes: session.StartMinutes,
			EndMinutes:   session.EndMinutes,
			ModeratorIDs: session.ModeratorIDs,
		})
		if err != nil {
			return ConflictReport{}, err
		}
		violations = append(violations, result.Violations...)

		presentations, err := s.presentations.ListPresentationsInSession(ctx, session.ID)
		if err != nil {
			return ConflictReport{}, mapRepoError(err)
		}
		for _, presentation := range presentations {
			result, err := s.validator.ValidatePresentation(ctx, scheduling.PresentationMutation{
				PresentationID:  presentation.ID,
				EventID:         eventID,
				SessionID:       session.ID,
				StartMinutes:    presentation.StartMinutes,
				EndMinutes:      presentation.EndMinutes,
				DurationMinutes: presentation.DurationMinutes,
				SpeakerIDs:      assignmentIDs(presentation.Speakers),
			})
			if err != nil {
				return ConflictReport{}, err
			}
			violations = append(violations, result.Violations...)
		}
	}

	report := ConflictReport{
		EventID:     eventID,
		GeneratedAt: s.now(),
		Violations:  violations,
	}
	s.cache.Store(eventID, report)

	logger.InfoContext(ctx, "audit completed", "violation_count", len(violations))
	return report, nil
}

// Invalidate drops every cached report. Program services call this after any
// successful mutation.
func (s *ConflictReportService) Invalidate() {
	if s != nil {
		s.cache.Invalidate()
	}
}

func auditSessionType(session persistence.ProgramSession) scheduling.SessionType {
	if session.IsBreak {
		return scheduling.SessionTypeBreak
	}
	return scheduling.SessionType(session.SessionType)
}

func assignmentIDs(speakers []persistence.SpeakerAssignment) []string {
	ids := make([]string, 0, len(speakers))
	for _, speaker := range speakers {
		ids = append(ids, speaker.ParticipantID)
	}
	return ids
}

// reportCache stores recently computed conflict reports to avoid re-running
// the full audit for identical queries while the program stays unchanged.
type reportCache struct {
	mu      sync.RWMutex
	now     func() time.Time
	ttl     time.Duration
	entries map[string]reportCacheEntry
}

type reportCacheEntry struct {
	report    ConflictReport
	expiresAt time.Time
}

func newReportCache(ttl time.Duration, now func() time.Time) *reportCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &reportCache{
		now:     now,
		ttl:     ttl,
		entries: make(map[string]reportCacheEntry),
	}
}

func (c *reportCache) Get(key string) (ConflictReport, bool) {
	if c == nil {
		return ConflictReport{}, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return ConflictReport{}, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return ConflictReport{}, false
	}
	return entry.report, true
}

func (c *reportCache) Store(key string, report ConflictReport) {
	if c == nil {
		return
	}
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	for existing, entry := range c.entries {
		if c.now().After(entry.expiresAt) {
			delete(c.entries, existing)
		}
	}
	c.entries[key] = reportCacheEntry{report: report, expiresAt: expiry}
}

func (c *reportCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]reportCacheEntry)
	c.mu.Unlock()
}
