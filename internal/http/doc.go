// Package http exposes the conference program API over echo.
//
// The router mounts everything under /api/v1:
//   - /events, /events/{id}: event CRUD. Events own ordered days; days own venues.
//   - /events/{id}/days, /days/{id}, /days/{id}/venues, /venues/{id}: program
//     structure endpoints exchanging the payloads defined in event_handler.go.
//   - /venues/{id}/sessions, /sessions/{id}: session endpoints. Session times are
//     HH:MM clock strings on the session's day; mutations run through schedule
//     validation and return 422 with the violation list when rejected.
//   - /sessions/{id}/presentations, /presentations/{id}: presentation endpoints.
//     Presentations may be untimed, inheriting the session interval.
//   - POST /program/reorder: bulk move/reorder of sessions and presentations.
//     The batch is validated as a whole and commits entirely or not at all.
//   - /events/{id}/conflicts: full-event conflict audit.
//   - /participants, /participants/{id}: participant CRUD.
//
// /healthz and /metrics sit outside the versioned group. Request/response DTOs
// live alongside their handlers.
package http
