// Package http exposes the coffee-chat services as a JSON API.
//
// Every request identifies its device with the X-Device-ID header. Routes
// below /meetings additionally require a session on that device.
//
//   - POST /session {"name","linkedInUrl"}: creates the device session (409
//     when one exists). GET /session returns it, DELETE /session signs out.
//   - POST /meetings {"guestLinkedIn"}: hosts a new meeting. GET /meetings
//     lists the caller's meetings, most recently created first.
//   - GET /meetings/{code}: returns the meeting with an ETag; pollers send
//     If-None-Match and get 304 until the other participant acts.
//   - POST /meetings/{code}/join, PUT /meetings/{code}/availability
//     {"slots"}, PUT /meetings/{code}/likes {"venueIds"}: state transitions.
//   - GET /meetings/{code}/matches: alumni ranked by the caller's likes.
//   - GET /slots?date=YYYY-MM-DD: the seven day window and hour labels.
//   - GET /venues?lat=&lng=: the venue deck near a point, falling back to
//     the seed catalogue.
//   - POST /matches {"venueIds"}: alumni ranked by an arbitrary like list.
//
// Meeting responses carry agreedTimeLabel and agreedCafeDetail so clients
// do not have to resolve identifiers themselves.
package http
