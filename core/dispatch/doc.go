// Package dispatch implements the operator-facing dispatch workflow: the
// overview query that populates the forecast/prebooking/route views, and the
// assignment session that pairs drivers with routes and reconciles the
// per-pair outcome of a batch submission.
//
// Requests are issued as the operator acts; there is no de-duplication or
// cancellation, so overlapping fetches can resolve out of order and a
// late-arriving response may describe stale filters. Callers that care should
// discard results for filters they no longer display.
package dispatch
