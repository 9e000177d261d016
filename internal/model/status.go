package model

// RequestStatus is the closed set of lifecycle states shared by all request
// variants. Transitions are validated through CanTransition instead of string
// comparison at call sites.
type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCancelled RequestStatus = "CANCELLED"
	StatusFulfilled RequestStatus = "FULFILLED"
)

// requestTransitions is the exhaustive transition table. Anything not listed
// is terminal. APPROVED -> CANCELLED is used by vacation requests only
// (owner cancels a future-dated approved vacation) and APPROVED -> FULFILLED
// by supply requests only; the services enforce those variant restrictions.
var requestTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusFulfilled},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(s RequestStatus) bool {
	return len(requestTransitions[s]) == 0
}

// ValidStatus reports whether s is one of the known request statuses.
// Used to validate ?status= query filters before they reach the database.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusFulfilled:
		return true
	}
	return false
}
