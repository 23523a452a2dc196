package dto

import "time"

type RequestConnectionRequest struct {
	// SourceEmail is ignored when the caller is authenticated; the token
	// identity wins. For guest requests it stays empty and SourceName /
	// SourcePhone identify the requester.
	SourceEmail string `json:"source_email"`
	TargetEmail string `json:"target_email"`
	SourceName  string `json:"source_name"`
	SourcePhone string `json:"source_phone"`
	Note        string `json:"note"`
}

type RespondRequest struct {
	// SourceEmail identifies the original requester. The responder is
	// always the authenticated caller and must be the row's target.
	SourceEmail string `json:"source_email"`
	Decision    string `json:"decision"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// ConnectionItem is one ledger entry as seen by a particular user:
// annotated with direction and the resolved counterpart.
type ConnectionItem struct {
	ID               string     `json:"id"`
	Direction        Direction  `json:"direction"`
	CounterpartEmail string     `json:"counterpart_email"`
	CounterpartName  string     `json:"counterpart_name"`
	Note             string     `json:"note"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
}

type ListConnectionsResponse struct {
	Connections []ConnectionItem `json:"connections"`
	Total       int              `json:"total"`
}

type CountResponse struct {
	Count int `json:"count"`
}
