package models

// Requests for the HTTP API. Defined in domain for consistency and reuse.

type SnapshotRequest struct {
	Symbol string `param:"symbol" json:"symbol" validate:"required"`
}

type AlertsRequest struct {
	Limit int `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}
