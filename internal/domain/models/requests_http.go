package models

// Requests for analytics HTTP endpoints. Defined in domain for consistency and reuse.

type HistoryRequest struct {
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=3650"`
	Sector string `query:"sector" json:"sector"`
}

type SectorSignalsRequest struct {
	Limit int `query:"limit" json:"limit" default:"0" validate:"gte=0,lte=100"`
}

type BackfillRequest struct {
	Days int `query:"days" json:"days" default:"14" validate:"gte=1,lte=90"`
}
