package models

// Requests for scan HTTP endpoints. Defined in domain for consistency and reuse.

type ScanRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
	Period string `query:"period" json:"period" default:"2y" validate:"oneof=6mo 1y 2y 5y max"`
}

type SituationsRequest struct {
	Ticker      string `query:"ticker" json:"ticker" validate:"required"`
	Period      string `query:"period" json:"period" default:"2y" validate:"oneof=6mo 1y 2y 5y max"`
	Significant bool   `query:"significant" json:"significant"`
	Limit       int    `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=200"`
}

type ReportsRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
	Limit  int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=100"`
}
