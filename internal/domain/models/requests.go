package models

// StockRequest addresses one ticker with an optional chart period.
type StockRequest struct {
	Symbol string `param:"symbol" validate:"required,max=10"`
	Period string `query:"period" default:"1mo"`
}

// PredictRequest addresses one ticker with a forecast horizon.
type PredictRequest struct {
	Symbol string `param:"symbol" validate:"required,max=10"`
	Period string `query:"period" default:"1w"`
}

// SearchRequest carries the symbol search query.
type SearchRequest struct {
	Query string `query:"query"`
}
