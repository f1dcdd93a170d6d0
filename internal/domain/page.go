package domain

// Page is an offset/limit window produced from the page query.
type Page struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
