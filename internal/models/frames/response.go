package frames

type Info struct {
	Source string `json:"source,omitempty"`
	Count  int    `json:"count"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
