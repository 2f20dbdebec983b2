package models

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// PropertyList is the payload cached for filtered property queries. It
// includes the pagination metadata so a cache hit skips the count query.
type PropertyList struct {
	Properties []PropertyDetail `json:"properties"`
	Pagination Pagination       `json:"pagination"`
}
