package models

// uniform error payload
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// response structure for question listings
type QuestionsResponse struct {
	Total int        `json:"total"`
	Items []Question `json:"items"`
}

// response structure for topic listings
type TopicsResponse struct {
	Goal   Goal    `json:"goal"`
	Topics []Topic `json:"topics"`
}
