package models

// ModelError is the body of every failed request.
type ModelError struct {
	Description string `json:"description"`
	// Code repeats the http status of the response
	Code int `json:"code,omitempty"`
}
