package types

// SuccessEnvelope wraps every successful API payload under a "data" key so
// clients can unmarshal responses uniformly.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire shape of a failed request. Details is populated only
// for codes that allow exposing them (validation field errors, payment
// status).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
