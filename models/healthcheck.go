package models

// HealthCheckResponse is the body served by the health endpoint
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
