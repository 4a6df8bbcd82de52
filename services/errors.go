package services

// ServiceError represents a domain rule violation or a missing record.
// Status carries the HTTP status code the API responds with.
type ServiceError struct {
	Code    string
	Message string
	Status  int
}

func (e *ServiceError) Error() string {
	return e.Message
}
