package apiv1

// Pong is the ping endpoint response body
type Pong struct {
	Ping string `json:"ping"`
}

// AuditStatus is the audit status endpoint response body
type AuditStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Paid   bool   `json:"paid"`
}
