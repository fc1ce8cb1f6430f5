package domain

// Session is the resolved caller identity: a role plus the subject ID for
// that role (user ID, technician ID, or the literal "admin"). It is produced
// by the auth layer from the session cookie and consumed by the service
// layer for every role-gated operation. A nil *Session means anonymous.
type Session struct {
	Role Role   `json:"role"`
	ID   string `json:"id"`
}
