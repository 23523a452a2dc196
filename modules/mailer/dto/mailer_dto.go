package dto

// WelcomeEmailPayload carries the approval email: the rotated credential
// is only ever in flight here and inside the SMTP message, never at rest.
type WelcomeEmailPayload struct {
	To         string `json:"to"`
	Name       string `json:"name"`
	LoginEmail string `json:"login_email"`
	Credential string `json:"credential"`
}

type ConnectionRequestEmailPayload struct {
	To         string `json:"to"`
	TargetName string `json:"target_name"`
	SourceName string `json:"source_name"`
	Note       string `json:"note"`
}
