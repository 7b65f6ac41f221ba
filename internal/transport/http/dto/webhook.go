package dto

// WebhookResult is the terminal outcome of one dispatcher invocation: the
// HTTP status plus the JSON body the transport should answer with. A nil
// Body means "no content" (the 204 acknowledgment case).
type WebhookResult struct {
	Status int
	Body   any
}

// WebhookAck is the machine-readable success body. ID/Title/Slug are only
// set on the post-created path.
type WebhookAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

// WebhookError carries enough detail for the automation platform to log or
// alert. DownstreamStatus is populated when the content store rejected a
// write.
type WebhookError struct {
	Success          bool     `json:"success"`
	Error            string   `json:"error"`
	Details          []string `json:"details,omitempty"`
	DownstreamStatus int      `json:"downstream_status,omitempty"`
}

type RevalidateRequest struct {
	Slug string `json:"slug,omitempty"`
}
