package sanity

import "fmt"

// APIError is returned for any non-2xx answer from the content store. It
// keeps the downstream status and description so the webhook response can
// surface them verbatim.
type APIError struct {
	StatusCode  int    `json:"status_code"`
	Description string `json:"description"`
	Body        string `json:"body,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sanity: %d %s", e.StatusCode, e.Description)
}

type errorEnvelope struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
}

type queryEnvelope struct {
	Result interface{} `json:"result"`
}

type mutateEnvelope struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

type assetEnvelope struct {
	Document struct {
		ID   string `json:"_id"`
		URL  string `json:"url"`
		Path string `json:"path"`
	} `json:"document"`
}

// Reference is a Sanity document reference.
type Reference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

func Ref(id string) Reference {
	return Reference{Type: "reference", Ref: id}
}

// KeyedReference is a reference used inside arrays, which Sanity requires
// to carry a unique _key per member.
type KeyedReference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
	Key  string `json:"_key"`
}

// Slug is the {_type: "slug", current: "..."} wrapper Sanity stores slugs in.
type Slug struct {
	Type    string `json:"_type"`
	Current string `json:"current"`
}

// Image is an image field pointing at an uploaded asset.
type Image struct {
	Type  string    `json:"_type"`
	Asset Reference `json:"asset"`
	Alt   string    `json:"alt,omitempty"`
}
