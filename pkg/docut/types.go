package docut

import (
	"encoding/json"
	"time"
)

// Link represents a shortened or tracked link.
type Link struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	// Expiration is nil when the link never expires.
	Expiration *time.Time `json:"expiration"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Clicks     int64      `json:"clicks"`
}

// Seo is the SEO metadata attached to a link.
type Seo struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	LinkID      string    `json:"linkId"`
}

// LinkWithSeo is a link together with its SEO entry, as returned by most link endpoints.
type LinkWithSeo struct {
	Link
	Seo Seo `json:"seo"`
}

// SeoInput carries optional SEO fields on create and update. Nil fields are
// omitted; ClearTitle and ClearDescription send an explicit null instead.
type SeoInput struct {
	Title            *string
	Description      *string
	ClearTitle       bool
	ClearDescription bool
}

// Empty reports whether the input would send no SEO field at all.
func (s SeoInput) Empty() bool {
	return s.Title == nil && s.Description == nil && !s.ClearTitle && !s.ClearDescription
}

// MarshalJSON writes the set fields and an explicit null for each cleared one.
func (s SeoInput) MarshalJSON() ([]byte, error) {
	body := map[string]any{}
	setNullable(body, "title", s.Title, s.ClearTitle)
	setNullable(body, "description", s.Description, s.ClearDescription)
	return json.Marshal(body)
}

// setNullable writes null when clear is set, the value when non-nil, and
// nothing otherwise.
func setNullable(body map[string]any, key string, v *string, clear bool) {
	switch {
	case clear:
		body[key] = nil
	case v != nil:
		body[key] = *v
	}
}

// APIError is the body of every non-2xx response.
type APIError struct {
	Message string `json:"message"`
}

func (e APIError) Error() string {
	if e.Message == "" {
		return "docut api error"
	}
	return e.Message
}
