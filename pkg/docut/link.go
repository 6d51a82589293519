package docut

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/docut-go/pkg/httpclient"
)

const (
	linkPath       = "/dashboard/link"
	publicLinkPath = "/link"
)

// ErrEmptyID is returned before any network call when an operation needs a link id.
var ErrEmptyID = errors.New("docut: link id is required")

// CreateLinkRequest is the payload for creating a link.
type CreateLinkRequest struct {
	URL string `json:"url"`
	// Expiration is omitted when nil, which means the link never expires.
	Expiration *time.Time `json:"expiration,omitempty"`
	Seo        *SeoInput  `json:"seo,omitempty"`
}

// GetLinkRequest identifies a link to read.
type GetLinkRequest struct {
	ID string `json:"id"`
}

// DeleteLinkRequest identifies a link to delete.
type DeleteLinkRequest struct {
	ID string `json:"id"`
}

// DeleteLinkResponse echoes the deleted link id.
type DeleteLinkResponse struct {
	ID string `json:"id"`
}

// GetPublicLinkRequest identifies a link to read through the unauthenticated endpoint.
type GetPublicLinkRequest struct {
	ID string `json:"id"`
}

// UpdateLinkRequest is the payload for updating a link. Unset fields are left
// untouched by the API; ClearExpiration sends an explicit null expiration.
type UpdateLinkRequest struct {
	ID              string
	URL             *string
	Expiration      *time.Time
	ClearExpiration bool
	Seo             *SeoInput
}

// MarshalJSON writes only the fields that were set, plus "expiration": null
// when ClearExpiration is requested.
func (r UpdateLinkRequest) MarshalJSON() ([]byte, error) {
	body := map[string]any{"id": r.ID}
	if r.URL != nil {
		body["url"] = *r.URL
	}
	switch {
	case r.ClearExpiration:
		body["expiration"] = nil
	case r.Expiration != nil:
		body["expiration"] = r.Expiration
	}
	if r.Seo != nil {
		body["seo"] = r.Seo
	}
	return json.Marshal(body)
}

// ListLinksRequest holds the optional list filters; zero values are not sent.
type ListLinksRequest struct {
	SortBy        string
	SortDirection string
	PerPage       int
	Page          int
	ID            string
}

// Sort directions accepted by ListLinksRequest.SortDirection.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

func (r ListLinksRequest) query() httpclient.Query {
	return httpclient.Query{}.
		Add("sort_by", nonZero(r.SortBy)).
		Add("sort_direction", nonZero(r.SortDirection)).
		Add("per_page", nonZero(r.PerPage)).
		Add("page", nonZero(r.Page)).
		Add("id", nonZero(r.ID))
}

// nonZero maps the zero value to nil so the query builder drops it.
func nonZero[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// PageMeta describes the page returned by List.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListLinksResponse is one page of links.
type ListLinksResponse struct {
	Data []LinkWithSeo `json:"data"`
	Meta *PageMeta     `json:"meta,omitempty"`
}

// LinkService exposes the link endpoints.
type LinkService struct {
	http *httpclient.Client
}

// NewLinkService binds the link endpoints to client.
func NewLinkService(client *httpclient.Client) *LinkService {
	return &LinkService{http: client}
}

// Create shortens a new URL.
func (s *LinkService) Create(ctx context.Context, req CreateLinkRequest) (httpclient.Result[LinkWithSeo, APIError], error) {
	return httpclient.Request[LinkWithSeo, APIError](ctx, s.http, linkPath, httpclient.Init{
		Method: http.MethodPost,
		Body:   req,
	})
}

// Get reads a link and its SEO metadata.
func (s *LinkService) Get(ctx context.Context, req GetLinkRequest) (httpclient.Result[LinkWithSeo, APIError], error) {
	path, err := linkIDPath(linkPath, req.ID)
	if err != nil {
		return httpclient.Result[LinkWithSeo, APIError]{}, err
	}
	return httpclient.Request[LinkWithSeo, APIError](ctx, s.http, path, httpclient.Init{})
}

// Update modifies an existing link.
func (s *LinkService) Update(ctx context.Context, req UpdateLinkRequest) (httpclient.Result[LinkWithSeo, APIError], error) {
	path, err := linkIDPath(linkPath, req.ID)
	if err != nil {
		return httpclient.Result[LinkWithSeo, APIError]{}, err
	}
	return httpclient.Request[LinkWithSeo, APIError](ctx, s.http, path, httpclient.Init{
		Method: http.MethodPut,
		Body:   req,
	})
}

// Delete removes a link.
func (s *LinkService) Delete(ctx context.Context, req DeleteLinkRequest) (httpclient.Result[DeleteLinkResponse, APIError], error) {
	path, err := linkIDPath(linkPath, req.ID)
	if err != nil {
		return httpclient.Result[DeleteLinkResponse, APIError]{}, err
	}
	return httpclient.Request[DeleteLinkResponse, APIError](ctx, s.http, path, httpclient.Init{
		Method: http.MethodDelete,
	})
}

// List returns one page of the caller's links.
func (s *LinkService) List(ctx context.Context, req ListLinksRequest) (httpclient.Result[ListLinksResponse, APIError], error) {
	return httpclient.Request[ListLinksResponse, APIError](ctx, s.http, linkPath, httpclient.Init{
		Query: req.query(),
	})
}

// GetPublic reads a link through the public endpoint.
func (s *LinkService) GetPublic(ctx context.Context, req GetPublicLinkRequest) (httpclient.Result[LinkWithSeo, APIError], error) {
	path, err := linkIDPath(publicLinkPath, req.ID)
	if err != nil {
		return httpclient.Result[LinkWithSeo, APIError]{}, err
	}
	return httpclient.Request[LinkWithSeo, APIError](ctx, s.http, path, httpclient.Init{})
}

func linkIDPath(base, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	return base + "/" + url.PathEscape(id), nil
}
