package contacts

import (
	"context"
)

const maxSearchPageSize = 30

// ListRequest selects contacts of the authenticated user.
// A non-empty Query switches to searchContacts, which ignores PageToken and Sources.
type ListRequest struct {
	PageSize     int64
	PageToken    string
	PersonFields []string
	Sources      []string
	Query        string
}

// ListResult is one page of contacts.
type ListResult struct {
	Contacts      []Contact `json:"contacts"`
	TotalItems    int64     `json:"totalItems"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
}

// GetRequest names one contact and the fields to read.
type GetRequest struct {
	ResourceName string
	PersonFields []string
}

// List returns a page of connections, or search results when Query is set.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	fields := orDefault(req.PersonFields, DefaultListFields)

	if req.Query != "" {
		size := clampPageSize(req.PageSize, maxSearchPageSize)
		resp, err := s.api.SearchContacts(ctx, req.Query, fields, size)
		if err != nil {
			return nil, NormalizeError(err)
		}
		out := &ListResult{Contacts: make([]Contact, 0, len(resp.Results))}
		for _, r := range resp.Results {
			out.Contacts = append(out.Contacts, contactFromPerson(r.Person))
		}
		out.TotalItems = int64(len(out.Contacts))
		return out, nil
	}

	sources := req.Sources
	if len(sources) == 0 {
		sources = []string{defaultSource}
	}
	resp, err := s.api.ListConnections(ctx, ConnectionsQuery{
		PageSize:     clampPageSize(req.PageSize, maxPageSize),
		PageToken:    req.PageToken,
		PersonFields: fields,
		Sources:      sources,
	})
	if err != nil {
		return nil, NormalizeError(err)
	}

	out := &ListResult{
		Contacts:      make([]Contact, 0, len(resp.Connections)),
		NextPageToken: resp.NextPageToken,
	}
	for _, p := range resp.Connections {
		out.Contacts = append(out.Contacts, contactFromPerson(p))
	}
	out.TotalItems = resp.TotalItems
	if out.TotalItems == 0 {
		out.TotalItems = int64(len(out.Contacts))
	}
	return out, nil
}

// Get reads one contact.
func (s *Service) Get(ctx context.Context, req GetRequest) (*Contact, error) {
	if req.ResourceName == "" {
		return nil, NormalizeError(ErrEmptyResourceName)
	}
	p, err := s.api.GetContact(ctx, req.ResourceName, orDefault(req.PersonFields, DefaultGetFields))
	if err != nil {
		return nil, NormalizeError(err)
	}
	c := contactFromPerson(p)
	return &c, nil
}

func clampPageSize(size, limit int64) int64 {
	switch {
	case size <= 0:
		if defaultPageSize > limit {
			return limit
		}
		return defaultPageSize
	case size > limit:
		return limit
	default:
		return size
	}
}
