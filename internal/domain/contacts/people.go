package contacts

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"
)

// ErrNoCredentials is returned by the client built with NoCredentials.
var ErrNoCredentials = errors.New("no stored google credentials")

// PeopleAPI is the slice of the People v1 API used by the service.
// Each method makes exactly one HTTP request and returns the raw client error.
type PeopleAPI interface {
	DeleteContact(ctx context.Context, resourceName string) error
	GetContact(ctx context.Context, resourceName string, personFields []string) (*people.Person, error)
	ListConnections(ctx context.Context, q ConnectionsQuery) (*people.ListConnectionsResponse, error)
	SearchContacts(ctx context.Context, query string, readMask []string, pageSize int64) (*people.SearchResponse, error)
	CreateContact(ctx context.Context, person *people.Person, personFields []string) (*people.Person, error)
	UpdateContact(ctx context.Context, resourceName string, person *people.Person, updateFields, personFields []string) (*people.Person, error)
}

// ConnectionsQuery holds the connections.list parameters.
type ConnectionsQuery struct {
	PageSize     int64
	PageToken    string
	PersonFields []string
	Sources      []string
}

type peopleClient struct {
	svc *people.Service
}

// NewPeopleClient builds a PeopleAPI authenticated by ts. Extra options are appended,
// so tests can point it at a local endpoint.
//
// The oauth2 HTTP client is built here rather than via option.WithTokenSource so token
// refresh failures reach NormalizeError as *oauth2.RetrieveError.
func NewPeopleClient(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (PeopleAPI, error) {
	all := make([]option.ClientOption, 0, len(opts)+1)
	if ts != nil {
		all = append(all, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	}
	all = append(all, opts...)

	svc, err := people.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("contacts: create people service: %w", err)
	}
	return &peopleClient{svc: svc}, nil
}

func (c *peopleClient) DeleteContact(ctx context.Context, resourceName string) error {
	_, err := c.svc.People.DeleteContact(resourceName).Context(ctx).Do()
	return err
}

func (c *peopleClient) GetContact(ctx context.Context, resourceName string, personFields []string) (*people.Person, error) {
	return c.svc.People.Get(resourceName).PersonFields(joinFields(personFields)).Context(ctx).Do()
}

func (c *peopleClient) ListConnections(ctx context.Context, q ConnectionsQuery) (*people.ListConnectionsResponse, error) {
	call := c.svc.People.Connections.List("people/me").
		PersonFields(joinFields(q.PersonFields)).
		PageSize(q.PageSize).
		Sources(q.Sources...)
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}
	return call.Context(ctx).Do()
}

func (c *peopleClient) SearchContacts(ctx context.Context, query string, readMask []string, pageSize int64) (*people.SearchResponse, error) {
	return c.svc.People.SearchContacts().
		Query(query).
		ReadMask(joinFields(readMask)).
		PageSize(pageSize).
		Context(ctx).
		Do()
}

func (c *peopleClient) CreateContact(ctx context.Context, person *people.Person, personFields []string) (*people.Person, error) {
	return c.svc.People.CreateContact(person).PersonFields(joinFields(personFields)).Context(ctx).Do()
}

func (c *peopleClient) UpdateContact(ctx context.Context, resourceName string, person *people.Person, updateFields, personFields []string) (*people.Person, error) {
	return c.svc.People.UpdateContact(resourceName, person).
		UpdatePersonFields(joinFields(updateFields)).
		PersonFields(joinFields(personFields)).
		Context(ctx).
		Do()
}

type noCredentials struct{}

// NoCredentials returns a PeopleAPI that fails every call with ErrNoCredentials.
// Used when the server starts before `peoplebridge auth` has been run.
func NoCredentials() PeopleAPI { return noCredentials{} }

func (noCredentials) DeleteContact(context.Context, string) error { return ErrNoCredentials }

func (noCredentials) GetContact(context.Context, string, []string) (*people.Person, error) {
	return nil, ErrNoCredentials
}

func (noCredentials) ListConnections(context.Context, ConnectionsQuery) (*people.ListConnectionsResponse, error) {
	return nil, ErrNoCredentials
}

func (noCredentials) SearchContacts(context.Context, string, []string, int64) (*people.SearchResponse, error) {
	return nil, ErrNoCredentials
}

func (noCredentials) CreateContact(context.Context, *people.Person, []string) (*people.Person, error) {
	return nil, ErrNoCredentials
}

func (noCredentials) UpdateContact(context.Context, string, *people.Person, []string, []string) (*people.Person, error) {
	return nil, ErrNoCredentials
}
