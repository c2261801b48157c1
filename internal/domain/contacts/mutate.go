package contacts

import (
	"context"
	"errors"
	"slices"
	"strings"

	people "google.golang.org/api/people/v1"
)

// ErrNoUpdateFields is returned (as invalid_argument) when an update names no fields.
var ErrNoUpdateFields = errors.New("updatePersonFields must name at least one field")

// ContactFields are the writable parts of a contact.
type ContactFields struct {
	GivenName      string
	FamilyName     string
	MiddleName     string
	DisplayName    string
	EmailAddresses []TypedValue
	PhoneNumbers   []TypedValue
	Addresses      []Address
	Organizations  []Organization
	Biographies    []Biography
	Notes          string // used as a TEXT_PLAIN biography when Biographies is empty
}

// CreateRequest describes a new contact.
type CreateRequest struct {
	ContactFields
}

// UpdateRequest replaces the listed person fields of an existing contact.
type UpdateRequest struct {
	ResourceName       string
	UpdatePersonFields []string
	ContactFields
}

// MutationResult is returned by Create and Update.
type MutationResult struct {
	Success bool    `json:"success"`
	Contact Contact `json:"contact"`
}

// Create adds a contact with one createContact call.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*MutationResult, error) {
	person := buildPerson(req.ContactFields, nil)

	created, err := s.api.CreateContact(ctx, person, mutationFields)
	if err != nil {
		apiErr := NormalizeError(err)
		s.publish(ctx, TopicContactCreated, "", apiErr)
		return nil, apiErr
	}

	s.publish(ctx, TopicContactCreated, created.ResourceName, nil)
	return &MutationResult{Success: true, Contact: contactFromPerson(created)}, nil
}

// Update reads the current etag, then writes the fields named in UpdatePersonFields.
// Two remote calls; a failure in either is returned without retry.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*MutationResult, error) {
	var localErr error
	switch {
	case req.ResourceName == "":
		localErr = ErrEmptyResourceName
	case len(req.UpdatePersonFields) == 0:
		localErr = ErrNoUpdateFields
	}
	if localErr != nil {
		apiErr := &APIError{Kind: KindInvalidArgument, Message: localErr.Error(), cause: localErr}
		s.publish(ctx, TopicContactUpdated, req.ResourceName, apiErr)
		return nil, apiErr
	}

	existing, err := s.api.GetContact(ctx, req.ResourceName, []string{"names"})
	if err != nil {
		apiErr := NormalizeError(err)
		s.publish(ctx, TopicContactUpdated, req.ResourceName, apiErr)
		return nil, apiErr
	}

	person := buildPerson(req.ContactFields, req.UpdatePersonFields)
	person.ResourceName = req.ResourceName
	person.Etag = existing.Etag

	updated, err := s.api.UpdateContact(ctx, req.ResourceName, person, req.UpdatePersonFields, mutationFields)
	if err != nil {
		apiErr := NormalizeError(err)
		s.publish(ctx, TopicContactUpdated, req.ResourceName, apiErr)
		return nil, apiErr
	}

	s.publish(ctx, TopicContactUpdated, req.ResourceName, nil)
	return &MutationResult{Success: true, Contact: contactFromPerson(updated)}, nil
}

// buildPerson converts fields into a People API person. With only == nil every
// non-empty field is set (create); otherwise just the named fields are (update).
func buildPerson(f ContactFields, only []string) *people.Person {
	want := func(field string) bool {
		return only == nil || slices.Contains(only, field)
	}
	p := &people.Person{}

	hasName := f.GivenName != "" || f.FamilyName != "" || f.MiddleName != "" || f.DisplayName != ""
	if (only == nil && hasName) || (only != nil && want("names")) {
		display := f.DisplayName
		if display == "" {
			display = strings.TrimSpace(f.GivenName + " " + f.FamilyName)
		}
		p.Names = []*people.Name{{
			GivenName:   f.GivenName,
			FamilyName:  f.FamilyName,
			MiddleName:  f.MiddleName,
			DisplayName: display,
		}}
	}

	if want("emailAddresses") {
		for _, e := range f.EmailAddresses {
			p.EmailAddresses = append(p.EmailAddresses, &people.EmailAddress{Value: e.Value, Type: orString(e.Type, "home")})
		}
	}
	if want("phoneNumbers") {
		for _, ph := range f.PhoneNumbers {
			p.PhoneNumbers = append(p.PhoneNumbers, &people.PhoneNumber{Value: ph.Value, Type: orString(ph.Type, "home")})
		}
	}
	if want("addresses") {
		for _, a := range f.Addresses {
			p.Addresses = append(p.Addresses, &people.Address{
				StreetAddress: a.StreetAddress,
				City:          a.City,
				Region:        a.Region,
				PostalCode:    a.PostalCode,
				Country:       a.Country,
				Type:          orString(a.Type, "home"),
			})
		}
	}
	if want("organizations") {
		for _, o := range f.Organizations {
			p.Organizations = append(p.Organizations, &people.Organization{
				Name:       o.Name,
				Title:      o.Title,
				Department: o.Department,
				Type:       orString(o.Type, "work"),
			})
		}
	}
	if want("biographies") {
		for _, b := range f.Biographies {
			p.Biographies = append(p.Biographies, &people.Biography{Value: b.Value, ContentType: orString(b.ContentType, "TEXT_PLAIN")})
		}
		if len(p.Biographies) == 0 && f.Notes != "" && only == nil {
			p.Biographies = []*people.Biography{{Value: f.Notes, ContentType: "TEXT_PLAIN"}}
		}
	}
	return p
}
