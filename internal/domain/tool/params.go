package tool

import "github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"

// Parameter types shared by the registry executors and the MCP tools.
// Fields without omitempty are required in the generated MCP input schema.

type ListContactsParams struct {
	PageSize     int64    `json:"pageSize,omitempty" jsonschema:"maximum number of contacts to return (default 100, max 1000)"`
	PageToken    string   `json:"pageToken,omitempty" jsonschema:"token for the next page of results"`
	Query        string   `json:"query,omitempty" jsonschema:"optional search query to filter contacts"`
	PersonFields []string `json:"personFields,omitempty" jsonschema:"fields to include in the response"`
	Sources      []string `json:"sources,omitempty" jsonschema:"sources to read from (default READ_SOURCE_TYPE_CONTACT)"`
}

func (p ListContactsParams) Request() contacts.ListRequest {
	return contacts.ListRequest{
		PageSize:     p.PageSize,
		PageToken:    p.PageToken,
		PersonFields: p.PersonFields,
		Sources:      p.Sources,
		Query:        p.Query,
	}
}

type GetContactParams struct {
	ResourceName string   `json:"resourceName" jsonschema:"resource name of the contact, e.g. people/c1234567890"`
	PersonFields []string `json:"personFields,omitempty" jsonschema:"fields to include in the response"`
}

func (p GetContactParams) Request() contacts.GetRequest {
	return contacts.GetRequest{ResourceName: p.ResourceName, PersonFields: p.PersonFields}
}

type CreateContactParams struct {
	GivenName      string                  `json:"givenName,omitempty" jsonschema:"first name"`
	FamilyName     string                  `json:"familyName,omitempty" jsonschema:"last name"`
	MiddleName     string                  `json:"middleName,omitempty" jsonschema:"middle name"`
	DisplayName    string                  `json:"displayName,omitempty" jsonschema:"display name, defaults to given and family name"`
	EmailAddresses []contacts.TypedValue   `json:"emailAddresses,omitempty" jsonschema:"email addresses (type defaults to home)"`
	PhoneNumbers   []contacts.TypedValue   `json:"phoneNumbers,omitempty" jsonschema:"phone numbers (type defaults to home)"`
	Addresses      []contacts.Address      `json:"addresses,omitempty" jsonschema:"postal addresses (type defaults to home)"`
	Organizations  []contacts.Organization `json:"organizations,omitempty" jsonschema:"organizations (type defaults to work)"`
	Biographies    []contacts.Biography    `json:"biographies,omitempty" jsonschema:"biographical notes"`
	Notes          string                  `json:"notes,omitempty" jsonschema:"notes, stored as a biography when biographies is empty"`
}

func (p CreateContactParams) Request() contacts.CreateRequest {
	return contacts.CreateRequest{ContactFields: contacts.ContactFields{
		GivenName:      p.GivenName,
		FamilyName:     p.FamilyName,
		MiddleName:     p.MiddleName,
		DisplayName:    p.DisplayName,
		EmailAddresses: p.EmailAddresses,
		PhoneNumbers:   p.PhoneNumbers,
		Addresses:      p.Addresses,
		Organizations:  p.Organizations,
		Biographies:    p.Biographies,
		Notes:          p.Notes,
	}}
}

type UpdateContactParams struct {
	ResourceName       string                  `json:"resourceName" jsonschema:"resource name of the contact to update"`
	UpdatePersonFields []string                `json:"updatePersonFields" jsonschema:"fields being replaced: names, emailAddresses, phoneNumbers, addresses, organizations or biographies"`
	GivenName          string                  `json:"givenName,omitempty" jsonschema:"first name"`
	FamilyName         string                  `json:"familyName,omitempty" jsonschema:"last name"`
	MiddleName         string                  `json:"middleName,omitempty" jsonschema:"middle name"`
	DisplayName        string                  `json:"displayName,omitempty" jsonschema:"display name"`
	EmailAddresses     []contacts.TypedValue   `json:"emailAddresses,omitempty" jsonschema:"replaces all email addresses"`
	PhoneNumbers       []contacts.TypedValue   `json:"phoneNumbers,omitempty" jsonschema:"replaces all phone numbers"`
	Addresses          []contacts.Address      `json:"addresses,omitempty" jsonschema:"replaces all addresses"`
	Organizations      []contacts.Organization `json:"organizations,omitempty" jsonschema:"replaces all organizations"`
	Biographies        []contacts.Biography    `json:"biographies,omitempty" jsonschema:"replaces all biographies"`
}

func (p UpdateContactParams) Request() contacts.UpdateRequest {
	return contacts.UpdateRequest{
		ResourceName:       p.ResourceName,
		UpdatePersonFields: p.UpdatePersonFields,
		ContactFields: contacts.ContactFields{
			GivenName:      p.GivenName,
			FamilyName:     p.FamilyName,
			MiddleName:     p.MiddleName,
			DisplayName:    p.DisplayName,
			EmailAddresses: p.EmailAddresses,
			PhoneNumbers:   p.PhoneNumbers,
			Addresses:      p.Addresses,
			Organizations:  p.Organizations,
			Biographies:    p.Biographies,
		},
	}
}

type DeleteContactParams struct {
	ResourceName string `json:"resourceName" jsonschema:"resource name of the contact to delete, e.g. people/c1234567890"`
}

func (p DeleteContactParams) Request() contacts.DeletionRequest {
	return contacts.DeletionRequest{ResourceName: p.ResourceName}
}
