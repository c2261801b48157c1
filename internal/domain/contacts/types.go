package contacts

import (
	"strings"

	people "google.golang.org/api/people/v1"
)

// Default field masks, matching what the tools document.
var (
	DefaultListFields = []string{"names", "emailAddresses", "phoneNumbers", "addresses", "organizations", "biographies", "photos"}
	DefaultGetFields  = []string{
		"names", "emailAddresses", "phoneNumbers", "addresses", "organizations", "biographies",
		"photos", "birthdays", "events", "relations", "urls", "userDefined", "memberships", "metadata",
	}
	mutationFields = []string{"names", "emailAddresses", "phoneNumbers", "addresses", "organizations", "biographies"}
)

const (
	defaultSource   = "READ_SOURCE_TYPE_CONTACT"
	defaultPageSize = 100
	maxPageSize     = 1000
)

// Contact is the trimmed-down view of a People API person returned by every tool.
type Contact struct {
	ResourceName   string         `json:"resourceName"`
	Etag           string         `json:"etag,omitempty"`
	DisplayName    string         `json:"displayName,omitempty"`
	GivenName      string         `json:"givenName,omitempty"`
	FamilyName     string         `json:"familyName,omitempty"`
	MiddleName     string         `json:"middleName,omitempty"`
	EmailAddresses []TypedValue   `json:"emailAddresses,omitempty"`
	PhoneNumbers   []TypedValue   `json:"phoneNumbers,omitempty"`
	Addresses      []Address      `json:"addresses,omitempty"`
	Organizations  []Organization `json:"organizations,omitempty"`
	Biographies    []Biography    `json:"biographies,omitempty"`
	Photos         []string       `json:"photos,omitempty"`
	Birthdays      []string       `json:"birthdays,omitempty"`
	URLs           []TypedValue   `json:"urls,omitempty"`
}

// TypedValue is an email, phone number or URL with its label.
type TypedValue struct {
	Value string `json:"value" jsonschema:"the value itself"`
	Type  string `json:"type,omitempty" jsonschema:"label such as home, work or mobile"`
}

// Address is a postal address.
type Address struct {
	FormattedValue string `json:"formattedValue,omitempty"`
	StreetAddress  string `json:"streetAddress,omitempty"`
	City           string `json:"city,omitempty"`
	Region         string `json:"region,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	Country        string `json:"country,omitempty"`
	Type           string `json:"type,omitempty"`
}

// Organization is an employer or other affiliation.
type Organization struct {
	Name       string `json:"name,omitempty"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
	Type       string `json:"type,omitempty"`
}

// Biography is free-form notes attached to a contact.
type Biography struct {
	Value       string `json:"value"`
	ContentType string `json:"contentType,omitempty" jsonschema:"TEXT_PLAIN or TEXT_HTML"`
}

func contactFromPerson(p *people.Person) Contact {
	if p == nil {
		return Contact{}
	}
	c := Contact{ResourceName: p.ResourceName, Etag: p.Etag}

	if len(p.Names) > 0 {
		n := p.Names[0]
		c.DisplayName = n.DisplayName
		c.GivenName = n.GivenName
		c.FamilyName = n.FamilyName
		c.MiddleName = n.MiddleName
	}
	for _, e := range p.EmailAddresses {
		c.EmailAddresses = append(c.EmailAddresses, TypedValue{Value: e.Value, Type: e.Type})
	}
	for _, ph := range p.PhoneNumbers {
		c.PhoneNumbers = append(c.PhoneNumbers, TypedValue{Value: ph.Value, Type: ph.Type})
	}
	for _, a := range p.Addresses {
		c.Addresses = append(c.Addresses, Address{
			FormattedValue: a.FormattedValue,
			StreetAddress:  a.StreetAddress,
			City:           a.City,
			Region:         a.Region,
			PostalCode:     a.PostalCode,
			Country:        a.Country,
			Type:           a.Type,
		})
	}
	for _, o := range p.Organizations {
		c.Organizations = append(c.Organizations, Organization{Name: o.Name, Title: o.Title, Department: o.Department, Type: o.Type})
	}
	for _, b := range p.Biographies {
		c.Biographies = append(c.Biographies, Biography{Value: b.Value, ContentType: b.ContentType})
	}
	for _, ph := range p.Photos {
		c.Photos = append(c.Photos, ph.Url)
	}
	for _, b := range p.Birthdays {
		if b.Text != "" {
			c.Birthdays = append(c.Birthdays, b.Text)
		}
	}
	for _, u := range p.Urls {
		c.URLs = append(c.URLs, TypedValue{Value: u.Value, Type: u.Type})
	}
	return c
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}

func orDefault(fields, fallback []string) []string {
	if len(fields) == 0 {
		return fallback
	}
	return fields
}

func orString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
