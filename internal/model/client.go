package model

// Client is the person a contract is billed against. Name and Email are
// mandatory; Email is the contact channel for expiry reminders.
type Client struct {
	ID         int64
	Name       string
	LastName   string
	Email      string
	Phone      string
	Address    string
	DocumentID string
	Notes      string
}

func (c Client) FullName() string {
	if c.LastName == "" {
		return c.Name
	}
	return c.Name + " " + c.LastName
}
