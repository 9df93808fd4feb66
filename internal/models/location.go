package models

// Location is a physical branch of the business.
type Location struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Address    string  `json:"address" yaml:"address"`
	City       string  `json:"city" yaml:"city"`
	PostalCode string  `json:"postal_code" yaml:"postal_code"`
	Latitude   float64 `json:"latitude" yaml:"latitude"`
	Longitude  float64 `json:"longitude" yaml:"longitude"`
	Phone      string  `json:"phone" yaml:"phone"`
	Mobile     string  `json:"mobile" yaml:"mobile"`
	Hours      string  `json:"hours" yaml:"hours"`
	Radius     string  `json:"radius" yaml:"radius"`
}

// Business is the company information shown on the about and contact pages.
type Business struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	URL         string   `json:"url" yaml:"url"`
	Logo        string   `json:"logo" yaml:"logo"`
	Email       string   `json:"email" yaml:"email"`
	Phone       string   `json:"phone" yaml:"phone"`
	SameAs      []string `json:"same_as" yaml:"same_as"`
}
