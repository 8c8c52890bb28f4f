// Package models defines data structures used across the application.
// File: models/contact.go
package models

import "errors"

// ----------------------- contact model -----------------------

// SocialMedia holds the festival's social links.
type SocialMedia struct {
	Instagram string `json:"instagram"`
	YouTube   string `json:"youtube"`
}

// Coordinator represents a single event coordinator listed on the contact page.
type Coordinator struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Image     string `json:"image"`
	ImageType string `json:"imageType"` // "url" or "upload"
}

// Contact is the singleton contact-page record.
type Contact struct {
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	SocialMedia  SocialMedia   `json:"socialMedia"`
	Coordinators []Coordinator `json:"coordinators"`
}

// Normalize backfills defaults so every field is present even when the
// API response omitted it.
func (c *Contact) Normalize() {
	if c.Coordinators == nil {
		c.Coordinators = []Coordinator{}
	}
	for i := range c.Coordinators {
		if c.Coordinators[i].ImageType == "" {
			c.Coordinators[i].ImageType = SourceURL
		}
	}
}

// Validate checks the contact record before it may be published.
func (c *Contact) Validate() error {
	if c.Email == "" || c.Phone == "" {
		return errors.New("Email and Phone are required.")
	}
	for _, coord := range c.Coordinators {
		if coord.Name == "" || coord.Role == "" {
			return errors.New("All coordinators must have a Name and Role.")
		}
	}
	return nil
}
