package model

import "time"

// CarouselSlide is one slide of the storefront home carousel.
type CarouselSlide struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Image         string `json:"image"`
	ButtonCaption string `json:"button_caption"`
}

// Setting is the singleton site configuration record. Exactly one logical
// instance exists per deployment; it is created with defaults on first
// access and only ever mutated through an explicit update.
type Setting struct {
	SiteName       string          `json:"site_name" db:"site_name"`
	Slogan         string          `json:"slogan" db:"slogan"`
	Description    string          `json:"description" db:"description"`
	BaseURL        string          `json:"base_url" db:"base_url"`
	ContactEmail   string          `json:"contact_email" db:"contact_email"`
	ContactPhone   string          `json:"contact_phone" db:"contact_phone"`
	ContactAddress string          `json:"contact_address" db:"contact_address"`
	Carousels      []CarouselSlide `json:"carousels" db:"carousels"`
	Categories     []string        `json:"categories" db:"categories"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// DefaultSetting returns the configuration served before any settings row
// has been written.
func DefaultSetting() *Setting {
	return &Setting{
		SiteName:    "MGZon",
		Slogan:      "The Best E-Commerce Platform",
		Description: "Premium online shopping experience",
		BaseURL:     "https://mg-zon.vercel.app",
	}
}
