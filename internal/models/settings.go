package models

import "time"

type Theme struct {
	PrimaryColor   string `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"omitempty,hexcolor"`
	AccentColor    string `json:"accent_color" validate:"omitempty,hexcolor"`
	FontFamily     string `json:"font_family" validate:"max=100"`
	LogoURL        string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Pinterest string `json:"pinterest,omitempty" validate:"omitempty,url"`
}

// SiteSettings is the single editable document behind the storefront chrome.
type SiteSettings struct {
	SiteName     string      `json:"site_name" validate:"required,max=120"`
	Tagline      string      `json:"tagline,omitempty" validate:"max=200"`
	ContactEmail string      `json:"contact_email,omitempty" validate:"omitempty,email"`
	Phone        string      `json:"phone,omitempty" validate:"max=40"`
	Address      string      `json:"address,omitempty" validate:"max=300"`
	OpeningHours string      `json:"opening_hours,omitempty" validate:"max=300"`
	Social       SocialLinks `json:"social"`
	Theme        Theme       `json:"theme"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		SiteName: "Antiques",
		Theme: Theme{
			PrimaryColor:   "#3b2f2f",
			SecondaryColor: "#f5f0e6",
			AccentColor:    "#b08d57",
			FontFamily:     "Georgia, serif",
		},
	}
}
