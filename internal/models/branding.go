package models

// BrandingProfile is a sparse presentation overlay. Every field is optional;
// an empty field means the current or default presentation stays untouched.
type BrandingProfile struct {
	CompanyName    string            `json:"company_name"`
	LogoURL        string            `json:"logo_url"`
	PrimaryColor   string            `json:"primary_color"`
	SecondaryColor string            `json:"secondary_color"`
	AccentColor    string            `json:"accent_color"`
	SocialLinks    map[string]string `json:"social_links"`
	Tagline        string            `json:"tagline"`
}

// IsZero reports whether no branding field is set at all.
func (b BrandingProfile) IsZero() bool {
	return b.CompanyName == "" &&
		b.LogoURL == "" &&
		b.PrimaryColor == "" &&
		b.SecondaryColor == "" &&
		b.AccentColor == "" &&
		len(b.SocialLinks) == 0 &&
		b.Tagline == ""
}
