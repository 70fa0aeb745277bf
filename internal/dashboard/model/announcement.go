package model

// Contact holds the optional contact sub-fields of an announcement.
// The backend stores these separately and they may all be empty.
type Contact struct {
	ContactFirstName  string `json:"contact_first_name"`
	ContactAddress    string `json:"contact_address"`
	ContactPostalCode string `json:"contact_postal_code"`
	ContactCity       string `json:"contact_city"`
	ContactEmail      string `json:"contact_email"`
	ContactPhone      string `json:"contact_phone"`
	ContactWebsite    string `json:"contact_website"`
	ContactOK         string `json:"contact_ok"`
}

// Announcement is one scraped business announcement as delivered by the
// backend. Products is the raw comma-separated string, not a normalized
// list; a single record can therefore match several product facets.
type Announcement struct {
	ID               int64  `json:"id"`
	MemberID         string `json:"member_id"`
	CompanyName      string `json:"company_name"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Products         string `json:"products"`
	Location         string `json:"location"`
	AnnouncementType string `json:"announcement_type"`
	AnnouncementDate string `json:"announcement_date"` // YYYY-MM-DD
	URL              string `json:"url"`
	ScrapedAt        string `json:"scraped_at"`
	Checked          int    `json:"checked"` // 0|1
	CreatedAt        string `json:"created_at"`

	Contact
}
