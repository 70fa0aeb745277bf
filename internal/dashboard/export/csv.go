package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eXemoumen/datascrapfront/internal/dashboard/model"
)

// Header is the fixed export column set, in order.
var Header = []string{
	"ID",
	"Company",
	"Title",
	"Description",
	"Type",
	"Location",
	"Products",
	"Date",
	"URL",
	"Status",
	"Scraped At",
	"Contact First Name",
	"Contact Address",
	"Contact Postal Code",
	"Contact City",
	"Contact Email",
	"Contact Phone",
	"Contact Website",
	"Contact OK",
}

// Column indexes emitted raw (unquoted): id, date and URL. Every other
// column is textual and gets the quote-and-double rule.
var rawColumns = map[int]bool{0: true, 7: true, 8: true}

// CSV serializes the given view into a comma-delimited payload: the
// fixed header row followed by one row per record, in the view's order.
// Textual fields are wrapped in double quotes with embedded quotes
// doubled; missing contact fields come out as empty strings.
func CSV(records []model.Announcement) string {
	var b strings.Builder
	writeRow(&b, Header)
	for _, r := range records {
		writeRow(&b, recordFields(r))
	}
	return b.String()
}

// Filename builds the download name, <app>-<ISO date>.csv. The caller
// passes a single "now" so the date is evaluated once per export.
func Filename(appName string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", appName, now.Format("2006-01-02"))
}

func recordFields(r model.Announcement) []string {
	status := "Unchecked"
	if r.Checked == 1 {
		status = "Checked"
	}
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.CompanyName,
		r.Title,
		r.Description,
		r.AnnouncementType,
		r.Location,
		r.Products,
		r.AnnouncementDate,
		r.URL,
		status,
		r.ScrapedAt,
		r.ContactFirstName,
		r.ContactAddress,
		r.ContactPostalCode,
		r.ContactCity,
		r.ContactEmail,
		r.ContactPhone,
		r.ContactWebsite,
		r.ContactOK,
	}
}

func writeRow(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if rawColumns[i] {
			b.WriteString(field)
		} else {
			b.WriteString(quote(field))
		}
	}
	b.WriteByte('\n')
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
