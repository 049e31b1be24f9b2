package domain

// Exhibition is the canonical record produced by a gallery source and
// handed to the persistence sink. Dates are ISO "YYYY-MM-DD" strings or
// empty; times are zero-padded "HH:MM" strings or empty. The raw period
// and hours text is kept alongside the normalized values so a failed
// parse can still be displayed instead of silently dropped.
type Exhibition struct {
	SourceID    string   `json:"source_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Author      string   `json:"author"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	OpenTime    string   `json:"open_time"`
	CloseTime   string   `json:"close_time"`
	ImageURLs   []string `json:"img_url"`
	GalleryName string   `json:"gallery_name"`
	PhoneNum    string   `json:"phone_num"`
	RawPeriod   string   `json:"raw_period,omitempty"`
	RawHours    string   `json:"raw_hours,omitempty"`
}

// AdmissionPolicy names the per-source checks that gate a record into the
// datastore. The original crawlers disagreed on which check came first;
// here both are explicit flags on the source profile.
type AdmissionPolicy struct {
	RequireEndDate     bool
	RequireDescription bool
}

// Admit reports whether the record passes the policy and, when it does
// not, the name of the check that rejected it.
func (p AdmissionPolicy) Admit(ex *Exhibition) (bool, string) {
	if p.RequireDescription && isBlank(ex.Description) {
		return false, "empty_description"
	}
	if p.RequireEndDate && isBlank(ex.EndDate) {
		return false, "missing_end_date"
	}
	return true, ""
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
