package gallery

import (
	"exhibition_crawler/internal/browse"
	"exhibition_crawler/internal/domain"
	"exhibition_crawler/internal/normalize"
)

// Selectors describes where each exhibition field lives in a site's
// markup. All selectors are CSS and optional; a missing selector simply
// leaves that field to its default.
type Selectors struct {
	// Item selects one exhibition per match on the listing page. When
	// empty the listing page itself is treated as a single exhibition
	// (some small venues only ever show the current one).
	Item      string `yaml:"item"`
	Link      string `yaml:"link"`
	Title     string `yaml:"title"`
	Author    string `yaml:"author"`
	Period    string `yaml:"period"`
	Hours     string `yaml:"hours"`
	Summary   string `yaml:"summary"`
	Thumbnail string `yaml:"thumbnail"`
	// DetailBody selects description paragraphs on the detail page.
	DetailBody string `yaml:"detail_body"`
	// DetailImage selects exhibition images on the detail page.
	DetailImage string `yaml:"detail_image"`
}

// AdmissionConfig relaxes the default admission checks for one source.
// The flags are phrased as relaxations so that an omitted block means
// the strict default: records need both an end date and a description.
type AdmissionConfig struct {
	AllowMissingEndDate   bool `yaml:"allow_missing_end_date"`
	AllowEmptyDescription bool `yaml:"allow_empty_description"`
}

func (c AdmissionConfig) Policy() domain.AdmissionPolicy {
	return domain.AdmissionPolicy{
		RequireEndDate:     !c.AllowMissingEndDate,
		RequireDescription: !c.AllowEmptyDescription,
	}
}

// Profile is the complete per-site definition: where the listing lives,
// which engine renders it, which optional date grammars its text uses,
// and which admission policy gates its records into the datastore.
type Profile struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	ListURL      string            `yaml:"list_url"`
	GalleryName  string            `yaml:"gallery_name"`
	Address      string            `yaml:"address"`
	DefaultHours string            `yaml:"default_hours"`
	Engine       browse.Engine     `yaml:"engine"`
	Grammar      normalize.Grammar `yaml:"grammar"`
	Admission    AdmissionConfig   `yaml:"admission"`
	Selectors    Selectors         `yaml:"selectors"`
}
