package models

// ProductRecord is the normalized result of extracting one product-detail
// page. Optional scalars are nil when the page has no matching fragment;
// collections are always non-nil and preserve document order.
type ProductRecord struct {
	ID          *string           `json:"id"`
	URL         string            `json:"url"`
	Breadcrumbs []string          `json:"breadcrumbs"`
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Price       *float64          `json:"price"`
	Rating      *float64          `json:"rating"`
	Sizes       map[string]string `json:"sizes"`
	Variations  []VariationRecord `json:"variations"`
	Images      []ImageRecord     `json:"images"`
	Specs       []SpecRow         `json:"specs"`
}

// VariationRecord is one variation picker (color, size, ...) found on the
// page. Options keep document order; duplicates are preserved as found.
type VariationRecord struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// ImageRecord is one gallery image. Src comes from the zoom/high-res
// attribute, not the thumbnail src. Width and height are raw attribute
// values; the markup does not guarantee they are numeric.
type ImageRecord struct {
	Src     *string `json:"src"`
	AltText *string `json:"alt_text"`
	Width   *string `json:"width"`
	Height  *string `json:"height"`
}

// SpecRow is one row of a specification table.
type SpecRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewProductRecord returns a record for the given page address with every
// collection initialized empty.
func NewProductRecord(url string) *ProductRecord {
	return &ProductRecord{
		URL:         url,
		Breadcrumbs: make([]string, 0),
		Sizes:       make(map[string]string),
		Variations:  make([]VariationRecord, 0),
		Images:      make([]ImageRecord, 0),
		Specs:       make([]SpecRow, 0),
	}
}
