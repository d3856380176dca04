package extractor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Selectors maps every logical page fragment to the query path that
// locates it. The paths are coupled to the marketplace's presentation
// class names, so they are versioned configuration data, not behavior:
// when the markup changes, ship a new selector file, not new code.
type Selectors struct {
	ItemID          string `yaml:"item_id"`
	Title           string `yaml:"title"`
	PriceWhole      string `yaml:"price_whole"`
	PriceCents      string `yaml:"price_cents"`
	Rating          string `yaml:"rating"`
	Description     string `yaml:"description"`
	BreadcrumbLink  string `yaml:"breadcrumb_link"`
	GalleryImage    string `yaml:"gallery_image"`
	ImageZoomAttr   string `yaml:"image_zoom_attr"`
	VariationPicker string `yaml:"variation_picker"`
	VariationLabel  string `yaml:"variation_label"`
	VariationOption string `yaml:"variation_option"`
	SpecTable       string `yaml:"spec_table"`
	SpecRow         string `yaml:"spec_row"`
	SpecValue       string `yaml:"spec_value"`
}

// DefaultSelectors targets the marketplace markup this extractor currently
// supports.
func DefaultSelectors() Selectors {
	return Selectors{
		ItemID:          `input[name=item_id]`,
		Title:           `h1.product-title`,
		PriceWhole:      `.product-price .price-integer`,
		PriceCents:      `.product-price .price-decimal`,
		Rating:          `.product-rating .rating-average`,
		Description:     `#product-description`,
		BreadcrumbLink:  `.breadcrumb a`,
		GalleryImage:    `.product-gallery img.gallery-image`,
		ImageZoomAttr:   `data-zoom-image`,
		VariationPicker: `.sku-property`,
		VariationLabel:  `.sku-title`,
		VariationOption: `.sku-property-item`,
		SpecTable:       `table.specification tbody`,
		SpecRow:         `tr`,
		SpecValue:       `.spec-value`,
	}
}

// LoadSelectors reads a selector file and overlays it on the defaults, so
// a file only needs to name the paths that changed.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()

	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("failed to read selectors file: %w", err)
	}
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return sel, fmt.Errorf("failed to parse selectors file: %w", err)
	}
	return sel, nil
}
