package extractor

import (
	"strings"

	"github.com/maltedev/marketplace-product-extractor/internal/document"
	"github.com/maltedev/marketplace-product-extractor/internal/models"
)

// extractBreadcrumbs collects the text of every breadcrumb link in
// document order. Zero matches is an empty slice, not nil.
func (e *Extractor) extractBreadcrumbs(doc *document.Document) []string {
	crumbs := make([]string, 0)
	for _, link := range doc.AllMatching(e.selectors.BreadcrumbLink) {
		crumbs = append(crumbs, link.Text())
	}
	return crumbs
}

// extractImages builds one ImageRecord per gallery node in document order.
// The record's src comes from the zoom attribute, not the thumbnail src.
// A node missing an attribute keeps its record; only that field is nil.
func (e *Extractor) extractImages(doc *document.Document) []models.ImageRecord {
	images := make([]models.ImageRecord, 0)
	for _, node := range doc.AllMatching(e.selectors.GalleryImage) {
		images = append(images, models.ImageRecord{
			Src:     attrOrNil(node, e.selectors.ImageZoomAttr),
			AltText: attrOrNil(node, "alt"),
			Width:   attrOrNil(node, "width"),
			Height:  attrOrNil(node, "height"),
		})
	}
	return images
}

// extractVariations builds one VariationRecord per variation picker. The
// label keeps whatever text the label node holds, minus exactly one
// trailing colon; a picker with no option nodes still yields a record.
func (e *Extractor) extractVariations(doc *document.Document) []models.VariationRecord {
	variations := make([]models.VariationRecord, 0)
	for _, picker := range doc.AllMatching(e.selectors.VariationPicker) {
		label, _ := picker.TextOfFirst(e.selectors.VariationLabel)
		label = strings.TrimSuffix(label, ":")

		options := make([]string, 0)
		for _, option := range picker.AllMatching(e.selectors.VariationOption) {
			// One entry per option node: a missing title attribute
			// contributes an empty label, it never drops the node.
			title, _ := option.Attr("title")
			options = append(options, title)
		}

		variations = append(variations, models.VariationRecord{
			Name:    label,
			Options: options,
		})
	}
	return variations
}

// extractSpecs walks every specification table body, then every row of it,
// in document order. The row's text content is the name; the value-bearing
// child element supplies the value.
func (e *Extractor) extractSpecs(doc *document.Document) []models.SpecRow {
	specs := make([]models.SpecRow, 0)
	for _, table := range doc.AllMatching(e.selectors.SpecTable) {
		for _, row := range table.AllMatching(e.selectors.SpecRow) {
			value, _ := row.TextOfFirst(e.selectors.SpecValue)
			specs = append(specs, models.SpecRow{
				Name:  row.Text(),
				Value: value,
			})
		}
	}
	return specs
}

func attrOrNil(node *document.Document, name string) *string {
	value, ok := node.Attr(name)
	if !ok {
		return nil
	}
	return &value
}
