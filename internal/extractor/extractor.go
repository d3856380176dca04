package extractor

import (
	"github.com/maltedev/marketplace-product-extractor/internal/document"
	"github.com/maltedev/marketplace-product-extractor/internal/models"
)

// Extractor assembles a ProductRecord from one parsed product-detail page.
// It is a pure function of (document, page URL, options): no extractor has
// side effects on another, so an Extractor is safe for concurrent use.
type Extractor struct {
	selectors Selectors
}

// Options controls how individual fields are rendered.
type Options struct {
	// AsHTML returns the description as its inner markup fragment
	// instead of plain text.
	AsHTML bool
}

func New(selectors Selectors) *Extractor {
	return &Extractor{selectors: selectors}
}

// Extract runs every field extractor against the document and assembles
// the result. No extractor's miss aborts the others: a field whose anchor
// node is absent comes back nil (scalars) or empty (collections), and a
// sparse record is a valid result, not an error.
func (e *Extractor) Extract(doc *document.Document, pageURL string, opts Options) *models.ProductRecord {
	record := models.NewProductRecord(pageURL)

	record.ID = e.extractID(doc)
	record.Name = e.extractName(doc)
	record.Price = e.extractPrice(doc)
	record.Rating = e.extractRating(doc)
	record.Description = e.extractDescription(doc, opts.AsHTML)
	record.Breadcrumbs = e.extractBreadcrumbs(doc)
	record.Images = e.extractImages(doc)
	record.Variations = e.extractVariations(doc)
	record.Specs = e.extractSpecs(doc)

	return record
}
