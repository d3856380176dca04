package extractor

import (
	"strconv"

	"github.com/maltedev/marketplace-product-extractor/internal/document"
)

// Each scalar extractor maps one page fragment to one product field. A
// missing anchor node always yields nil, never an empty string or a zero
// value, so callers can tell "not on the page" from "present but empty".

func (e *Extractor) extractID(doc *document.Document) *string {
	id, ok := doc.AttrOfFirst(e.selectors.ItemID, "value")
	if !ok {
		return nil
	}
	return &id
}

func (e *Extractor) extractName(doc *document.Document) *string {
	name, ok := doc.TextOfFirst(e.selectors.Title)
	if !ok {
		return nil
	}
	return &name
}

// extractPrice reconstructs the price from the integer and cents fragments
// the page renders as adjacent elements. Both fragments must be present;
// a lone "49" or "90" would otherwise round-trip as the malformed "49." or
// ".90". Text that fails decimal parsing also yields nil.
func (e *Extractor) extractPrice(doc *document.Document) *float64 {
	whole, ok := doc.TextOfFirst(e.selectors.PriceWhole)
	if !ok {
		return nil
	}
	cents, ok := doc.TextOfFirst(e.selectors.PriceCents)
	if !ok {
		return nil
	}

	price, err := strconv.ParseFloat(whole+"."+cents, 64)
	if err != nil || price < 0 {
		return nil
	}
	return &price
}

func (e *Extractor) extractRating(doc *document.Document) *float64 {
	text, ok := doc.TextOfFirst(e.selectors.Rating)
	if !ok {
		return nil
	}
	rating, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &rating
}

// extractDescription returns the description container's inner markup when
// asHTML is set, its plain text otherwise.
func (e *Extractor) extractDescription(doc *document.Document, asHTML bool) *string {
	var desc string
	var ok bool
	if asHTML {
		desc, ok = doc.HTMLOfFirst(e.selectors.Description)
	} else {
		desc, ok = doc.TextOfFirst(e.selectors.Description)
	}
	if !ok {
		return nil
	}
	return &desc
}
