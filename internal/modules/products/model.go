package products

// Product carries both list price and offer price; the storefront shows
// offerPrice when specialOffer is set and the cart snapshots whichever was
// effective at add time.
type Product struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	OfferPrice   float64  `json:"offerPrice"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	Videos       []string `json:"videos"`
	SpecialOffer bool     `json:"specialOffer"`
}

// EffectivePrice is the unit price a buyer actually pays.
func (p Product) EffectivePrice() float64 {
	if p.SpecialOffer && p.OfferPrice > 0 {
		return p.OfferPrice
	}
	return p.Price
}
