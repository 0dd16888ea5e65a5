package catalog

import "github.com/google/uuid"

// SizeVariant is one purchasable configuration of a product. Dimensions are
// inches by convention; Price is the display price in the shop currency.
type SizeVariant struct {
	ID            string  `json:"id"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Depth         float64 `json:"depth"`
	Price         float64 `json:"price"`
	AffiliateLink string  `json:"affiliateLink"`
}

// Product is one catalog entry. A product with no sizes is still valid and
// is rendered as unavailable. Inactive products stay in storage but are
// excluded from the public listing.
//
// The JSON field names are the persisted snapshot layout; renaming them
// breaks decoding of previously saved catalogs.
type Product struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"imageUrl"`
	RoomPreviewURL string        `json:"roomPreviewUrl"`
	IsActive       bool          `json:"isActive"`
	Sizes          []SizeVariant `json:"sizes"`
}

// ProductPatch is a partial product update. Nil fields are left untouched.
// Sizes, when set, replaces the whole size list.
type ProductPatch struct {
	Title          *string        `json:"title,omitempty"`
	Description    *string        `json:"description,omitempty"`
	ImageURL       *string        `json:"imageUrl,omitempty"`
	RoomPreviewURL *string        `json:"roomPreviewUrl,omitempty"`
	IsActive       *bool          `json:"isActive,omitempty"`
	Sizes          *[]SizeVariant `json:"sizes,omitempty"`
}

// SizePatch is a partial size-variant update. Nil fields are left untouched.
type SizePatch struct {
	Width         *float64 `json:"width,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Depth         *float64 `json:"depth,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	AffiliateLink *string  `json:"affiliateLink,omitempty"`
}

func NewProductID() string { return "p_" + uuid.NewString() }

func NewSizeID() string { return "s_" + uuid.NewString() }

func (p Product) clone() Product {
	out := p
	if p.Sizes != nil {
		out.Sizes = make([]SizeVariant, len(p.Sizes))
		copy(out.Sizes, p.Sizes)
	}
	return out
}

func cloneAll(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.clone()
	}
	return out
}

func (p *ProductPatch) apply(dst *Product) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.ImageURL != nil {
		dst.ImageURL = *p.ImageURL
	}
	if p.RoomPreviewURL != nil {
		dst.RoomPreviewURL = *p.RoomPreviewURL
	}
	if p.IsActive != nil {
		dst.IsActive = *p.IsActive
	}
	if p.Sizes != nil {
		dst.Sizes = append([]SizeVariant(nil), (*p.Sizes)...)
	}
}

func (p *SizePatch) apply(dst *SizeVariant) {
	if p.Width != nil {
		dst.Width = *p.Width
	}
	if p.Height != nil {
		dst.Height = *p.Height
	}
	if p.Depth != nil {
		dst.Depth = *p.Depth
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.AffiliateLink != nil {
		dst.AffiliateLink = *p.AffiliateLink
	}
}
