package catalog

// DefaultProducts is the built-in catalog used when no snapshot has been
// persisted yet (fresh install, wiped slot, or unparsable data).
func DefaultProducts() []Product {
	return []Product{
		{
			ID:             "p_aurora-veil",
			Title:          "Aurora Veil",
			Description:    "Sweeping abstract of northern light over dark water, printed on archival matte.",
			ImageURL:       "https://images.divinedazzle.art/aurora-veil.jpg",
			RoomPreviewURL: "https://images.divinedazzle.art/aurora-veil-room.jpg",
			IsActive:       true,
			Sizes: []SizeVariant{
				{ID: "s_aurora-18", Width: 24, Height: 18, Depth: 1.5, Price: 199.99, AffiliateLink: "https://partner.example.com/aurora-veil-24x18"},
				{ID: "s_aurora-24", Width: 36, Height: 24, Depth: 1.5, Price: 289.99, AffiliateLink: "https://partner.example.com/aurora-veil-36x24"},
			},
		},
		{
			ID:             "p_gilded-meridian",
			Title:          "Gilded Meridian",
			Description:    "Geometric gold-leaf lines crossing a deep indigo field.",
			ImageURL:       "https://images.divinedazzle.art/gilded-meridian.jpg",
			RoomPreviewURL: "https://images.divinedazzle.art/gilded-meridian-room.jpg",
			IsActive:       true,
			Sizes: []SizeVariant{
				{ID: "s_meridian-18", Width: 18, Height: 24, Depth: 1.5, Price: 179.99, AffiliateLink: "https://partner.example.com/gilded-meridian-18x24"},
			},
		},
		{
			ID:             "p_sable-coast",
			Title:          "Sable Coast",
			Description:    "Monochrome shoreline panorama, long-exposure surf against basalt cliffs.",
			ImageURL:       "https://images.divinedazzle.art/sable-coast.jpg",
			RoomPreviewURL: "https://images.divinedazzle.art/sable-coast-room.jpg",
			IsActive:       true,
			Sizes: []SizeVariant{
				{ID: "s_coast-12", Width: 36, Height: 12, Depth: 1.5, Price: 249.99, AffiliateLink: "https://partner.example.com/sable-coast-36x12"},
				{ID: "s_coast-16", Width: 48, Height: 16, Depth: 1.5, Price: 329.99, AffiliateLink: "https://partner.example.com/sable-coast-48x16"},
			},
		},
	}
}
