package models

// SampleIDPrefix marks the fixed identifiers of the offline dataset.
const SampleIDPrefix = "sg-"

func strPtr(s string) *string { return &s }

var sampleGems = []Gem{
	{
		ID:            "sg-1",
		Name:          "Imperial Ruby",
		Type:          "Ruby",
		Weight:        2.5,
		Price:         12500,
		Description:   "A vivid pigeon-blood ruby with exceptional clarity.",
		Certification: strPtr("GIA Certified"),
		Image:         strPtr("https://images.unsplash.com/photo-1603575449299-0b6b76f946e6?q=80&w=1200&auto=format&fit=crop"),
		Gallery: []string{
			"https://images.unsplash.com/photo-1603575449299-0b6b76f946e6?q=80&w=1200&auto=format&fit=crop",
			"https://images.unsplash.com/photo-1618220179428-22790b87a013?q=80&w=1200&auto=format&fit=crop",
		},
	},
	{
		ID:            "sg-2",
		Name:          "Azure Sapphire",
		Type:          "Sapphire",
		Weight:        3.1,
		Price:         9800,
		Description:   "Deep blue Ceylon sapphire with royal luster.",
		Certification: strPtr("GIA Certified"),
		Image:         strPtr("https://images.unsplash.com/photo-1603570404763-47b3a1e3898d?q=80&w=1200&auto=format&fit=crop"),
		Gallery:       []string{},
	},
	{
		ID:            "sg-3",
		Name:          "Verdant Emerald",
		Type:          "Emerald",
		Weight:        4.2,
		Price:         15200,
		Description:   "Colombian emerald with rich green saturation.",
		Certification: strPtr("IGI Certified"),
		Image:         strPtr("https://images.unsplash.com/photo-1615678857339-4e7a1d870265?q=80&w=1200&auto=format&fit=crop"),
		Gallery:       []string{},
	},
	{
		ID:          "sg-4",
		Name:        "Golden Topaz",
		Type:        "Topaz",
		Weight:      5.0,
		Price:       4200,
		Description: "Honey gold topaz with brilliant facets.",
		Image:       strPtr("https://images.unsplash.com/photo-1560891780-87d88ab4add0?q=80&w=1200&auto=format&fit=crop"),
		Gallery:     []string{},
	},
	{
		ID:          "sg-5",
		Name:        "Amethyst Royale",
		Type:        "Amethyst",
		Weight:      6.3,
		Price:       2100,
		Description: "Regal purple amethyst with superb clarity.",
		Image:       strPtr("https://images.unsplash.com/photo-1609250291995-9cfb68f2915e?q=80&w=1200&auto=format&fit=crop"),
		Gallery:     []string{},
	},
	{
		ID:            "sg-6",
		Name:          "Crystalline Diamond",
		Type:          "Diamond",
		Weight:        1.3,
		Price:         22500,
		Description:   "Brilliant-cut diamond with fire and scintillation.",
		Certification: strPtr("GIA Certified"),
		Image:         strPtr("https://images.unsplash.com/photo-1602526432604-c8586b197fd1?q=80&w=1200&auto=format&fit=crop"),
		Gallery:       []string{},
	},
}

// SampleGems returns a fresh copy of the offline dataset.
func SampleGems() []Gem {
	out := make([]Gem, len(sampleGems))
	for i, g := range sampleGems {
		out[i] = g.Clone()
	}
	return out
}
