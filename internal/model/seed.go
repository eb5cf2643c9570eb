package model

// SeedImages is the gallery shown on first visit.
func SeedImages() []Image {
	return []Image{
		{ID: 1, Src: "https://images.unsplash.com/photo-1518770660439-4636190af475?w=800&h=600&fit=crop", Name: "Circuit Board", Description: "Macro shot of a green circuit board", Category: CategoryTech, Width: 800, Height: 600},
		{ID: 2, Src: "https://images.unsplash.com/photo-1541701494587-cb58502866ab?w=800&h=600&fit=crop", Name: "Fluid Colors", Description: "Abstract paint swirls", Category: CategoryAbstract, Width: 800, Height: 600},
		{ID: 3, Src: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=800&h=1000&fit=crop", Name: "Studio Portrait", Description: "Low-key studio light", Category: CategoryPortraits, Width: 800, Height: 1000},
		{ID: 4, Src: "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=800&h=600&fit=crop", Name: "Cyber Grid", Description: "Neon network visualisation", Category: CategoryTech, Width: 800, Height: 600},
		{ID: 5, Src: "https://images.unsplash.com/photo-1557672172-298e090bd0f1?w=800&h=600&fit=crop", Name: "Gradient Waves", Description: "Soft gradient waves", Category: CategoryAbstract, Width: 800, Height: 600},
		{ID: 6, Src: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=800&h=1000&fit=crop", Alt: "Street Portrait", Category: CategoryPortraits, Width: 800, Height: 1000},
	}
}

func SeedProjects() []Project {
	return []Project{
		{
			ID:          1,
			Name:        "Babazon E-commerce",
			Screenshot:  "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=500&fit=crop",
			Description: "Amazon-like app with MongoDB + Stripe integration for payments",
			Tech:        []string{"Next.js", "Tailwind", "MongoDB"},
		},
		{
			ID:          2,
			Name:        "AI Tools Directory",
			Screenshot:  "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=800&h=500&fit=crop",
			Description: "Curated AI tools with search filters and category organization",
			Tech:        []string{"Next.js", "Tailwind"},
		},
		{
			ID:          3,
			Name:        "Baba_Quotes_Gen",
			Screenshot:  "https://images.unsplash.com/photo-1618063814375-f4d7e63dd1d3?w=800&h=500&fit=crop",
			Description: "Quote generator with smooth animations and unlimited generations",
			Tech:        []string{"React", "Tailwind"},
		},
	}
}

func SeedPosts() []Post {
	return []Post{
		{ID: 1, Title: "Building BabaGallery with Next.js 15", Excerpt: "How this photo gallery + landing page was designed for a techy, dark aesthetic.", Date: "2026-01-08"},
		{ID: 2, Title: "Babazon – Planning an Amazon-like App", Excerpt: "Breaking a huge idea into small, buildable features for BCA students.", Date: "2026-01-05"},
		{ID: 3, Title: "Organizing BCA Projects in a Portfolio", Excerpt: "Tips to turn your semester projects into a professional online presence.", Date: "2026-01-03"},
	}
}
