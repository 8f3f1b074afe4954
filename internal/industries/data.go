package industries

// Default returns the built-in industry catalog.
func Default() *Catalog {
	return NewCatalog(defaultIndustries)
}

var defaultIndustries = []Industry{
	{
		ID:   "tech",
		Name: "Technology",
		SubIndustries: []string{
			"Software Development", "IT Services", "Cybersecurity", "Cloud Computing",
			"Artificial Intelligence/Machine Learning", "Data Science & Analytics",
			"Internet & Web Services", "Robotics", "Quantum Computing", "Blockchain & Cryptocurrency",
			"IoT (Internet of Things)", "Virtual Reality/Augmented Reality", "Semiconductor",
		},
	},
	{
		ID:   "finance",
		Name: "Financial Services",
		SubIndustries: []string{
			"Banking", "Investment Banking", "Insurance", "FinTech", "Wealth Management",
			"Asset Management", "Real Estate Investment", "Private Equity", "Venture Capital",
			"Cryptocurrency & Digital Assets", "Payment Processing",
		},
	},
	{
		ID:   "healthcare",
		Name: "Healthcare & Life Sciences",
		SubIndustries: []string{
			"Pharmaceuticals", "Biotechnology", "Medical Devices", "Healthcare Services",
			"Digital Health", "Telemedicine", "Health Insurance", "Mental Health Services",
			"Genomics", "Clinical Research",
		},
	},
	{
		ID:   "manufacturing",
		Name: "Manufacturing & Industrial",
		SubIndustries: []string{
			"Automotive", "Aerospace & Defense", "Electronics", "Industrial Automation",
			"Chemical Manufacturing", "Consumer Goods", "Machinery", "Textiles", "Food & Beverage Production",
		},
	},
	{
		ID:   "retail",
		Name: "Retail & E-commerce",
		SubIndustries: []string{
			"E-commerce", "Fashion & Apparel", "Grocery", "Consumer Electronics",
			"Luxury Goods", "Home & Garden", "Sporting Goods", "Direct-to-Consumer",
		},
	},
	{
		ID:   "media",
		Name: "Media & Entertainment",
		SubIndustries: []string{
			"Digital Media", "Gaming", "Film & Television", "Music", "Publishing",
			"Advertising", "Social Media", "Streaming Services", "News & Journalism",
		},
	},
	{
		ID:   "education",
		Name: "Education & Training",
		SubIndustries: []string{
			"EdTech", "Higher Education", "K-12 Education", "Corporate Training",
			"Online Learning", "Language Learning", "Test Preparation", "Early Childhood Education",
		},
	},
	{
		ID:   "energy",
		Name: "Energy & Utilities",
		SubIndustries: []string{
			"Renewable Energy", "Oil & Gas", "Nuclear Energy", "Electric Utilities",
			"Clean Technology", "Energy Storage", "Water Utilities", "Smart Grid",
		},
	},
	{
		ID:   "consulting",
		Name: "Professional Services",
		SubIndustries: []string{
			"Management Consulting", "IT Consulting", "Legal Services", "Accounting",
			"Human Resources", "Marketing Services", "Architecture", "Engineering Services",
		},
	},
	{
		ID:   "telecom",
		Name: "Telecommunications",
		SubIndustries: []string{
			"Wireless Communications", "Network Infrastructure", "Telecom Services",
			"Satellite Communications", "5G Technology", "Fiber Optics",
		},
	},
}
