package matcher

// Alumni returns the built-in alumni population.
func Alumni() []Candidate {
	out := make([]Candidate, len(alumni))
	for i, c := range alumni {
		c.LikedVenues = append([]string(nil), c.LikedVenues...)
		out[i] = c
	}
	return out
}

var alumni = []Candidate{
	{
		ID: 1, Name: "Maya Chen", Graduation: 2021, School: "Stanford", Major: "Computer Science",
		Role:        "Product Manager @ Notion",
		Avatar:      "https://i.pravatar.cc/150?img=1",
		Bio:         "Building tools for thought. Always up for talking product strategy over a pour-over.",
		LikedVenues: []string{"ritual_coffee", "sightglass", "blue_bottle", "four_barrel"},
		LinkedIn:    "linkedin.com/in/mayachen",
		Email:       "maya.chen@example.com",
	},
	{
		ID: 2, Name: "Jordan Park", Graduation: 2020, School: "UC Berkeley", Major: "Business Administration",
		Role:        "Startup Founder @ TechBridge",
		Avatar:      "https://i.pravatar.cc/150?img=3",
		Bio:         "Second-time founder connecting students with mentors. Happy to talk fundraising.",
		LikedVenues: []string{"ritual_coffee", "verve", "sightglass", "equator"},
		LinkedIn:    "linkedin.com/in/jordanpark",
		Email:       "jordan.park@example.com",
	},
	{
		ID: 3, Name: "Priya Sharma", Graduation: 2022, School: "MIT", Major: "Electrical Engineering",
		Role:        "ML Engineer @ OpenAI",
		Avatar:      "https://i.pravatar.cc/150?img=5",
		Bio:         "Training models by day, pulling espresso shots by weekend.",
		LikedVenues: []string{"blue_bottle", "four_barrel", "philz", "ritual_coffee"},
		LinkedIn:    "linkedin.com/in/priyasharma",
		Email:       "priya.sharma@example.com",
	},
	{
		ID: 4, Name: "Marcus Johnson", Graduation: 2019, School: "Harvard", Major: "Economics",
		Role:        "Investment Analyst @ Sequoia",
		Avatar:      "https://i.pravatar.cc/150?img=8",
		Bio:         "Early-stage investing, market maps and strong opinions about cold brew.",
		LikedVenues: []string{"sightglass", "equator", "verve", "philz"},
		LinkedIn:    "linkedin.com/in/marcusjohnson",
		Email:       "marcus.johnson@example.com",
	},
	{
		ID: 5, Name: "Sofia Reyes", Graduation: 2023, School: "Columbia", Major: "Journalism & Media",
		Role:        "UX Writer @ Airbnb",
		Avatar:      "https://i.pravatar.cc/150?img=9",
		Bio:         "Words for interfaces. Ask me about breaking into content design.",
		LikedVenues: []string{"philz", "ritual_coffee", "blue_bottle", "verve"},
		LinkedIn:    "linkedin.com/in/sofiareyes",
		Email:       "sofia.reyes@example.com",
	},
	{
		ID: 6, Name: "Alex Kim", Graduation: 2020, School: "Carnegie Mellon", Major: "HCI",
		Role:        "Senior Designer @ Figma",
		Avatar:      "https://i.pravatar.cc/150?img=12",
		Bio:         "Design systems nerd. Portfolio reviews welcome.",
		LikedVenues: []string{"four_barrel", "sightglass", "blue_bottle", "ritual_coffee"},
		LinkedIn:    "linkedin.com/in/alexkim",
		Email:       "alex.kim@example.com",
	},
	{
		ID: 7, Name: "Tara Williams", Graduation: 2018, School: "Yale", Major: "Political Science",
		Role:        "Policy Advisor @ US Senate",
		Avatar:      "https://i.pravatar.cc/150?img=20",
		Bio:         "Tech policy and public service. Glad to talk careers in government.",
		LikedVenues: []string{"equator", "ritual_coffee", "verve", "sightglass"},
		LinkedIn:    "linkedin.com/in/tarawilliams",
		Email:       "tara.williams@example.com",
	},
	{
		ID: 8, Name: "Devon Torres", Graduation: 2021, School: "UCLA", Major: "Film & Media Studies",
		Role:        "Content Strategist @ Netflix",
		Avatar:      "https://i.pravatar.cc/150?img=15",
		Bio:         "Storytelling at scale. Coffee chats about media careers any time.",
		LikedVenues: []string{"philz", "verve", "equator", "four_barrel"},
		LinkedIn:    "linkedin.com/in/devontorres",
		Email:       "devon.torres@example.com",
	},
}
