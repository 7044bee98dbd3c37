package portfolio

// Default returns a fresh copy of the seed document.
func Default() *Document {
	return &Document{
		Profile: Profile{
			Name:     "Mohammed Rashed",
			Title:    "Senior Frontend Architect",
			About:    "Crafting high-performance, accessible, and beautiful web experiences.",
			WhoIAm:   "A developer passionate about clean code and user-centric design.",
			FullBio:  "I specialize in building complex React ecosystems and exploring the intersection of AI and user interfaces. With over 8 years of experience in the industry, I have led teams at Fortune 500 companies and startups alike to deliver scalable, pixel-perfect solutions.",
			Email:    "onlinscap@gamil.com",
			Phone:    "+7 (780) 093-979",
			Location: "Sana'a, Yemen",
			Socials: map[string]string{
				"github":    "https://github.com",
				"linkedin":  "https://linkedin.com",
				"twitter":   "https://twitter.com",
				"instagram": "https://instagram.com",
			},
		},
		Projects: []Project{
			{
				ID:          "1",
				Title:       "Nexus AI Platform",
				Description: "A full-stack collaborative platform for LLM prompt engineering and workflow automation.",
				Tags:        []string{"Next.js", "TypeScript", "Prisma", "Tailwind"},
				Image:       "https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&q=80&w=800",
				Link:        "#",
				GitHub:      "#",
				IsFeatured:  true,
				IsVisible:   true,
			},
			{
				ID:          "2",
				Title:       "Quantum Dashboard",
				Description: "Real-time financial analytics engine with advanced WebGL visualizations.",
				Tags:        []string{"React", "Three.js", "Redux", "D3.js"},
				Image:       "https://images.unsplash.com/photo-1551288049-bbdac8a28a1e?auto=format&fit=crop&q=80&w=800",
				Link:        "#",
				GitHub:      "#",
				IsFeatured:  true,
				IsVisible:   true,
			},
		},
		Skills: []Skill{
			{ID: "s1", Name: "React / Next.js", Level: 98, Category: CategoryFrontend, Description: "Advanced component architecture and server-side rendering."},
			{ID: "s2", Name: "TypeScript", Level: 95, Category: CategoryFrontend, Description: "Strong typing and complex generic patterns."},
			{ID: "s3", Name: "Node.js", Level: 88, Category: CategoryBackend, Description: "Scalable API development and microservices."},
			{ID: "s4", Name: "UI/UX Design", Level: 90, Category: CategorySoftSkills, Description: "User-centered design principles and prototyping."},
			{ID: "s5", Name: "System Design", Level: 85, Category: CategoryTools, Description: "Cloud architecture and performance optimization."},
		},
		Experience: []Experience{
			{
				ID:       "e1",
				Company:  "TechFlow Systems",
				Role:     "Senior Frontend Architect",
				Period:   "Jan 2021 - Present",
				Location: "Sanaa, Al-Andalus University, Dar es Salaam",
				Type:     EmploymentFullTime,
				Description: []string{
					"Architected a modular micro-frontend ecosystem using Module Federation, reducing build times by 60%.",
					"Led a team of 12 engineers to ship the flagship SaaS product, resulting in a 35% increase in user retention.",
					"Established engineering standards for accessibility (WCAG 2.1) and performance across the organization.",
				},
			},
			{
				ID:       "e2",
				Company:  "Innovate Digital",
				Role:     "Full Stack Engineer",
				Period:   "Jun 2018 - Dec 2020",
				Location: "Sanaa/Khawlan/Al-Gharas,",
				Type:     EmploymentFullTime,
				Description: []string{
					"Developed real-time collaboration features using WebSockets and CRDTs for a design tool.",
					"Optimized database queries in PostgreSQL, improving API response times by 45%.",
					"Built and maintained a custom internal component library used by 5 different product teams.",
				},
			},
		},
		Education: []Education{
			{ID: "edu1", Institution: "University of Andalusia", Degree: "Master of Science", Field: "Computer Information Technology", Period: "2018 - 2022", Location: "sanaa, darsaalm"},
			{ID: "edu2", Institution: "Khalid Bin Al-Walid School", Degree: "Distinction", Field: "General Secondary Education", Period: "2015 - 2016", Location: "Khawlan L-Ghars"},
		},
		Messages: []VisitorMessage{},
		Settings: Settings{
			SEOTitle:                "Mohammed Rashed | Senior Frontend Architect",
			SEODescription:          "Professional Portfolio of Mohammed Rashid, specializing in high-performance web applications and AI interfaces.",
			FooterText:              "Crafted with precision using modern web standards.",
			CopyrightText:           "Mohammed Rashed 2026",
			DesignCreditText:        "Premium Developer Portfolio",
			ShowInteractiveElements: true,
			Theme:                   ThemeDark,
			AdminUsername:           "user",
			AdminPassword:           "password",
		},
	}
}
