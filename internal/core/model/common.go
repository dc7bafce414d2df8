package model

// Category identifiers. The set is fixed; only goals change.
const (
	CategoryWork    = "p-work"
	CategoryHealth  = "p-health"
	CategoryMind    = "p-mind"
	CategoryGrowth  = "p-growth"
	CategoryHome    = "p-home"
	CategorySocial  = "p-social"
	CategoryDigital = "p-digital"
	CategoryOther   = "p-other"
)

// CategoryIDPrefix is the shorthand prefix accepted by ResolveCategory ("work" -> "p-work").
const CategoryIDPrefix = "p-"

var defaultCategories = []Category{
	{ID: CategoryWork, Name: "🧑‍💻 Work & Productivity", Examples: "Deep work, meetings/calls, email/admin, learning, side projects, commuting for work"},
	{ID: CategoryHealth, Name: "🏃 Health & Fitness", Examples: "Exercise, walking, stretching, sports, sleep, healthy cooking"},
	{ID: CategoryMind, Name: "🧠 Mental Wellbeing", Examples: "Meditation, journaling, therapy, downtime, nature walks"},
	{ID: CategoryGrowth, Name: "📚 Personal Growth", Examples: "Reading, courses/classes, language learning, creative hobbies, podcasts"},
	{ID: CategoryHome, Name: "💸 Finance & Household", Examples: "Budgeting, chores/cleaning, laundry/cooking, groceries, errands/bills"},
	{ID: CategorySocial, Name: "👨‍👩‍👧 Social & Relationships", Examples: "Family/partner time, kids activities, friends, volunteering"},
	{ID: CategoryDigital, Name: "📱 Digital & Entertainment", Examples: "Screen time, TV/movies, gaming, news, browsing"},
	{ID: CategoryOther, Name: "🐾 Other / Custom", Examples: "Pet care, gardening, personal travel, hobbies, idle time"},
}

var defaultProjectNames = map[string]string{
	CategoryWork:    "General Work",
	CategoryHealth:  "General Fitness",
	CategoryMind:    "General Wellbeing",
	CategoryGrowth:  "General Growth",
	CategoryHome:    "General Household",
	CategorySocial:  "General Social",
	CategoryDigital: "General Digital",
	CategoryOther:   "General Other",
}

// DefaultCategories returns a fresh copy of the fixed taxonomy with no goals set.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// DefaultProjects seeds one general project per category, ids from newID.
func DefaultProjects(newID func() string) []Project {
	out := make([]Project, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		out = append(out, Project{ID: newID(), CategoryID: c.ID, Name: defaultProjectNames[c.ID]})
	}
	return out
}

// NewDefaultState is the first-run state: fixed categories plus seeded projects.
func NewDefaultState(newID func() string) State {
	return State{
		Categories:            DefaultCategories(),
		Projects:              DefaultProjects(newID),
		LastProjectByCategory: map[string]string{},
	}
}
