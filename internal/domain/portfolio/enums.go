package portfolio

type SkillCategory string

const (
	CategoryFrontend   SkillCategory = "Frontend"
	CategoryBackend    SkillCategory = "Backend"
	CategoryTools      SkillCategory = "Tools"
	CategorySoftSkills SkillCategory = "Soft Skills"
)

func (c SkillCategory) Valid() bool {
	switch c {
	case CategoryFrontend, CategoryBackend, CategoryTools, CategorySoftSkills:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "Full-time"
	EmploymentContract EmploymentType = "Contract"
	EmploymentRemote   EmploymentType = "Remote"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentContract, EmploymentRemote:
		return true
	}
	return false
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Toggle flips between dark and light.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
