package editor

import (
	"fmt"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

const skillResource = "Skill"

func NewSkill() portfolio.Skill {
	return portfolio.Skill{Name: "New Skill", Level: 50, Category: portfolio.CategoryFrontend}
}

// AddSkill appends s to the skill list.
func AddSkill(doc *portfolio.Document, s portfolio.Skill) (*portfolio.Document, error) {
	skills, err := insertItem(portfolio.SectionSkills, doc.Skills, s, normalizeSkill, false)
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionSkills, skills)
}

type SkillPatch struct {
	Name        *string                  `json:"name"`
	Level       *int                     `json:"level"`
	Category    *portfolio.SkillCategory `json:"category"`
	Description *string                  `json:"description"`
	IconURL     *string                  `json:"iconUrl"`
}

func UpdateSkill(doc *portfolio.Document, id string, patch SkillPatch) (*portfolio.Document, error) {
	skills, err := replaceByID(doc.Skills, id, skillResource, func(s portfolio.Skill) (portfolio.Skill, error) {
		setString(&s.Name, patch.Name)
		setString(&s.Description, patch.Description)
		setString(&s.IconURL, patch.IconURL)
		if patch.Level != nil {
			s.Level = *patch.Level
		}
		if patch.Category != nil {
			s.Category = *patch.Category
		}
		return s, normalizeSkill(&s)
	})
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionSkills, skills)
}

func DeleteSkill(doc *portfolio.Document, id string) (*portfolio.Document, error) {
	return setSection(doc, portfolio.SectionSkills, deleteByID(doc.Skills, id))
}

// normalizeSkill clamps the level to 0..100, defaults an empty category to Frontend and rejects
// categories outside the fixed set.
func normalizeSkill(s *portfolio.Skill) error {
	s.Level = ClampLevel(s.Level)
	if s.Category == "" {
		s.Category = portfolio.CategoryFrontend
	}
	if !s.Category.Valid() {
		return apperror.NewInvalidInput(fmt.Sprintf("unknown skill category %q", s.Category), nil)
	}
	return nil
}

func ClampLevel(level int) int {
	return min(max(level, 0), 100)
}
