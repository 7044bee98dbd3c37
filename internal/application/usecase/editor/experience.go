package editor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

const experienceResource = "Experience"

func NewExperience() portfolio.Experience {
	return portfolio.Experience{
		Company:     "Company Name",
		Role:        "Job Role",
		Period:      "Start - End",
		Location:    "Location",
		Type:        portfolio.EmploymentFullTime,
		Description: []string{"Main achievement..."},
	}
}

func AddExperience(doc *portfolio.Document, e portfolio.Experience) (*portfolio.Document, error) {
	list, err := insertItem(portfolio.SectionExperience, doc.Experience, e, normalizeExperience, true)
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionExperience, list)
}

type ExperiencePatch struct {
	Company     *string                   `json:"company"`
	Role        *string                   `json:"role"`
	Period      *string                   `json:"period"`
	Location    *string                   `json:"location"`
	Type        *portfolio.EmploymentType `json:"type"`
	Description []string                  `json:"description"`
	// DescriptionText is the multi-line editor form: one bullet per non-blank line.
	DescriptionText *string `json:"descriptionText"`
}

func UpdateExperience(doc *portfolio.Document, id string, patch ExperiencePatch) (*portfolio.Document, error) {
	list, err := replaceByID(doc.Experience, id, experienceResource, func(e portfolio.Experience) (portfolio.Experience, error) {
		setString(&e.Company, patch.Company)
		setString(&e.Role, patch.Role)
		setString(&e.Period, patch.Period)
		setString(&e.Location, patch.Location)
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		switch {
		case patch.DescriptionText != nil:
			e.Description = DescriptionLines(*patch.DescriptionText)
		case patch.Description != nil:
			e.Description = slices.Clone(patch.Description)
		default:
			e.Description = slices.Clone(e.Description)
		}
		return e, normalizeExperience(&e)
	})
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionExperience, list)
}

func DeleteExperience(doc *portfolio.Document, id string) (*portfolio.Document, error) {
	return setSection(doc, portfolio.SectionExperience, deleteByID(doc.Experience, id))
}

// DescriptionLines splits text on newlines and drops blank lines.
func DescriptionLines(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

func normalizeExperience(e *portfolio.Experience) error {
	if e.Type == "" {
		e.Type = portfolio.EmploymentFullTime
	}
	if !e.Type.Valid() {
		return apperror.NewInvalidInput(fmt.Sprintf("unknown employment type %q", e.Type), nil)
	}
	if e.Description == nil {
		e.Description = []string{}
	}
	return nil
}
