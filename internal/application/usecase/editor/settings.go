package editor

import (
	"fmt"
	"strings"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

type SettingsPatch struct {
	SEOTitle                *string          `json:"seoTitle"`
	SEODescription          *string          `json:"seoDescription"`
	LogoURL                 *string          `json:"logoUrl"`
	FooterText              *string          `json:"footerText"`
	CopyrightText           *string          `json:"copyrightText"`
	DesignCreditText        *string          `json:"designCreditText"`
	ShowInteractiveElements *bool            `json:"showInteractiveElements"`
	Theme                   *portfolio.Theme `json:"theme"`
	AdminUsername           *string          `json:"adminUsername"`
	// AdminPassword is stored as given; callers hash it first when they want a hash stored.
	AdminPassword *string `json:"adminPassword"`
}

func UpdateSettings(doc *portfolio.Document, patch SettingsPatch) (*portfolio.Document, error) {
	if patch.AdminUsername != nil && strings.TrimSpace(*patch.AdminUsername) == "" {
		return nil, apperror.NewInvalidInput("admin username must not be empty", nil)
	}
	s := doc.Settings
	setString(&s.SEOTitle, patch.SEOTitle)
	setString(&s.SEODescription, patch.SEODescription)
	setString(&s.LogoURL, patch.LogoURL)
	setString(&s.FooterText, patch.FooterText)
	setString(&s.CopyrightText, patch.CopyrightText)
	setString(&s.DesignCreditText, patch.DesignCreditText)
	setBool(&s.ShowInteractiveElements, patch.ShowInteractiveElements)
	setString(&s.AdminUsername, patch.AdminUsername)
	setString(&s.AdminPassword, patch.AdminPassword)
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	return ReplaceSection(doc, portfolio.SectionSettings, s)
}

func ToggleTheme(doc *portfolio.Document) (*portfolio.Document, error) {
	s := doc.Settings
	s.Theme = s.Theme.Toggle()
	return ReplaceSection(doc, portfolio.SectionSettings, s)
}

// normalizeSettings defaults an empty theme to dark and rejects unknown themes.
func normalizeSettings(s *portfolio.Settings) error {
	if s.Theme == "" {
		s.Theme = portfolio.ThemeDark
	}
	if !s.Theme.Valid() {
		return apperror.NewInvalidInput(fmt.Sprintf("unknown theme %q", s.Theme), nil)
	}
	return nil
}
