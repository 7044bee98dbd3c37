package editor

import (
	"maps"
	"strings"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

// ProfilePatch changes only the fields that are set.
type ProfilePatch struct {
	Name         *string           `json:"name"`
	Title        *string           `json:"title"`
	About        *string           `json:"about"`
	WhoIAm       *string           `json:"whoIAm"`
	FullBio      *string           `json:"fullBio"`
	Email        *string           `json:"email"`
	Phone        *string           `json:"phone"`
	Location     *string           `json:"location"`
	ProfileImage *string           `json:"profileImage"`
	ResumeURL    *string           `json:"resumeUrl"`
	Socials      map[string]string `json:"socials"`
}

func UpdateProfile(doc *portfolio.Document, patch ProfilePatch) (*portfolio.Document, error) {
	p := doc.Profile
	p.Socials = maps.Clone(doc.Profile.Socials)

	setString(&p.Name, patch.Name)
	setString(&p.Title, patch.Title)
	setString(&p.About, patch.About)
	setString(&p.WhoIAm, patch.WhoIAm)
	setString(&p.FullBio, patch.FullBio)
	setString(&p.Email, patch.Email)
	setString(&p.Phone, patch.Phone)
	setString(&p.Location, patch.Location)
	setString(&p.ProfileImage, patch.ProfileImage)
	setString(&p.ResumeURL, patch.ResumeURL)
	if patch.Socials != nil {
		if p.Socials == nil {
			p.Socials = make(map[string]string, len(patch.Socials))
		}
		for k, v := range patch.Socials {
			p.Socials[k] = v
		}
	}
	return ReplaceSection(doc, portfolio.SectionProfile, p)
}

// SetSocialLink sets one social URL. An empty url removes the platform.
func SetSocialLink(doc *portfolio.Document, platform, url string) (*portfolio.Document, error) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return nil, apperror.NewInvalidInput("social platform is required", nil)
	}
	p := doc.Profile
	p.Socials = maps.Clone(doc.Profile.Socials)
	if p.Socials == nil {
		p.Socials = map[string]string{}
	}
	if url == "" {
		delete(p.Socials, platform)
	} else {
		p.Socials[platform] = url
	}
	return ReplaceSection(doc, portfolio.SectionProfile, p)
}

// SetProfileImage stores an image reference: a URL or a data URL.
func SetProfileImage(doc *portfolio.Document, ref string) (*portfolio.Document, error) {
	return UpdateProfile(doc, ProfilePatch{ProfileImage: &ref})
}

// SetResume stores the resume reference: a URL or a data URL.
func SetResume(doc *portfolio.Document, ref string) (*portfolio.Document, error) {
	return UpdateProfile(doc, ProfilePatch{ResumeURL: &ref})
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
