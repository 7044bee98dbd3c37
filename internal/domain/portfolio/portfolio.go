package portfolio

import (
	"encoding/json"
	"errors"
	"slices"
)

type Section string

const (
	SectionProfile    Section = "profile"
	SectionProjects   Section = "projects"
	SectionSkills     Section = "skills"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionMessages   Section = "messages"
	SectionSettings   Section = "settings"
)

// Sections lists every top-level key of the document in serialization order.
var Sections = []Section{
	SectionProfile,
	SectionProjects,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionMessages,
	SectionSettings,
}

var ErrUnknownSection = errors.New("unknown section")

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", ErrUnknownSection
}

type Profile struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	About        string            `json:"about"`
	WhoIAm       string            `json:"whoIAm"`
	FullBio      string            `json:"fullBio"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	Location     string            `json:"location"`
	ProfileImage string            `json:"profileImage,omitempty"`
	ResumeURL    string            `json:"resumeUrl,omitempty"`
	Socials      map[string]string `json:"socials"`
}

type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Image       string   `json:"image"`
	Link        string   `json:"link"`
	GitHub      string   `json:"github,omitempty"`
	PDFData     string   `json:"pdfData,omitempty"`
	IsFeatured  bool     `json:"isFeatured"`
	IsVisible   bool     `json:"isVisible"`
}

type Skill struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Level       int           `json:"level"`
	Category    SkillCategory `json:"category"`
	Description string        `json:"description,omitempty"`
	IconURL     string        `json:"iconUrl,omitempty"`
}

type Experience struct {
	ID          string         `json:"id"`
	Company     string         `json:"company"`
	Role        string         `json:"role"`
	Period      string         `json:"period"`
	Location    string         `json:"location"`
	Type        EmploymentType `json:"type"`
	Description []string       `json:"description"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Period      string `json:"period"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
}

type VisitorMessage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Date    string `json:"date"`
	IsRead  bool   `json:"isRead"`
}

type Settings struct {
	SEOTitle                string `json:"seoTitle"`
	SEODescription          string `json:"seoDescription"`
	LogoURL                 string `json:"logoUrl,omitempty"`
	FooterText              string `json:"footerText"`
	CopyrightText           string `json:"copyrightText"`
	DesignCreditText        string `json:"designCreditText"`
	ShowInteractiveElements bool   `json:"showInteractiveElements"`
	Theme                   Theme  `json:"theme"`
	AdminUsername           string `json:"adminUsername"`
	AdminPassword           string `json:"adminPassword,omitempty"`
}

// Document is the whole portfolio: every section plus any top-level keys this version does
// not know about, which are carried through load and save untouched.
type Document struct {
	Profile    Profile          `json:"profile"`
	Projects   []Project        `json:"projects"`
	Skills     []Skill          `json:"skills"`
	Experience []Experience     `json:"experience"`
	Education  []Education      `json:"education"`
	Messages   []VisitorMessage `json:"messages"`
	Settings   Settings         `json:"settings"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Clone returns a copy that shares no mutable state with d.
func (d *Document) Clone() *Document {
	c := *d
	c.Profile.Socials = cloneMap(d.Profile.Socials)
	c.Projects = slices.Clone(d.Projects)
	for i := range c.Projects {
		c.Projects[i].Tags = slices.Clone(c.Projects[i].Tags)
	}
	c.Skills = slices.Clone(d.Skills)
	c.Experience = slices.Clone(d.Experience)
	for i := range c.Experience {
		c.Experience[i].Description = slices.Clone(c.Experience[i].Description)
	}
	c.Education = slices.Clone(d.Education)
	c.Messages = slices.Clone(d.Messages)
	if d.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return &c
}

// VisibleProjects is the public-facing project list.
func (d *Document) VisibleProjects() []Project {
	visible := make([]Project, 0, len(d.Projects))
	for _, p := range d.Projects {
		if p.IsVisible {
			visible = append(visible, p)
		}
	}
	return visible
}

func (d *Document) UnreadMessages() int {
	n := 0
	for _, m := range d.Messages {
		if !m.IsRead {
			n++
		}
	}
	return n
}

// Public returns what an unauthenticated visitor may see: hidden projects, messages and the
// admin credentials are removed.
func (d *Document) Public() *Document {
	p := d.Clone()
	p.Projects = p.VisibleProjects()
	p.Messages = []VisitorMessage{}
	p.Settings.AdminUsername = ""
	p.Settings.AdminPassword = ""
	p.Extra = nil
	return p
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
