package editor

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
)

const projectResource = "Project"

// NewProject is the draft a fresh "add project" starts from.
func NewProject() portfolio.Project {
	return portfolio.Project{
		Title:       "New Project",
		Description: "Project description...",
		Tags:        []string{"React"},
		Image:       "https://picsum.photos/800/600",
		Link:        "#",
		IsFeatured:  false,
		IsVisible:   true,
	}
}

// AddProject puts p at the front of the project list. A missing id is generated.
func AddProject(doc *portfolio.Document, p portfolio.Project) (*portfolio.Document, error) {
	projects, err := insertItem(portfolio.SectionProjects, doc.Projects, p, normalizeProject, true)
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionProjects, projects)
}

type ProjectPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Image       *string  `json:"image"`
	Link        *string  `json:"link"`
	GitHub      *string  `json:"github"`
	PDFData     *string  `json:"pdfData"`
	IsFeatured  *bool    `json:"isFeatured"`
	IsVisible   *bool    `json:"isVisible"`
}

func UpdateProject(doc *portfolio.Document, id string, patch ProjectPatch) (*portfolio.Document, error) {
	return editProject(doc, id, func(p portfolio.Project) portfolio.Project {
		setString(&p.Title, patch.Title)
		setString(&p.Description, patch.Description)
		setString(&p.Image, patch.Image)
		setString(&p.Link, patch.Link)
		setString(&p.GitHub, patch.GitHub)
		setString(&p.PDFData, patch.PDFData)
		setBool(&p.IsFeatured, patch.IsFeatured)
		setBool(&p.IsVisible, patch.IsVisible)
		if patch.Tags != nil {
			p.Tags = slices.Clone(patch.Tags)
		}
		return p
	})
}

func DeleteProject(doc *portfolio.Document, id string) (*portfolio.Document, error) {
	return setSection(doc, portfolio.SectionProjects, deleteByID(doc.Projects, id))
}

func SetProjectVisibility(doc *portfolio.Document, id string, visible bool) (*portfolio.Document, error) {
	return editProject(doc, id, func(p portfolio.Project) portfolio.Project {
		p.IsVisible = visible
		return p
	})
}

func ToggleProjectFeatured(doc *portfolio.Document, id string) (*portfolio.Document, error) {
	return editProject(doc, id, func(p portfolio.Project) portfolio.Project {
		p.IsFeatured = !p.IsFeatured
		return p
	})
}

// SetProjectDocument attaches a PDF reference (URL or data URL) to the project.
func SetProjectDocument(doc *portfolio.Document, id, ref string) (*portfolio.Document, error) {
	return editProject(doc, id, func(p portfolio.Project) portfolio.Project {
		p.PDFData = ref
		return p
	})
}

func editProject(doc *portfolio.Document, id string, fn func(portfolio.Project) portfolio.Project) (*portfolio.Document, error) {
	projects, err := replaceByID(doc.Projects, id, projectResource, func(p portfolio.Project) (portfolio.Project, error) {
		p.Tags = slices.Clone(p.Tags)
		p = fn(p)
		return p, normalizeProject(&p)
	})
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionProjects, projects)
}

func normalizeProject(p *portfolio.Project) error {
	p.Tags = uniqueTags(p.Tags)
	return nil
}

// uniqueTags trims tags and drops blanks and repeats, keeping first-seen order.
func uniqueTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || !seen.Add(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
