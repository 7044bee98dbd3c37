package editor

import "github.com/khoahotran/portfolio-cms/internal/domain/portfolio"

const educationResource = "Education"

func NewEducation() portfolio.Education {
	return portfolio.Education{
		Institution: "University Name",
		Degree:      "Degree",
		Field:       "Field of Study",
		Period:      "Start - End",
		Location:    "Location",
	}
}

func AddEducation(doc *portfolio.Document, e portfolio.Education) (*portfolio.Document, error) {
	list, err := insertItem(portfolio.SectionEducation, doc.Education, e, nil, true)
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionEducation, list)
}

type EducationPatch struct {
	Institution *string `json:"institution"`
	Degree      *string `json:"degree"`
	Field       *string `json:"field"`
	Period      *string `json:"period"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

func UpdateEducation(doc *portfolio.Document, id string, patch EducationPatch) (*portfolio.Document, error) {
	list, err := replaceByID(doc.Education, id, educationResource, func(e portfolio.Education) (portfolio.Education, error) {
		setString(&e.Institution, patch.Institution)
		setString(&e.Degree, patch.Degree)
		setString(&e.Field, patch.Field)
		setString(&e.Period, patch.Period)
		setString(&e.Location, patch.Location)
		setString(&e.Description, patch.Description)
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return setSection(doc, portfolio.SectionEducation, list)
}

func DeleteEducation(doc *portfolio.Document, id string) (*portfolio.Document, error) {
	return setSection(doc, portfolio.SectionEducation, deleteByID(doc.Education, id))
}
