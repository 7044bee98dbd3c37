// Package editor holds the section editors: pure functions that take a document and return a new
// one with exactly one top-level section replaced. The input document is never modified; lists
// are copied before an element is changed, so older documents stay valid snapshots.
package editor

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

// ReplaceSection returns a copy of doc whose section key holds value. value must have the Go type
// of that section (Profile, []Project, ..., Settings). The whole value is validated: list items
// without an id get one and duplicate ids are rejected.
func ReplaceSection(doc *portfolio.Document, key portfolio.Section, value any) (*portfolio.Document, error) {
	var err error
	switch key {
	case portfolio.SectionProjects:
		if v, ok := value.([]portfolio.Project); ok {
			value, err = normalizeList(key, v, normalizeProject)
		}
	case portfolio.SectionSkills:
		if v, ok := value.([]portfolio.Skill); ok {
			value, err = normalizeList(key, v, normalizeSkill)
		}
	case portfolio.SectionExperience:
		if v, ok := value.([]portfolio.Experience); ok {
			value, err = normalizeList(key, v, normalizeExperience)
		}
	case portfolio.SectionEducation:
		if v, ok := value.([]portfolio.Education); ok {
			value, err = normalizeList(key, v, nil)
		}
	case portfolio.SectionMessages:
		if v, ok := value.([]portfolio.VisitorMessage); ok {
			value, err = normalizeList(key, v, nil)
		}
	case portfolio.SectionSettings:
		if v, ok := value.(portfolio.Settings); ok {
			err = normalizeSettings(&v)
			value = v
		}
	}
	if err != nil {
		return nil, err
	}
	return setSection(doc, key, value)
}

// setSection returns a copy of doc with section key set to value as given. Item editors use it
// after checking only the item they touched, so entries already stored are never re-validated.
func setSection(doc *portfolio.Document, key portfolio.Section, value any) (*portfolio.Document, error) {
	next := *doc
	ok := true
	switch key {
	case portfolio.SectionProfile:
		next.Profile, ok = value.(portfolio.Profile)
	case portfolio.SectionProjects:
		next.Projects, ok = value.([]portfolio.Project)
	case portfolio.SectionSkills:
		next.Skills, ok = value.([]portfolio.Skill)
	case portfolio.SectionExperience:
		next.Experience, ok = value.([]portfolio.Experience)
	case portfolio.SectionEducation:
		next.Education, ok = value.([]portfolio.Education)
	case portfolio.SectionMessages:
		next.Messages, ok = value.([]portfolio.VisitorMessage)
	case portfolio.SectionSettings:
		next.Settings, ok = value.(portfolio.Settings)
	default:
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown section %q", key), portfolio.ErrUnknownSection)
	}
	if !ok {
		return nil, wrongType(key, value)
	}
	return &next, nil
}

// ReplaceSectionJSON decodes raw as the value of section key and replaces it.
func ReplaceSectionJSON(doc *portfolio.Document, key portfolio.Section, raw []byte) (*portfolio.Document, error) {
	value, err := portfolio.DecodeSection(key, raw)
	if err != nil {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("section %q has the wrong shape", key), err)
	}
	return ReplaceSection(doc, key, value)
}

func wrongType(key portfolio.Section, value any) error {
	return apperror.NewInvalidInput(fmt.Sprintf("section %q cannot hold %T", key, value), nil)
}

type identified interface {
	Identity() string
}

// normalizeItem runs fix on item and gives it an id when it has none.
func normalizeItem[T identified](item T, fix func(*T) error) (T, error) {
	if fix != nil {
		if err := fix(&item); err != nil {
			return item, err
		}
	}
	if item.Identity() == "" {
		item = withID(item, portfolio.NewID())
	}
	return item, nil
}

// normalizeList copies items, normalizes each one and rejects duplicate ids.
func normalizeList[T identified](key portfolio.Section, items []T, fix func(*T) error) ([]T, error) {
	out := make([]T, len(items))
	seen := mapset.NewThreadUnsafeSet[string]()
	for i, item := range items {
		item, err := normalizeItem(item, fix)
		if err != nil {
			return nil, err
		}
		if !seen.Add(item.Identity()) {
			return nil, duplicateID(key, item.Identity())
		}
		out[i] = item
	}
	return out, nil
}

// insertItem normalizes item and adds it to the front or the back of a copy of items. The rest of
// the list is kept as stored.
func insertItem[T identified](key portfolio.Section, items []T, item T, fix func(*T) error, front bool) ([]T, error) {
	item, err := normalizeItem(item, fix)
	if err != nil {
		return nil, err
	}
	if indexOf(items, item.Identity()) >= 0 {
		return nil, duplicateID(key, item.Identity())
	}
	if front {
		return prepend(items, item), nil
	}
	return appendItem(items, item), nil
}

func duplicateID(key portfolio.Section, id string) error {
	return apperror.NewInvalidInput(fmt.Sprintf("duplicate id %q in %s", id, key), nil)
}

func withID[T identified](item T, id string) T {
	switch v := any(&item).(type) {
	case *portfolio.Project:
		v.ID = id
	case *portfolio.Skill:
		v.ID = id
	case *portfolio.Experience:
		v.ID = id
	case *portfolio.Education:
		v.ID = id
	case *portfolio.VisitorMessage:
		v.ID = id
	}
	return item
}

// indexOf returns the position of the entity with the given id, or -1.
func indexOf[T identified](items []T, id string) int {
	for i, item := range items {
		if item.Identity() == id {
			return i
		}
	}
	return -1
}

// replaceByID returns a copy of items with the element id passed through fn.
func replaceByID[T identified](items []T, id string, resource string, fn func(T) (T, error)) ([]T, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return nil, apperror.NewNotFound(resource, id)
	}
	updated, err := fn(items[idx])
	if err != nil {
		return nil, err
	}
	out := make([]T, len(items))
	copy(out, items)
	out[idx] = updated
	return out, nil
}

// deleteByID returns items without the element id, keeping the order of the rest. A missing id
// leaves the list as it was.
func deleteByID[T identified](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Identity() != id {
			out = append(out, item)
		}
	}
	return out
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func appendItem[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}
