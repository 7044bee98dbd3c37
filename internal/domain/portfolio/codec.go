package portfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// legacyProfileKey is the name the browser build used for the profile section.
const legacyProfileKey = "bio"

type documentFields Document

func (d Document) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(documentFields(d.normalized()))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	parsed, err := Overlay(&Document{}, data)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// Overlay parses a persisted document and lays it over base: every top-level key present in raw
// replaces the corresponding section of base wholesale, keys absent from raw keep base's value.
// Nested values are not merged. A null key counts as absent.
func Overlay(base *Document, raw []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	out := base.Clone()
	for key, value := range top {
		if isNull(value) {
			continue
		}
		var err error
		switch Section(key) {
		case SectionProfile:
			out.Profile, err = decode[Profile](value)
		case SectionProjects:
			out.Projects, err = decode[[]Project](value)
		case SectionSkills:
			out.Skills, err = decode[[]Skill](value)
		case SectionExperience:
			out.Experience, err = decode[[]Experience](value)
		case SectionEducation:
			out.Education, err = decode[[]Education](value)
		case SectionMessages:
			out.Messages, err = decode[[]VisitorMessage](value)
		case SectionSettings:
			out.Settings, err = decode[Settings](value)
		default:
			if _, hasProfile := top[string(SectionProfile)]; key == legacyProfileKey && !hasProfile {
				out.Profile, err = decode[Profile](value)
				break
			}
			if out.Extra == nil {
				out.Extra = make(map[string]json.RawMessage)
			}
			out.Extra[key] = append(json.RawMessage(nil), value...)
		}
		if err != nil {
			return nil, fmt.Errorf("decode section %q: %w", key, err)
		}
	}
	return out, nil
}

// DecodeSection parses the JSON value of one section into the Go type that section holds.
func DecodeSection(section Section, raw []byte) (any, error) {
	switch section {
	case SectionProfile:
		return decode[Profile](raw)
	case SectionProjects:
		return decode[[]Project](raw)
	case SectionSkills:
		return decode[[]Skill](raw)
	case SectionExperience:
		return decode[[]Experience](raw)
	case SectionEducation:
		return decode[[]Education](raw)
	case SectionMessages:
		return decode[[]VisitorMessage](raw)
	case SectionSettings:
		return decode[Settings](raw)
	}
	return nil, ErrUnknownSection
}

// normalized replaces nil sections with empty ones so an emptied list is stored as [] and is not
// mistaken for a missing key on the next load.
func (d Document) normalized() Document {
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Messages == nil {
		d.Messages = []VisitorMessage{}
	}
	if d.Profile.Socials == nil {
		d.Profile.Socials = map[string]string{}
	}
	return d
}

func decode[T any](raw []byte) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
