package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrUnknownField    = errors.New("unknown resume field")
	ErrIndexOutOfRange = errors.New("resume entry index out of range")
	ErrInvalidValue    = errors.New("invalid resume field value")
)

// ResumeDocument is a generated resume tailored to one job description.
// It is edited in place by the builder preview before being rendered to PDF.
type ResumeDocument struct {
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Summary        string          `json:"summary"`
	Skills         []string        `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Publications   []Publication   `json:"publications"`
	Awards         []Award         `json:"awards"`
	VolunteerWork  []VolunteerWork `json:"volunteer_work"`
}

// Clone returns a deep copy so edits never alias a previous preview.
func (d ResumeDocument) Clone() ResumeDocument {
	d.Skills = slices.Clone(d.Skills)
	d.Experience = slices.Clone(d.Experience)
	for i := range d.Experience {
		d.Experience[i].Description = slices.Clone(d.Experience[i].Description)
	}
	d.Education = slices.Clone(d.Education)
	d.Projects = slices.Clone(d.Projects)
	for i := range d.Projects {
		d.Projects[i].Technologies = slices.Clone(d.Projects[i].Technologies)
	}
	d.Certifications = slices.Clone(d.Certifications)
	d.Publications = slices.Clone(d.Publications)
	d.Awards = slices.Clone(d.Awards)
	d.VolunteerWork = slices.Clone(d.VolunteerWork)
	for i := range d.VolunteerWork {
		d.VolunteerWork[i].Description = slices.Clone(d.VolunteerWork[i].Description)
	}
	return d
}

// Set returns a copy of d with one field replaced. Field names use the wire
// names:
//
//	personal_info.<name>           one personal info field
//	summary                        free text
//	skills                         comma separated list
//	experience.<i>.<name>          title, company, location, start_date or end_date
//	experience.<i>.description     one bullet per line, blank lines dropped
//	<section>                      a whole list section as a JSON array
func (d ResumeDocument) Set(field, value string) (ResumeDocument, error) {
	out := d.Clone()

	if parent, child, ok := strings.Cut(field, "."); ok {
		var err error
		switch parent {
		case "personal_info":
			err = out.PersonalInfo.set(child, value)
		case "experience":
			err = out.setExperience(child, value)
		default:
			err = fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err != nil {
			return d, err
		}
		return out, nil
	}

	switch field {
	case "summary":
		out.Summary = value
	case "skills":
		out.Skills = SplitSkills(value)
	default:
		if err := out.setSection(field, value); err != nil {
			return d, err
		}
	}
	return out, nil
}

func (d *ResumeDocument) setExperience(path, value string) error {
	idx, name, ok := strings.Cut(path, ".")
	if !ok {
		return fmt.Errorf("%w: experience.%s", ErrUnknownField, path)
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(d.Experience) {
		return fmt.Errorf("%w: experience.%s", ErrIndexOutOfRange, idx)
	}
	exp := &d.Experience[i]
	switch name {
	case "title":
		exp.Title = value
	case "company":
		exp.Company = value
	case "location":
		exp.Location = value
	case "start_date":
		exp.StartDate = value
	case "end_date":
		exp.EndDate = value
	case "description":
		exp.Description = SplitLines(value)
	default:
		return fmt.Errorf("%w: experience.%s", ErrUnknownField, path)
	}
	return nil
}

// setSection replaces a whole list section from a JSON array.
func (d *ResumeDocument) setSection(field, value string) error {
	var target any
	switch field {
	case "experience":
		target = &d.Experience
	case "education":
		target = &d.Education
	case "projects":
		target = &d.Projects
	case "certifications":
		target = &d.Certifications
	case "publications":
		target = &d.Publications
	case "awards":
		target = &d.Awards
	case "volunteer_work":
		target = &d.VolunteerWork
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	return nil
}

func (p *PersonalInfo) set(field, value string) error {
	switch field {
	case "name":
		p.Name = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "linkedin":
		p.LinkedIn = value
	case "portfolio":
		p.Portfolio = value
	case "github":
		p.GitHub = value
	default:
		return fmt.Errorf("%w: personal_info.%s", ErrUnknownField, field)
	}
	return nil
}

// SplitSkills turns "Go, SQL, , Docker" into [Go SQL Docker].
func SplitSkills(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SplitLines keeps one entry per non-blank line, as typed in a textarea.
func SplitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
