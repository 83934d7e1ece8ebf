package models

// PersonalInfo is the contact block shared by the saved profile and generated resumes.
type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	GitHub    string `json:"github"`
}

type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date,omitempty"` // MM/YYYY
	EndDate     string   `json:"end_date,omitempty"`   // MM/YYYY or "Present"
	Description []string `json:"description,omitempty"`
}

type Education struct {
	Degree         string `json:"degree"`
	School         string `json:"school"`
	Location       string `json:"location,omitempty"`
	GraduationDate string `json:"graduation_date,omitempty"`
	GPA            string `json:"gpa,omitempty"`
	Honors         string `json:"honors,omitempty"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	Expiry string `json:"expiry,omitempty"`
}

type Publication struct {
	Title   string `json:"title"`
	Authors string `json:"authors,omitempty"`
	Journal string `json:"journal,omitempty"`
	Date    string `json:"date,omitempty"`
	URL     string `json:"url,omitempty"`
}

type Award struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

type VolunteerWork struct {
	Organization string   `json:"organization"`
	Role         string   `json:"role,omitempty"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  []string `json:"description,omitempty"`
}

type Language struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Profile is the reusable personal record the resume builder draws from.
type Profile struct {
	PersonalInfo   PersonalInfo      `json:"personal_info"`
	Summary        string            `json:"summary"`
	Skills         []string          `json:"skills"`
	Experience     []Experience      `json:"experience"`
	Education      []Education       `json:"education"`
	Projects       []Project         `json:"projects"`
	Certifications []Certification   `json:"certifications"`
	Languages      []Language        `json:"languages"`
	Publications   []Publication     `json:"publications"`
	Awards         []Award           `json:"awards"`
	VolunteerWork  []VolunteerWork   `json:"volunteer_work"`
	PortfolioText  string            `json:"portfolio_text"`
	AdditionalInfo map[string]string `json:"additional_info"`
}

// Normalize replaces nil collections with empty ones so the profile always
// serializes with every section present.
func (p Profile) Normalize() Profile {
	p.Skills = orEmpty(p.Skills)
	p.Experience = orEmpty(p.Experience)
	p.Education = orEmpty(p.Education)
	p.Projects = orEmpty(p.Projects)
	p.Certifications = orEmpty(p.Certifications)
	p.Languages = orEmpty(p.Languages)
	p.Publications = orEmpty(p.Publications)
	p.Awards = orEmpty(p.Awards)
	p.VolunteerWork = orEmpty(p.VolunteerWork)
	if p.AdditionalInfo == nil {
		p.AdditionalInfo = map[string]string{}
	}
	return p
}

// MergeProfile folds freshly extracted data into the current profile:
// scalar fields prefer a non-empty incoming value, skills are unioned in
// first-seen order, and list sections are appended. Portfolio text is always
// kept from current. Neither argument is modified.
func MergeProfile(current, extracted Profile) Profile {
	out := current.Normalize()
	out.PersonalInfo = mergePersonalInfo(current.PersonalInfo, extracted.PersonalInfo)
	out.Summary = preferNonEmpty(extracted.Summary, current.Summary)
	out.Skills = unionStrings(current.Skills, extracted.Skills)
	out.Experience = concat(current.Experience, extracted.Experience)
	out.Education = concat(current.Education, extracted.Education)
	out.Projects = concat(current.Projects, extracted.Projects)
	out.Certifications = concat(current.Certifications, extracted.Certifications)
	out.Languages = concat(current.Languages, extracted.Languages)
	out.Publications = concat(current.Publications, extracted.Publications)
	out.Awards = concat(current.Awards, extracted.Awards)
	out.VolunteerWork = concat(current.VolunteerWork, extracted.VolunteerWork)

	info := make(map[string]string, len(current.AdditionalInfo)+len(extracted.AdditionalInfo))
	for k, v := range current.AdditionalInfo {
		info[k] = v
	}
	for k, v := range extracted.AdditionalInfo {
		if v != "" {
			info[k] = v
		}
	}
	out.AdditionalInfo = info
	return out
}

func mergePersonalInfo(cur, in PersonalInfo) PersonalInfo {
	return PersonalInfo{
		Name:      preferNonEmpty(in.Name, cur.Name),
		Email:     preferNonEmpty(in.Email, cur.Email),
		Phone:     preferNonEmpty(in.Phone, cur.Phone),
		Location:  preferNonEmpty(in.Location, cur.Location),
		LinkedIn:  preferNonEmpty(in.LinkedIn, cur.LinkedIn),
		Portfolio: preferNonEmpty(in.Portfolio, cur.Portfolio),
		GitHub:    preferNonEmpty(in.GitHub, cur.GitHub),
	}
}

func preferNonEmpty(in, cur string) string {
	if in != "" {
		return in
	}
	return cur
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
