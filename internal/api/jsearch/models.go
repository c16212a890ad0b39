package jsearch

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SearchResponse is the part of a JSearch response the listing mode
// reads. Status and request id are ignored so their types never matter.
type SearchResponse struct {
	Data []Job `json:"data"`
}

// Job is a single JSearch listing. Every field is optional upstream,
// so all of them are pointers and nil means absent, null or of an
// unexpected type.
type Job struct {
	Title              *string             `json:"job_title"`
	EmployerName       *string             `json:"employer_name"`
	EmployerLogo       *string             `json:"employer_logo"`
	MinSalary          *float64            `json:"job_min_salary"`
	MaxSalary          *float64            `json:"job_max_salary"`
	EmploymentType     *string             `json:"job_employment_type"`
	City               *string             `json:"job_city"`
	Country            *string             `json:"job_country"`
	Description        *string             `json:"job_description"`
	Highlights         *Highlights         `json:"job_highlights"`
	ApplyLink          *string             `json:"job_apply_link"`
	IsRemote           *bool               `json:"job_is_remote"`
	PostedAt           *string             `json:"job_posted_at_datetime_utc"`
	RequiredExperience *RequiredExperience `json:"job_required_experience"`
}

type Highlights struct {
	Qualifications   []string `json:"Qualifications"`
	Responsibilities []string `json:"Responsibilities"`
	Benefits         []string `json:"Benefits"`
}

type RequiredExperience struct {
	NoExperienceRequired  *bool    `json:"no_experience_required"`
	RequiredQualification *string  `json:"required_qualification"`
	Months                *float64 `json:"required_experience_in_months"`
}

// UnmarshalJSON decodes each field on its own so that one off-type value
// drops that field instead of the whole page. A listing that is not an
// object decodes as an empty Job.
func (j *Job) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*j = Job{}
		return nil
	}

	*j = Job{
		Title:              lenient[string](raw["job_title"]),
		EmployerName:       lenient[string](raw["employer_name"]),
		EmployerLogo:       lenient[string](raw["employer_logo"]),
		MinSalary:          number(raw["job_min_salary"]),
		MaxSalary:          number(raw["job_max_salary"]),
		EmploymentType:     lenient[string](raw["job_employment_type"]),
		City:               lenient[string](raw["job_city"]),
		Country:            lenient[string](raw["job_country"]),
		Description:        lenient[string](raw["job_description"]),
		Highlights:         highlights(raw["job_highlights"]),
		ApplyLink:          lenient[string](raw["job_apply_link"]),
		IsRemote:           lenient[bool](raw["job_is_remote"]),
		PostedAt:           lenient[string](raw["job_posted_at_datetime_utc"]),
		RequiredExperience: requiredExperience(raw["job_required_experience"]),
	}
	return nil
}

// lenient returns nil when v is missing, null or not a T.
func lenient[T any](v json.RawMessage) *T {
	if len(v) == 0 {
		return nil
	}
	var out *T
	if err := json.Unmarshal(v, &out); err != nil {
		return nil
	}
	return out
}

// number also accepts numeric strings such as "50000".
func number(v json.RawMessage) *float64 {
	if f := lenient[float64](v); f != nil {
		return f
	}
	s := lenient[string](v)
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// stringList keeps the string elements of an array and skips the rest.
func stringList(v json.RawMessage) []string {
	items := lenient[[]json.RawMessage](v)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(*items))
	for _, item := range *items {
		if s := lenient[string](item); s != nil {
			out = append(out, *s)
		}
	}
	return out
}

func highlights(v json.RawMessage) *Highlights {
	raw := lenient[map[string]json.RawMessage](v)
	if raw == nil {
		return nil
	}
	return &Highlights{
		Qualifications:   stringList((*raw)["Qualifications"]),
		Responsibilities: stringList((*raw)["Responsibilities"]),
		Benefits:         stringList((*raw)["Benefits"]),
	}
}

func requiredExperience(v json.RawMessage) *RequiredExperience {
	raw := lenient[map[string]json.RawMessage](v)
	if raw == nil {
		return nil
	}
	return &RequiredExperience{
		NoExperienceRequired:  lenient[bool]((*raw)["no_experience_required"]),
		RequiredQualification: lenient[string]((*raw)["required_qualification"]),
		Months:                number((*raw)["required_experience_in_months"]),
	}
}

// ParseJobs decodes the listing array of a search response body.
func ParseJobs(body []byte) ([]Job, error) {
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return resp.Data, nil
}
