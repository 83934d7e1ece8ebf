package models

// Status is the lifecycle state of a job application as reported by the backend.
type Status string

const (
	StatusPending   Status = "pending"
	StatusInterview Status = "interview"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusPending, StatusInterview, StatusRejected, StatusAccepted}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInterview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Application is one tracked job application. The board never mutates it;
// records are owned by the remote API and replaced wholesale on every fetch.
type Application struct {
	ID          int       `json:"id"`
	CompanyName string    `json:"company_name"`
	Position    string    `json:"position"`
	Status      Status    `json:"status"`
	AppliedDate Timestamp `json:"applied_date"`

	InterviewDate   Timestamp `json:"interview_date"`
	RejectionDate   Timestamp `json:"rejection_date"`
	RejectionReason string    `json:"rejection_reason,omitempty"`

	Notes        string `json:"notes,omitempty"`
	JobURL       string `json:"job_url,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	Location     string `json:"location,omitempty"`
	SalaryRange  string `json:"salary_range,omitempty"`
	Source       string `json:"source,omitempty"`
	EmailID      string `json:"email_id,omitempty"`

	// Server-hosted assets, relative to the backend origin.
	ImagePath  string `json:"image_path,omitempty"`
	ResumePath string `json:"resume_path,omitempty"`
}

func (a Application) IsRejected() bool {
	return a.Status == StatusRejected
}

// StatusCounts mirrors the backend /stats payload.
type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Interview int `json:"interview"`
	Rejected  int `json:"rejected"`
	Accepted  int `json:"accepted"`
}

// CountStatuses tallies apps by status. Unknown statuses only count toward Total.
func CountStatuses(apps []Application) StatusCounts {
	var c StatusCounts
	for _, a := range apps {
		c.Total++
		switch a.Status {
		case StatusPending:
			c.Pending++
		case StatusInterview:
			c.Interview++
		case StatusRejected:
			c.Rejected++
		case StatusAccepted:
			c.Accepted++
		}
	}
	return c
}
