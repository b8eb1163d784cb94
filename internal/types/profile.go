package types

// NotAvailable is the sentinel used for profile fields the matcher could
// not extract.
const NotAvailable = "N/A"

// WorkExperience is one employment entry extracted from a resume.
type WorkExperience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is one education entry extracted from a resume.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// CandidateProfile is the structured record the resume matcher produces.
// ResumeMatch is the 0-100 match percentage against the job requirements.
// Error is non-empty when the matcher degraded to a fallback profile.
type CandidateProfile struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Position       string           `json:"position"`
	Location       string           `json:"location"`
	ResumeMatch    float64          `json:"resumeMatch"`
	Experience     string           `json:"experience"`
	LinkedIn       string           `json:"linkedin"`
	GitHub         string           `json:"github"`
	Portfolio      string           `json:"portfolio"`
	Summary        string           `json:"summary"`
	Skills         []string         `json:"skills"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Error          string           `json:"error,omitempty"`
}

// FallbackProfile returns a fully populated profile with every field set to
// the not-available sentinel, a zero match score and the given error
// description. The matcher returns this instead of propagating failures so
// every submitted application stays rankable.
func FallbackProfile(errDesc string) *CandidateProfile {
	return &CandidateProfile{
		Name:           NotAvailable,
		Email:          NotAvailable,
		Phone:          NotAvailable,
		Position:       NotAvailable,
		Location:       NotAvailable,
		ResumeMatch:    0,
		Experience:     NotAvailable,
		LinkedIn:       NotAvailable,
		GitHub:         NotAvailable,
		Portfolio:      NotAvailable,
		Summary:        NotAvailable,
		Skills:         []string{},
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Error:          errDesc,
	}
}

// TranscriptEvaluation is the technical score assigned to an interview or
// coding-round transcript.
type TranscriptEvaluation struct {
	Score    float64  `json:"score"`
	Feedback []string `json:"feedback"`
}

// QuestionAnswer is one generated interview question with its reference
// answer.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
