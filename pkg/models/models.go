package models

import "encoding/json"

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Timestamps are UTC unix milliseconds.

// User roles.
const (
	RoleMentee = "mentee"
	RoleMentor = "mentor"
	RoleBoth   = "both"
)

// Question categories.
var QuestionCategories = []string{"career", "confidence", "leadership", "technical", "personal"}

// Question statuses.
const (
	QuestionPending  = "pending"
	QuestionMatched  = "matched"
	QuestionAnswered = "answered"
	QuestionClosed   = "closed"
)

// Mentor application statuses.
const (
	ApplicationPending     = "pending"
	ApplicationUnderReview = "under_review"
	ApplicationApproved    = "approved"
	ApplicationRejected    = "rejected"
)

// Background check statuses.
const (
	BackgroundPending    = "pending"
	BackgroundInProgress = "in_progress"
	BackgroundCompleted  = "completed"
	BackgroundFailed     = "failed"
)

type User struct {
	ID              string `json:"id" db:"id"`
	Email           string `json:"email" db:"email"`
	FirstName       string `json:"firstName,omitempty" db:"first_name"`
	LastName        string `json:"lastName,omitempty" db:"last_name"`
	ProfileImageURL string `json:"profileImageUrl,omitempty" db:"profile_image_url"`
	Role            string `json:"role" db:"role"`
	PasswordHash    string `json:"-" db:"password_hash"`
	Created         int64  `json:"createdAt" db:"created"`
	Updated         int64  `json:"updatedAt" db:"updated"`
}

type MentorProfile struct {
	ID             string   `json:"id" db:"id"`
	UserID         string   `json:"userId" db:"user_id"`
	Title          string   `json:"title,omitempty" db:"title"`
	Company        string   `json:"company,omitempty" db:"company"`
	Bio            string   `json:"bio,omitempty" db:"bio"`
	Expertise      []string `json:"expertise" db:"expertise"`
	WeeklyCapacity int      `json:"weeklyCapacity" db:"weekly_capacity"`
	IsActive       bool     `json:"isActive" db:"is_active"`
	Created        int64    `json:"createdAt" db:"created"`
	Updated        int64    `json:"updatedAt" db:"updated"`
}

type Question struct {
	ID       string `json:"id" db:"id"`
	MenteeID string `json:"menteeId" db:"mentee_id"`
	Text     string `json:"text" db:"text"`
	Category string `json:"category" db:"category"`
	IsPublic bool   `json:"isPublic" db:"is_public"`
	Status   string `json:"status" db:"status"`
	Created  int64  `json:"createdAt" db:"created"`
	Updated  int64  `json:"updatedAt" db:"updated"`
}

// Insights is the enrichment payload attached to an answer.
type Insights struct {
	KeyTakeaways []string `json:"keyTakeaways"`
	ActionSteps  []string `json:"actionSteps"`
}

type Answer struct {
	ID         string    `json:"id" db:"id"`
	QuestionID string    `json:"questionId" db:"question_id"`
	MentorID   string    `json:"mentorId" db:"mentor_id"`
	Text       string    `json:"text" db:"text"`
	AIInsights *Insights `json:"aiInsights,omitempty" db:"ai_insights"`
	IsHelpful  *bool     `json:"isHelpful,omitempty" db:"is_helpful"`
	Created    int64     `json:"createdAt" db:"created"`
	Updated    int64     `json:"updatedAt" db:"updated"`
}

// Reference is a professional reference attached to a mentor application.
type Reference struct {
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	Company      string `json:"company,omitempty"`
	Email        string `json:"email"`
	Relationship string `json:"relationship,omitempty"`
}

type MentorApplication struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"userId" db:"user_id"`
	Status string `json:"status" db:"status"`

	// Professional information
	CurrentTitle    string   `json:"currentTitle" db:"current_title"`
	CurrentCompany  string   `json:"currentCompany" db:"current_company"`
	WorkEmail       string   `json:"workEmail" db:"work_email"`
	LinkedinProfile string   `json:"linkedinProfile,omitempty" db:"linkedin_profile"`
	YearsExperience int      `json:"yearsExperience" db:"years_experience"`
	Expertise       []string `json:"expertise" db:"expertise"`
	Industries      []string `json:"industries" db:"industries"`

	// Background information, stored as opaque JSON blobs
	Education      json.RawMessage `json:"education" db:"education"`
	WorkHistory    json.RawMessage `json:"workHistory" db:"work_history"`
	Certifications json.RawMessage `json:"certifications,omitempty" db:"certifications"`

	// Mentoring information
	Bio                 string   `json:"bio" db:"bio"`
	MentoringExperience string   `json:"mentoringExperience,omitempty" db:"mentoring_experience"`
	MentoringMotivation string   `json:"mentoringMotivation" db:"mentoring_motivation"`
	AvailabilityHours   int      `json:"availabilityHours" db:"availability_hours"`
	PreferredCategories []string `json:"preferredCategories" db:"preferred_categories"`

	References []Reference `json:"references" db:"references"`

	// Verification status
	WorkEmailVerified     bool   `json:"workEmailVerified" db:"work_email_verified"`
	LinkedinVerified      bool   `json:"linkedinVerified" db:"linkedin_verified"`
	BackgroundCheckStatus string `json:"backgroundCheckStatus" db:"background_check_status"`
	ReferencesContacted   bool   `json:"referencesContacted" db:"references_contacted"`

	// Admin review
	AdminNotes      string `json:"adminNotes,omitempty" db:"admin_notes"`
	RejectionReason string `json:"rejectionReason,omitempty" db:"rejection_reason"`
	ReviewedBy      string `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt      *int64 `json:"reviewedAt,omitempty" db:"reviewed_at"`

	Created int64 `json:"createdAt" db:"created"`
	Updated int64 `json:"updatedAt" db:"updated"`
}

// applicationTransitions lists the legal review-state moves. Terminal states
// have no outgoing transitions.
var applicationTransitions = map[string][]string{
	ApplicationPending:     {ApplicationUnderReview, ApplicationApproved, ApplicationRejected},
	ApplicationUnderReview: {ApplicationApproved, ApplicationRejected},
	ApplicationApproved:    {},
	ApplicationRejected:    {},
}

// ValidApplicationStatus reports whether s is one of the four review states.
func ValidApplicationStatus(s string) bool {
	_, ok := applicationTransitions[s]
	return ok
}

// ValidApplicationTransition reports whether an application may move from one
// review state to another.
func ValidApplicationTransition(from, to string) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidQuestionCategory reports whether c is a known question category.
func ValidQuestionCategory(c string) bool {
	for _, v := range QuestionCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Composite shapes returned by list endpoints.

type AnswerWithMentor struct {
	Answer
	Mentor        *User          `json:"mentor,omitempty"`
	MentorProfile *MentorProfile `json:"mentorProfile,omitempty"`
}

type QuestionWithAnswers struct {
	Question
	Answers []AnswerWithMentor `json:"answers"`
}

type MentorWithProfile struct {
	User
	MentorProfile *MentorProfile `json:"mentorProfile,omitempty"`
}
