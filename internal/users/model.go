package users

import (
	"time"

	"career-backend/resume/model"
)

// User is the stored identity plus the onboarding profile.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName,omitempty"`
	Mobile        string    `json:"mobile,omitempty"`
	Location      string    `json:"location,omitempty"`
	LinkedIn      string    `json:"linkedin,omitempty"`
	GitHub        string    `json:"github,omitempty"`
	Portfolio     string    `json:"portfolio,omitempty"`
	Industry      string    `json:"industry,omitempty"`
	SubIndustries []string  `json:"subIndustries"`
	Experience    int       `json:"experience"`
	Bio           string    `json:"bio,omitempty"`
	Skills        []string  `json:"skills"`
	IsOnboarded   bool      `json:"isOnboarded"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Identity is what the identity collaborator knows about the caller.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// OnboardingStatus is the answer to "has this user finished onboarding".
type OnboardingStatus struct {
	IsOnboarded bool   `json:"isOnboarded"`
	Email       string `json:"email"`
}

// ContactInfo projects the stored profile onto resume contact details.
func (u User) ContactInfo() model.ContactInfo {
	return model.ContactInfo{
		Email:     u.Email,
		Mobile:    u.Mobile,
		Location:  u.Location,
		LinkedIn:  u.LinkedIn,
		GitHub:    u.GitHub,
		Portfolio: u.Portfolio,
	}
}

func applyProfile(u *User, p model.OnboardingProfile) {
	u.Mobile = p.Mobile
	u.Location = p.Location
	u.LinkedIn = p.LinkedIn
	u.GitHub = p.GitHub
	u.Portfolio = p.Portfolio
	u.Industry = p.Industry
	u.SubIndustries = append([]string(nil), p.SubIndustries...)
	u.Experience = p.Experience
	u.Bio = p.Bio
	u.Skills = append([]string(nil), p.Skills...)
	u.IsOnboarded = true
}
