package models

import "strings"

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Handle         string `json:"handle"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	// Skills is a comma separated list.
	Skills    string `json:"skills"`
	Youtube   string `json:"youtube"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Instagram string `json:"instagram"`
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// TextRequest is the body of a post or a comment. Name and Avatar default
// to the author's token snapshot when omitted.
type TextRequest struct {
	Text   string `json:"text"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Trimmed strips surrounding whitespace from every field except the
// password, which is used exactly as typed.
func (r SignupRequest) Trimmed() SignupRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

func (r ProfileRequest) Trimmed() ProfileRequest {
	for _, f := range []*string{
		&r.Handle, &r.Company, &r.Website, &r.Location, &r.Bio, &r.Status, &r.GithubUsername,
		&r.Skills, &r.Youtube, &r.Twitter, &r.Facebook, &r.Linkedin, &r.Instagram,
	} {
		*f = strings.TrimSpace(*f)
	}
	return r
}

func (r ExperienceRequest) Trimmed() ExperienceRequest {
	for _, f := range []*string{&r.Title, &r.Company, &r.Location, &r.From, &r.To, &r.Description} {
		*f = strings.TrimSpace(*f)
	}
	return r
}

func (r EducationRequest) Trimmed() EducationRequest {
	for _, f := range []*string{&r.School, &r.Degree, &r.FieldOfStudy, &r.From, &r.To, &r.Description} {
		*f = strings.TrimSpace(*f)
	}
	return r
}

func (r TextRequest) Trimmed() TextRequest {
	r.Text = strings.TrimSpace(r.Text)
	r.Name = strings.TrimSpace(r.Name)
	r.Avatar = strings.TrimSpace(r.Avatar)
	return r
}

// Older clients wrap bodies under a named key; these envelopes accept both
// the wrapped and the flat form.

type SignupEnvelope struct {
	SignupRequest
	AddUser *SignupRequest `json:"addUser"`
}

func (e SignupEnvelope) Unwrap() SignupRequest {
	if e.AddUser != nil {
		return *e.AddUser
	}
	return e.SignupRequest
}

type LoginEnvelope struct {
	LoginRequest
	Credentials *LoginRequest `json:"credentials"`
}

func (e LoginEnvelope) Unwrap() LoginRequest {
	if e.Credentials != nil {
		return *e.Credentials
	}
	return e.LoginRequest
}

type ProfileEnvelope struct {
	ProfileRequest
	NewProfile *ProfileRequest `json:"newProfile"`
}

func (e ProfileEnvelope) Unwrap() ProfileRequest {
	if e.NewProfile != nil {
		return *e.NewProfile
	}
	return e.ProfileRequest
}

type ExperienceEnvelope struct {
	ExperienceRequest
	NewExperience *ExperienceRequest `json:"newExperience"`
}

func (e ExperienceEnvelope) Unwrap() ExperienceRequest {
	if e.NewExperience != nil {
		return *e.NewExperience
	}
	return e.ExperienceRequest
}

type EducationEnvelope struct {
	EducationRequest
	NewEducation *EducationRequest `json:"newEducation"`
}

func (e EducationEnvelope) Unwrap() EducationRequest {
	if e.NewEducation != nil {
		return *e.NewEducation
	}
	return e.EducationRequest
}

type PostEnvelope struct {
	TextRequest
	AddPost *TextRequest `json:"addPost"`
}

func (e PostEnvelope) Unwrap() TextRequest {
	if e.AddPost != nil {
		return *e.AddPost
	}
	return e.TextRequest
}
