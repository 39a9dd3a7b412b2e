package validation

import (
	"testing"
	"time"

	"devconnect/models"

	"github.com/stretchr/testify/assert"
)

func TestProfile(t *testing.T) {
	t.Parallel()
	valid := models.ProfileRequest{Status: "Developer", Skills: "go,mongo"}

	tests := []struct {
		name string
		mod  func(r *models.ProfileRequest)
		want Errors
	}{
		{"Valid Minimal", func(r *models.ProfileRequest) {}, Errors{}},
		{"Valid Links", func(r *models.ProfileRequest) {
			r.Handle = "alpine"
			r.Website = "https://alpine.dev"
			r.Twitter = "https://twitter.com/alpine"
		}, Errors{}},
		{"Short Handle", func(r *models.ProfileRequest) { r.Handle = "a" }, Errors{"handle": "Handle needs to be between 2 and 40 characters"}},
		{"Missing Status", func(r *models.ProfileRequest) { r.Status = "" }, Errors{"status": "Status field is required"}},
		{"Missing Skills", func(r *models.ProfileRequest) { r.Skills = " " }, Errors{"skills": "Skills field is required"}},
		{"Bad Website", func(r *models.ProfileRequest) { r.Website = "alpine" }, Errors{"website": "Not a valid URL"}},
		{"Bad Social", func(r *models.ProfileRequest) { r.Instagram = "insta/alpine" }, Errors{"instagram": "Not a valid URL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mod(&req)
			errs, ok := Profile(req)
			assert.Equal(t, tt.want, errs)
			assert.Equal(t, len(tt.want) == 0, ok)
		})
	}
}

func TestExperience(t *testing.T) {
	errs, ok := Experience(models.ExperienceRequest{Title: "Dev", Company: "Acme", From: "2019-01-01"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = Experience(models.ExperienceRequest{})
	assert.False(t, ok)
	assert.Equal(t, Errors{
		"title":   "Job title field is required",
		"company": "Company field is required",
		"from":    "From date field is required",
	}, errs)

	errs, _ = Experience(models.ExperienceRequest{Title: "Dev", Company: "Acme", From: "yesterday", To: "soon"})
	assert.Equal(t, Errors{"from": "From date is invalid", "to": "To date is invalid"}, errs)
}

func TestEducation(t *testing.T) {
	errs, ok := Education(models.EducationRequest{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01", To: "2019-06-30"})
	assert.True(t, ok)
	assert.Empty(t, errs)

	errs, ok = Education(models.EducationRequest{From: "2015-09-01"})
	assert.False(t, ok)
	assert.Equal(t, Errors{
		"school":       "School field is required",
		"degree":       "Degree field is required",
		"fieldofstudy": "Field of study field is required",
	}, errs)
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2019-01-02", "2019-01-02T00:00:00Z", "2019-01-02T00:00:00", "2019/01/02", "01/02/2019"} {
		got, ok := ParseDate(in)
		assert.True(t, ok, in)
		assert.Equal(t, time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC), got, in)
	}

	_, ok := ParseDate("Jan 2nd")
	assert.False(t, ok)
}
