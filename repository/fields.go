package repository

import (
	"devconnect/models"

	"go.mongodb.org/mongo-driver/bson"
)

// setDoc is the $set document for an update. Blank strings and nil skills
// leave the stored value untouched; social links are replaced as a whole.
func (f ProfileFields) setDoc() bson.M {
	set := bson.M{"social": f.Social}
	for key, value := range map[string]string{
		"handle":         f.Handle,
		"company":        f.Company,
		"website":        f.Website,
		"location":       f.Location,
		"bio":            f.Bio,
		"status":         f.Status,
		"githubusername": f.GithubUsername,
	} {
		if value != "" {
			set[key] = value
		}
	}
	if f.Skills != nil {
		set["skills"] = f.Skills
	}
	return set
}

// apply is the in-memory equivalent of setDoc.
func (f ProfileFields) apply(p *models.Profile) {
	p.Social = f.Social
	assign := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	assign(&p.Handle, f.Handle)
	assign(&p.Company, f.Company)
	assign(&p.Website, f.Website)
	assign(&p.Location, f.Location)
	assign(&p.Bio, f.Bio)
	assign(&p.Status, f.Status)
	assign(&p.GithubUsername, f.GithubUsername)
	if f.Skills != nil {
		p.Skills = f.Skills
	}
}

func normalizeProfile(p *models.Profile) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []models.Experience{}
	}
	if p.Education == nil {
		p.Education = []models.Education{}
	}
}

func normalizePost(p *models.Post) {
	if p.Likes == nil {
		p.Likes = []models.Like{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
}
