package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devconnect/apperror"
	"devconnect/auth"
	"devconnect/models"
	"devconnect/repository"
	"devconnect/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	errNoProfileForHandle = apperror.NotFound("noprofile", "No profile found for this handle")
	errNoProfileForUser   = apperror.NotFound("noprofile", "No profile by this user id")
	errNoProfiles         = apperror.NotFound("noprofile", "There are no profiles")
	errNoOwnProfile       = apperror.NotFound("noprofile", "There is no profile for the user")
	errNoProfileForExp    = apperror.NotFound("noprofile", "You must have a profile to add experience")
	errNoProfileForEdu    = apperror.NotFound("noprofile", "You must have a profile to add education background")
	errHandleTaken        = apperror.Conflict("handle", "The handle already exists")
)

type ProfileService struct {
	deps Deps
}

func (s *ProfileService) view(ctx context.Context, p *models.Profile) (*models.ProfileView, error) {
	byID, err := s.deps.summaries(ctx, []primitive.ObjectID{p.User})
	if err != nil {
		return nil, err
	}
	return &models.ProfileView{Profile: *p, User: summaryOr(byID, p.User)}, nil
}

func (s *ProfileService) ByHandle(ctx context.Context, handle string) (*models.ProfileView, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, errNoProfileForHandle
	}
	profile, err := s.deps.Store.Profiles.FindByHandle(ctx, handle)
	if err != nil {
		return nil, storeErr("find profile", err, errNoProfileForHandle, nil)
	}
	return s.view(ctx, profile)
}

func (s *ProfileService) ByUser(ctx context.Context, userHex string) (*models.ProfileView, error) {
	userID, err := parseID(userHex, errNoProfileForUser)
	if err != nil {
		return nil, err
	}
	profile, err := s.deps.Store.Profiles.FindByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("find profile", err, errNoProfileForUser, nil)
	}
	return s.view(ctx, profile)
}

func (s *ProfileService) All(ctx context.Context) ([]models.ProfileView, error) {
	profiles, err := s.deps.Store.Profiles.FindAll(ctx)
	if err != nil {
		return nil, storeErr("find profiles", err, nil, nil)
	}
	if len(profiles) == 0 {
		return nil, errNoProfiles
	}

	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.User)
	}
	byID, err := s.deps.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, models.ProfileView{Profile: p, User: summaryOr(byID, p.User)})
	}
	return views, nil
}

func (s *ProfileService) Own(ctx context.Context, id *auth.Identity) (*models.ProfileView, error) {
	userID, err := identityID(id)
	if err != nil {
		return nil, err
	}
	profile, err := s.deps.Store.Profiles.FindByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("find profile", err, errNoOwnProfile, nil)
	}
	return s.view(ctx, profile)
}

// SplitSkills turns "go, rust,,sql" into ["go" "rust" "sql"].
func SplitSkills(raw string) []string {
	skills := []string{}
	for _, skill := range strings.Split(raw, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func profileFields(req models.ProfileRequest) repository.ProfileFields {
	return repository.ProfileFields{
		Handle:         req.Handle,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         SplitSkills(req.Skills),
		Social: models.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	}
}

// Upsert updates the requester's profile, creating it on first use. A handle
// held by another user is rejected either way.
func (s *ProfileService) Upsert(ctx context.Context, id *auth.Identity, req models.ProfileRequest) (*models.Profile, error) {
	req = req.Trimmed()
	if errs, ok := validation.Profile(req); !ok {
		return nil, apperror.Validation(errs)
	}
	userID, err := identityID(id)
	if err != nil {
		return nil, err
	}
	fields := profileFields(req)

	if fields.Handle != "" {
		holder, err := s.deps.Store.Profiles.FindByHandle(ctx, fields.Handle)
		switch {
		case err == nil && holder.User != userID:
			return nil, errHandleTaken
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, storeErr("find profile", err, nil, nil)
		}
	}

	var profile *models.Profile
	err = s.deps.locked(ctx, "profile:"+userID.Hex(), func() error {
		updated, err := s.deps.Store.Profiles.UpdateFields(ctx, userID, fields)
		if err == nil {
			profile = updated
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return storeErr("update profile", err, nil, errHandleTaken)
		}

		created := &models.Profile{
			User:           userID,
			Handle:         fields.Handle,
			Company:        fields.Company,
			Website:        fields.Website,
			Location:       fields.Location,
			Bio:            fields.Bio,
			Status:         fields.Status,
			GithubUsername: fields.GithubUsername,
			Skills:         fields.Skills,
			Social:         fields.Social,
			Date:           s.deps.Now().UTC(),
		}
		if err := s.deps.Store.Profiles.Create(ctx, created); err != nil {
			return storeErr("create profile", err, nil, errHandleTaken)
		}
		profile = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// mutateOwn loads the requester's profile, applies change and saves it.
// change reports false when there was nothing to do; the profile is then
// returned unsaved.
func (s *ProfileService) mutateOwn(ctx context.Context, id *auth.Identity, missing *apperror.Error, change func(*models.Profile) bool) (*models.Profile, bool, error) {
	userID, err := identityID(id)
	if err != nil {
		return nil, false, err
	}

	var (
		profile *models.Profile
		changed bool
	)
	err = s.deps.locked(ctx, "profile:"+userID.Hex(), func() error {
		loaded, err := s.deps.Store.Profiles.FindByUser(ctx, userID)
		if err != nil {
			return storeErr("find profile", err, missing, nil)
		}
		profile = loaded
		if changed = change(profile); !changed {
			return nil
		}
		return storeErrOrNil("save profile", s.deps.Store.Profiles.Save(ctx, profile), missing)
	})
	if err != nil {
		return nil, false, err
	}
	return profile, changed, nil
}

func storeErrOrNil(op string, err error, notFound *apperror.Error) error {
	if err == nil {
		return nil
	}
	return storeErr(op, err, notFound, nil)
}

func (s *ProfileService) AddExperience(ctx context.Context, id *auth.Identity, req models.ExperienceRequest) (*models.Profile, error) {
	req = req.Trimmed()
	if errs, ok := validation.Experience(req); !ok {
		return nil, apperror.Validation(errs)
	}
	from, to := parseRange(req.From, req.To)

	profile, _, err := s.mutateOwn(ctx, id, errNoProfileForExp, func(p *models.Profile) bool {
		p.Experience = prepend(p.Experience, models.Experience{
			ID:          primitive.NewObjectID(),
			Title:       req.Title,
			Company:     req.Company,
			Location:    req.Location,
			From:        from,
			To:          to,
			Current:     req.Current,
			Description: req.Description,
		})
		return true
	})
	return profile, err
}

// DeleteExperience removes one experience record. removed is false when the
// profile has no record with that id.
func (s *ProfileService) DeleteExperience(ctx context.Context, id *auth.Identity, expHex string) (profile *models.Profile, removed bool, err error) {
	return s.mutateOwn(ctx, id, errNoOwnProfile, func(p *models.Profile) bool {
		i := indexOf(p.Experience, func(e models.Experience) bool { return e.ID.Hex() == expHex })
		if i < 0 {
			return false
		}
		p.Experience = removeAt(p.Experience, i)
		return true
	})
}

func (s *ProfileService) AddEducation(ctx context.Context, id *auth.Identity, req models.EducationRequest) (*models.Profile, error) {
	req = req.Trimmed()
	if errs, ok := validation.Education(req); !ok {
		return nil, apperror.Validation(errs)
	}
	from, to := parseRange(req.From, req.To)

	profile, _, err := s.mutateOwn(ctx, id, errNoProfileForEdu, func(p *models.Profile) bool {
		p.Education = prepend(p.Education, models.Education{
			ID:           primitive.NewObjectID(),
			School:       req.School,
			Degree:       req.Degree,
			FieldOfStudy: req.FieldOfStudy,
			From:         from,
			To:           to,
			Current:      req.Current,
			Description:  req.Description,
		})
		return true
	})
	return profile, err
}

// DeleteEducation mirrors DeleteExperience for education records.
func (s *ProfileService) DeleteEducation(ctx context.Context, id *auth.Identity, eduHex string) (profile *models.Profile, removed bool, err error) {
	return s.mutateOwn(ctx, id, errNoOwnProfile, func(p *models.Profile) bool {
		i := indexOf(p.Education, func(e models.Education) bool { return e.ID.Hex() == eduHex })
		if i < 0 {
			return false
		}
		p.Education = removeAt(p.Education, i)
		return true
	})
}

// parseRange converts already validated dates. to is nil when blank.
func parseRange(fromRaw, toRaw string) (from time.Time, to *time.Time) {
	from, _ = validation.ParseDate(fromRaw)
	if t, ok := validation.ParseDate(toRaw); ok {
		to = &t
	}
	return from, to
}
