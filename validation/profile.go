package validation

import "devconnect/models"

func Profile(req models.ProfileRequest) (Errors, bool) {
	errs := Errors{}

	handle := normalize(req.Handle)
	if !isEmpty(handle) && !isLength(handle, 2, 40) {
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}

	if isEmpty(normalize(req.Status)) {
		errs["status"] = "Status field is required"
	}
	if isEmpty(normalize(req.Skills)) {
		errs["skills"] = "Skills field is required"
	}

	links := []struct {
		field string
		value string
	}{
		{"website", req.Website},
		{"youtube", req.Youtube},
		{"twitter", req.Twitter},
		{"facebook", req.Facebook},
		{"linkedin", req.Linkedin},
		{"instagram", req.Instagram},
	}
	for _, link := range links {
		if v := normalize(link.value); !isEmpty(v) && !isURL(v) {
			errs[link.field] = "Not a valid URL"
		}
	}

	return errs, len(errs) == 0
}

func Experience(req models.ExperienceRequest) (Errors, bool) {
	errs := Errors{}

	if isEmpty(normalize(req.Title)) {
		errs["title"] = "Job title field is required"
	}
	if isEmpty(normalize(req.Company)) {
		errs["company"] = "Company field is required"
	}
	checkDates(errs, req.From, req.To)

	return errs, len(errs) == 0
}

func Education(req models.EducationRequest) (Errors, bool) {
	errs := Errors{}

	if isEmpty(normalize(req.School)) {
		errs["school"] = "School field is required"
	}
	if isEmpty(normalize(req.Degree)) {
		errs["degree"] = "Degree field is required"
	}
	if isEmpty(normalize(req.FieldOfStudy)) {
		errs["fieldofstudy"] = "Field of study field is required"
	}
	checkDates(errs, req.From, req.To)

	return errs, len(errs) == 0
}

func checkDates(errs Errors, from, to string) {
	from = normalize(from)
	if _, ok := ParseDate(from); !ok {
		errs["from"] = "From date is invalid"
	}
	if isEmpty(from) {
		errs["from"] = "From date field is required"
	}

	if to = normalize(to); !isEmpty(to) {
		if _, ok := ParseDate(to); !ok {
			errs["to"] = "To date is invalid"
		}
	}
}
