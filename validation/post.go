package validation

import "devconnect/models"

// Text validates the body of a post or a comment.
func Text(req models.TextRequest) (Errors, bool) {
	errs := Errors{}

	text := normalize(req.Text)

	if !isLength(text, 2, 300) {
		errs["text"] = "Minimum of words should be from 2 to 300"
	}
	if isEmpty(text) {
		errs["text"] = "Text field is empty"
	}

	return errs, len(errs) == 0
}
