package validation

// Input is the subset of form state the validators read.
type Input struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Country         string
	Gender          []string
	Password        string
	ConfirmPassword string
	Terms           bool
}

// Rules binds the validators to their shared context: the dialing code
// resolver for the phone check and the disposable-domain denylist.
type Rules struct {
	Codes    DialingCodes
	Denylist Denylist
}

// Validate runs the validator for field against in. Fields without a
// validator always pass.
func (r Rules) Validate(field Field, in Input) string {
	switch field {
	case FieldFirstName:
		return FirstName(in.FirstName)
	case FieldLastName:
		return LastName(in.LastName)
	case FieldEmail:
		return Email(in.Email, r.Denylist)
	case FieldPhone:
		return Phone(in.Phone, in.Country, r.Codes)
	case FieldGender:
		return Gender(in.Gender)
	case FieldPassword:
		return Password(in.Password)
	case FieldConfirmPassword:
		return ConfirmPassword(in.Password, in.ConfirmPassword)
	case FieldTerms:
		return Terms(in.Terms)
	default:
		return ""
	}
}

// ValidateAll runs every validator in ValidatedFields order and returns the
// failures.
func (r Rules) ValidateAll(in Input) []ValidationError {
	var out []ValidationError
	for _, field := range ValidatedFields {
		if msg := r.Validate(field, in); msg != "" {
			out = append(out, ValidationError{Field: field, Message: msg})
		}
	}
	return out
}

// Check returns an *AggregateSubmissionError when any validator fails.
func (r Rules) Check(in Input) error {
	if errs := r.ValidateAll(in); len(errs) > 0 {
		return &AggregateSubmissionError{Errors: errs}
	}
	return nil
}
