package validation

// Field identifies a form control by its stable logical name.
type Field string

const (
	FieldFirstName       Field = "firstName"
	FieldLastName        Field = "lastName"
	FieldEmail           Field = "email"
	FieldPhone           Field = "phone"
	FieldGender          Field = "gender"
	FieldAddress         Field = "address"
	FieldCountry         Field = "country"
	FieldState           Field = "state"
	FieldCity            Field = "city"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldTerms           Field = "terms"
)

// ValidatedFields lists the fields carrying a validator, in the order they
// run on submit.
var ValidatedFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldGender,
	FieldPassword,
	FieldConfirmPassword,
	FieldTerms,
}

// TextFields lists the fields edited as free text.
var TextFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldPassword,
	FieldConfirmPassword,
}

// Validated reports whether f has a validator.
func (f Field) Validated() bool {
	for _, candidate := range ValidatedFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// IsText reports whether f is edited as free text.
func (f Field) IsText() bool {
	for _, candidate := range TextFields {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseField resolves a logical field name; the boolean is false for names
// outside the form.
func ParseField(name string) (Field, bool) {
	switch f := Field(name); f {
	case FieldFirstName, FieldLastName, FieldEmail, FieldPhone, FieldGender,
		FieldAddress, FieldCountry, FieldState, FieldCity, FieldPassword,
		FieldConfirmPassword, FieldTerms:
		return f, true
	default:
		return "", false
	}
}

// Fixed user-facing messages.
const (
	MsgFirstNameRequired  = "First name is required."
	MsgLastNameRequired   = "Last name is required."
	MsgEmailInvalid       = "Enter a valid email address."
	MsgEmailDisposable    = "Disposable email domains are not allowed."
	MsgPhoneRequired      = "Phone number is required."
	MsgPhonePrefixFormat  = "Phone must start with %s."
	MsgPhoneInvalid       = "Enter a valid phone number with country code."
	MsgGenderRequired     = "Please select at least one gender."
	MsgPasswordTooShort   = "Password must be at least 8 characters."
	MsgConfirmRequired    = "Please confirm your password."
	MsgPasswordsDontMatch = "Passwords do not match."
	MsgTermsRequired      = "You must agree to the Terms & Conditions."
)
