// Package validation checks the shape of sign-up and post submissions and
// reports every failed rule with a user-facing message.
package validation

import (
	"regexp"
	"strings"

	"clubhouse/internal/model"

	"github.com/go-playground/validator/v10"
)

const (
	alphaErr  = "must only contain letters."
	lengthErr = "must be between 1 and 20 characters."
)

// SpecialChars is the set of characters that satisfies the special character rule.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

var (
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[` + regexp.QuoteMeta(SpecialChars) + `]`)

	commonPasswords = map[string]struct{}{
		"12345678": {},
		"password": {},
		"qwerty":   {},
	}
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hasdigit", func(fl validator.FieldLevel) bool {
		return digitRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("hasspecial", func(fl validator.FieldLevel) bool {
		return specialRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notcommon", func(fl validator.FieldLevel) bool {
		_, common := commonPasswords[fl.Field().String()]
		return !common
	})
	return v
}

// rule is one validator tag and the message reported when it fails.
type rule struct {
	tag string
	msg string
}

func check(errs *Errors, field, value string, rules ...rule) {
	for _, r := range rules {
		if validate.Var(value, r.tag) != nil {
			errs.Add(field, r.msg)
		}
	}
}

// SignUp trims the name fields and checks every sign-up rule. It returns the
// normalized input and a non-nil *Errors when any rule fails. Passwords are
// checked verbatim.
func SignUp(in model.SignUpInput) (model.SignUpInput, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)

	errs := &Errors{}
	check(errs, "firstName", in.FirstName,
		rule{"alpha", "First Name " + alphaErr},
		rule{"min=1,max=20", "First Name " + lengthErr},
	)
	check(errs, "lastName", in.LastName,
		rule{"alpha", "Last Name " + alphaErr},
		rule{"min=1,max=20", "Last Name " + lengthErr},
	)
	check(errs, "username", in.Username,
		rule{"alphanum", "Username must contain only letters and numbers."},
		rule{"min=1,max=20", "Username " + lengthErr},
	)
	check(errs, "password", in.Password,
		rule{"min=8,max=255", "Password must be at least 8 characters long and a maximum of 255 characters long."},
		rule{"hasdigit", "Password must contain at least one number"},
		rule{"hasspecial", "Password must contain at least one special character"},
		rule{"notcommon", "Do not use a common password"},
	)
	if validate.VarWithValue(in.ConfirmPassword, in.Password, "eqfield") != nil {
		errs.Add("confirmPassword", "Passwords do not match")
	}

	return in, errs.OrNil()
}

// Message trims and checks a new post.
func Message(in model.CreateMessageInput) (model.CreateMessageInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.MessageText = strings.TrimSpace(in.MessageText)

	errs := &Errors{}
	check(errs, "title", in.Title,
		rule{"required", "Title cannot be empty."},
		rule{"max=20", "Title cannot exceed 20 characters"},
	)
	check(errs, "message", in.MessageText,
		rule{"required", "Message cannot be empty."},
		rule{"max=280", "Message cannot exceed 280 characters"},
	)

	return in, errs.OrNil()
}
