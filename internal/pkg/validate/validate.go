// Package validate turns validator errors into the per-field detail maps the
// API returns with 400 responses.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Details converts a binding error into a field → message map. A non-validator
// error (malformed JSON, wrong types) yields a single "body" entry.
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "Corps de requête invalide"}
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldName(fe)] = message(fe)
	}
	return details
}

func fieldName(fe validator.FieldError) string {
	f := fe.Field()
	if f == "" {
		return "body"
	}
	return strings.ToLower(f[:1]) + f[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est requis"
	case "email":
		return "Email invalide"
	case "min":
		return fmt.Sprintf("Doit contenir au moins %s caractères", fe.Param())
	case "max":
		return fmt.Sprintf("Doit contenir au plus %s caractères", fe.Param())
	case "gte":
		return fmt.Sprintf("Doit être supérieur ou égal à %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Doit être inférieur ou égal à %s", fe.Param())
	case "oneof":
		return "Valeur non autorisée"
	case "url":
		return "URL invalide"
	case "hexcolor":
		return "Couleur invalide"
	default:
		return "Valeur invalide"
	}
}
