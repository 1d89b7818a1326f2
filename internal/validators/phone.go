package validators

import "strings"

var phoneNoise = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "", "\t", "")

// NormalizePhone drops formatting characters so that lookups match exactly.
func NormalizePhone(phone string) string {
	return phoneNoise.Replace(strings.TrimSpace(phone))
}

// IsPhoneValid expects an already normalized number: an optional leading +
// followed by 6 to 15 digits.
func IsPhoneValid(phone string) bool {
	digits := strings.TrimPrefix(phone, "+")
	return validate.Var(digits, "required,number,min=6,max=15") == nil
}
