package validators

import (
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func IsEmailFormatValid(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

// IsEmailDomainValid resolves the domain's MX or A records. It performs DNS
// lookups and is not used on the booking hot path.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
