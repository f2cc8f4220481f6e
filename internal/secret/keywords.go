// keywords.go — Keyword tables behind the authentication-form gate and kind
// detection. Each table covers English plus the handful of languages most
// commonly seen in login/registration markup (Spanish, French, German,
// Portuguese).
package secret

// authKeywords mark a form (by id/action/class/aria-label/title) as an
// authentication form.
var authKeywords = []string{
	"login", "log-in", "log_in", "signin", "sign-in", "sign_in",
	"signup", "sign-up", "sign_up", "register", "registration",
	"forgot", "reset", "recover", "recovery", "verify", "verification", "confirm",
	// Spanish
	"iniciar-sesion", "iniciar_sesion", "acceso", "registro", "olvide", "recuperar", "confirmar",
	// French
	"connexion", "inscription", "oublie", "recuperer", "confirmer",
	// German
	"anmelden", "anmeldung", "registrieren", "passwort-vergessen", "bestaetigen",
	// Portuguese
	"entrar", "cadastro", "esqueci", "recuperar-senha", "confirmar",
}

// passwordKeywords mark an input as a password field.
var passwordKeywords = []string{
	"password", "passwd", "pwd",
	"contrasena", "contrasenia", "clave",
	"mot-de-passe", "motdepasse",
	"passwort", "kennwort",
	"senha",
}

// emailKeywords mark an input as an email field.
var emailKeywords = []string{
	"email", "e-mail", "mail",
	"correo", "courriel",
}

// phoneKeywords mark an input as a phone field.
var phoneKeywords = []string{
	"phone", "mobile", "tel", "telephone",
	"telefono", "telephone-number",
	"telefon",
}

// otpKeywords mark a field as part of a one-time-code / verification flow.
var otpKeywords = []string{
	"otp", "one-time", "one_time", "verification-code", "verification_code",
	"code", "pin",
}

// tokenKeywords mark a field as holding an API token or generic secret.
var tokenKeywords = []string{
	"token", "apikey", "api-key", "api_key", "secret", "access-key", "access_key",
}

// modifierSuffixes map a naming modifier found in an input's name/id to the
// parameter-name suffix it contributes.
var modifierSuffixes = []struct {
	keyword string
	suffix  string
}{
	{"confirm", "_confirm"},
	{"verify", "_confirm"},
	{"new", "_new"},
	{"old", "_old"},
	{"current", "_old"},
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if containsFold(haystack, n) {
			return true
		}
	}
	return false
}
