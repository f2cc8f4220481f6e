// script.go — In-page mirror of the gate and kind detector, for the
// recorder's event handlers where classification must happen without a
// round trip to the host. form.go/classify.go are the authoritative Go
// implementation; this mirrors their keyword tables so both halves treat
// the same input the same way.
package secret

// ClassifyScript returns JS that classifies the input currently bound to
// window.__scenarioTarget and returns a JSON Result-shaped object.
const ClassifyScript = `(() => {
  const target = window.__scenarioTarget;
  if (!target) return JSON.stringify({ is_secret: false });

  const authKeywords = ['login','log-in','log_in','signin','sign-in','sign_in','signup','sign-up','sign_up',
    'register','registration','forgot','reset','recover','recovery','verify','verification','confirm',
    'iniciar-sesion','iniciar_sesion','acceso','registro','olvide','recuperar','confirmar',
    'connexion','inscription','oublie','recuperer','confirmer',
    'anmelden','anmeldung','registrieren','passwort-vergessen','bestaetigen',
    'entrar','cadastro','esqueci','recuperar-senha'];
  const passwordKeywords = ['password','passwd','pwd','contrasena','contrasenia','clave','mot-de-passe','motdepasse','passwort','kennwort','senha'];
  const emailKeywords = ['email','e-mail','mail','correo','courriel'];
  const phoneKeywords = ['phone','mobile','tel','telephone','telefono','telefon'];
  const otpKeywords = ['otp','one-time','one_time','verification-code','verification_code','code','pin'];
  const tokenKeywords = ['token','apikey','api-key','api_key','secret','access-key','access_key'];
  const modifiers = [['confirm','_confirm'], ['verify','_confirm'], ['new','_new'], ['old','_old'], ['current','_old']];

  function containsAny(haystack, list) {
    const h = (haystack || '').toLowerCase();
    return list.some(k => h.includes(k));
  }

  function findForm(el) {
    let form = el.closest ? el.closest('form') : null;
    return form;
  }

  function isAuthForm(form) {
    if (!form) return false;
    if (form.querySelector('input[type="password"]')) return true;
    const probe = [form.id, form.action, form.className, form.getAttribute('aria-label'), form.title].join(' ');
    return containsAny(probe, authKeywords);
  }

  function withModifier(kind, el) {
    const probe = (el.name || '') + ' ' + (el.id || '');
    for (const [kw, suffix] of modifiers) {
      if (probe.toLowerCase().includes(kw)) return kind + suffix;
    }
    return kind;
  }

  const form = findForm(target);
  if (!isAuthForm(form)) return JSON.stringify({ is_secret: false });

  const type = (target.getAttribute('type') || '').toLowerCase();
  const probe = [target.name, target.id, target.placeholder, target.getAttribute('aria-label'), target.autocomplete].join(' ');
  const maxLength = target.maxLength > 0 ? target.maxLength : 0;

  let kind = null;
  if (type === 'password' || containsAny(probe, passwordKeywords)) {
    kind = 'password';
  } else if (type === 'email' || containsAny(probe, emailKeywords)) {
    kind = 'email';
  } else if (type === 'tel' || containsAny(probe, phoneKeywords)) {
    kind = 'phone';
  } else if ((type === '' || type === 'text' || type === 'number') && containsAny(probe, otpKeywords) &&
             (maxLength === 0 || (maxLength >= 4 && maxLength <= 8))) {
    kind = 'otp';
  } else if (containsAny(probe, tokenKeywords)) {
    kind = 'token';
  }

  if (!kind) return JSON.stringify({ is_secret: false });
  return JSON.stringify({ is_secret: true, kind: kind, parameter_name: withModifier(kind, target) });
})()`
