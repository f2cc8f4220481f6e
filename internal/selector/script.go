// script.go — Embedded JS half of the selector synthesiser. The Go process
// has no direct DOM access, so candidate generation and uniqueness
// verification both happen in-page; SynthesiseScript returns a JSON
// Selector payload the caller unmarshals into scenario.Selector.
package selector

// SynthesiseScript computes a Selector for the element currently referenced
// by the script-local variable `window.__scenarioTarget`, which the caller
// must set (via a prior Eval or an event handler closure) before invoking
// this script. It mirrors stable.go's IsStableClass predicate in JS because
// synthesis must run against the live document, not a Go-side snapshot.
const SynthesiseScript = `(() => {
  const target = window.__scenarioTarget;
  if (!target) return null;

  const unstableClasses = new Set(['active', 'visible', 'hidden', 'open', 'closed']);
  function isStableClass(c) {
    if (c.length < 2) return false;
    if (/\d{4,}/.test(c)) return false;
    return !unstableClasses.has(c);
  }

  function verifies(sel) {
    try {
      const nodes = document.querySelectorAll(sel);
      return nodes.length === 1 && nodes[0] === target;
    } catch (e) {
      return false;
    }
  }

  function matchesAny(sel) {
    try {
      return document.querySelectorAll(sel).length > 0;
    } catch (e) {
      return false;
    }
  }

  function abbreviateParent(el) {
    if (!el) return '';
    if (el.id && !/^\d/.test(el.id)) return '#' + CSS.escape(el.id);
    const classes = Array.from(el.classList || []).filter(isStableClass);
    if (classes.length > 0) return el.tagName.toLowerCase() + '.' + CSS.escape(classes[0]);
    return el.tagName.toLowerCase();
  }

  function nthOfType(el) {
    if (!el.parentElement) return 1;
    const siblings = Array.from(el.parentElement.children).filter(c => c.tagName === el.tagName);
    return siblings.indexOf(el) + 1;
  }

  function nthChild(el) {
    if (!el.parentElement) return 1;
    return Array.from(el.parentElement.children).indexOf(el) + 1;
  }

  function nthOfTypeGlobal(el) {
    const all = Array.from(document.getElementsByTagName(el.tagName));
    return all.indexOf(el) + 1;
  }

  function candidates(el) {
    const tag = el.tagName.toLowerCase();
    const out = [];

    if (el.id && !/^\d/.test(el.id)) out.push('#' + CSS.escape(el.id));

    const testId = el.getAttribute('data-testid');
    if (testId) out.push('[data-testid="' + CSS.escape(testId) + '"]');

    const testAttr = el.getAttribute('data-test');
    if (testAttr) out.push('[data-test="' + CSS.escape(testAttr) + '"]');

    const classes = Array.from(el.classList || []).filter(isStableClass);
    for (const c of classes) out.push(tag + '.' + CSS.escape(c));

    if (classes.length > 1) {
      out.push(tag + '.' + classes.slice(0, 3).map(CSS.escape).join('.'));
    }

    if (el.getAttribute('name')) out.push(tag + '[name="' + CSS.escape(el.getAttribute('name')) + '"]');

    const attrParts = [];
    const role = el.getAttribute('role');
    const ariaLabel = el.getAttribute('aria-label');
    const placeholder = el.getAttribute('placeholder');
    if (role) attrParts.push('[role="' + CSS.escape(role) + '"]');
    if (ariaLabel) attrParts.push('[aria-label="' + CSS.escape(ariaLabel) + '"]');
    if (placeholder) attrParts.push('[placeholder="' + CSS.escape(placeholder) + '"]');
    if (attrParts.length > 0) out.push(tag + attrParts.join(''));

    const parentSel = abbreviateParent(el.parentElement);
    if (parentSel) {
      const byType = parentSel + ' > ' + tag + ':nth-of-type(' + nthOfType(el) + ')';
      out.push(byType);
      out.push(parentSel + ' > ' + tag + ':nth-child(' + nthChild(el) + ')');
    }

    out.push(tag + ':nth-of-type(' + nthOfTypeGlobal(el) + ')');

    return out;
  }

  const cand = candidates(target);
  let primary = null;
  const fallbacks = [];
  for (const sel of cand) {
    if (primary === null && verifies(sel)) {
      primary = sel;
    } else if (matchesAny(sel)) {
      fallbacks.push(sel);
    }
  }
  if (primary === null) return null;

  const el = target;
  const rect = el.getBoundingClientRect ? el.getBoundingClientRect() : null;
  const elementInfo = {
    tag: el.tagName.toLowerCase(),
    id: el.id || '',
    classes: Array.from(el.classList || []),
    name: el.getAttribute('name') || '',
    type: el.getAttribute('type') || '',
    role: el.getAttribute('role') || '',
    aria_label: el.getAttribute('aria-label') || '',
    placeholder: el.getAttribute('placeholder') || '',
    data_testid: el.getAttribute('data-testid') || '',
    data_test: el.getAttribute('data-test') || '',
    nth_of_type: nthOfType(el),
    nth_child: nthChild(el),
    text: (el.textContent || '').trim().slice(0, 80),
  };

  return JSON.stringify({
    primary: primary,
    fallbacks: fallbacks,
    element_info: elementInfo,
  });
})()`

// VerifyUniqueScript builds a script that reports whether selector resolves
// to exactly one node in the current document.
func VerifyUniqueScript(selector string) string {
	return `(() => {
  try {
    return document.querySelectorAll(` + jsStringLiteral(selector) + `).length === 1;
  } catch (e) {
    return false;
  }
})()`
}

// jsStringLiteral renders s as a double-quoted JS string literal, escaping
// characters that would otherwise break out of the quotes.
func jsStringLiteral(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			out = append(out, '\\', c)
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, c)
		}
	}
	out = append(out, '"')
	return string(out)
}
