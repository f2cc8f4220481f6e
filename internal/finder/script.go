// script.go — Embedded JS half of the smart element finder. Candidate
// collection runs in-page (the Go process has no direct DOM access); the
// Go side only ranks the returned descriptors against the requested text.
package finder

// CollectCandidatesScript enumerates interactive elements currently in the
// document and returns, for each, a best-effort unique selector plus the
// descriptive text fields the ranker scores against. It deliberately does
// not attempt the full stability analysis internal/selector does at
// synthesis time — this is a recovery-path scan, not a recording-time
// selector synthesis, so a short nth-of-type path is good enough.
const CollectCandidatesScript = `(() => {
  const interactive = 'a, button, input, select, textarea, [role="button"], [role="link"], [role="checkbox"], [role="menuitem"], [onclick]';
  const nodes = Array.from(document.querySelectorAll(interactive));

  function cssPath(el) {
    if (el.id && !/^\d/.test(el.id)) return '#' + CSS.escape(el.id);
    const parts = [];
    let node = el;
    for (let depth = 0; node && node.nodeType === 1 && depth < 4; depth++) {
      let seg = node.tagName.toLowerCase();
      if (node.parentElement) {
        const siblings = Array.from(node.parentElement.children).filter(c => c.tagName === node.tagName);
        if (siblings.length > 1) {
          seg += ':nth-of-type(' + (siblings.indexOf(node) + 1) + ')';
        }
      }
      parts.unshift(seg);
      if (node.id && !/^\d/.test(node.id)) {
        parts[0] = '#' + CSS.escape(node.id);
        break;
      }
      node = node.parentElement;
    }
    return parts.join(' > ');
  }

  function visible(el) {
    const r = el.getBoundingClientRect();
    const style = getComputedStyle(el);
    return r.width > 0 && r.height > 0 && style.visibility !== 'hidden' && style.display !== 'none';
  }

  return nodes.filter(visible).map(el => ({
    selector: cssPath(el),
    tag: el.tagName.toLowerCase(),
    text: (el.innerText || el.value || '').trim().slice(0, 200),
    aria_label: el.getAttribute('aria-label') || '',
    placeholder: el.getAttribute('placeholder') || '',
    id: el.id || '',
    name: el.getAttribute('name') || '',
    role: el.getAttribute('role') || '',
    data_testid: el.getAttribute('data-testid') || '',
  }));
})()`
