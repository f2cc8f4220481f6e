// script.go — Embedded in-page recorder: a movable widget plus capture-
// phase listeners that turn DOM events into a queue the host drains with
// DrainScript. Idempotent per page: a second injection reuses the live
// instance if one is already running.
package recorder

// InjectScript installs the recorder widget and listeners on
// window.__scenarioRecorder if not already present, and restores any
// durable per-origin state (entries older than 24h are discarded, and a
// "clearing" sentinel set right after a save suppresses restore until the
// widget's Start button is pressed again).
const InjectScript = `(() => {
  if (window.__scenarioRecorder && window.__scenarioRecorder.alive) {
    return true;
  }

  const STORAGE_KEY = '__scenario_recorder_state__';
  const MAX_AGE_MS = 24 * 60 * 60 * 1000;

  function loadDurable() {
    try {
      const raw = localStorage.getItem(STORAGE_KEY);
      if (!raw) return null;
      const parsed = JSON.parse(raw);
      if (parsed.clearing) return null;
      if (Date.now() - parsed.savedAtMs > MAX_AGE_MS) return null;
      return parsed;
    } catch (e) {
      return null;
    }
  }

  function saveDurable(state) {
    try {
      localStorage.setItem(STORAGE_KEY, JSON.stringify(Object.assign({}, state, { savedAtMs: Date.now() })));
    } catch (e) { /* storage unavailable, recording continues in-memory only */ }
  }

  function markClearing() {
    try {
      localStorage.setItem(STORAGE_KEY, JSON.stringify({ clearing: true, savedAtMs: Date.now() }));
    } catch (e) {}
  }

  const restored = loadDurable();

  const recorder = {
    alive: true,
    queue: [],
    recording: restored ? restored.recording : false,
    paused: restored ? restored.paused : false,
    hoverCandidates: restored ? (restored.hoverCandidates || {}) : {},
    widgetPos: restored ? restored.widgetPos : { x: 16, y: 16, collapsed: false },
    inputTimers: {},
    scrollTimers: {},
    lastInputValues: {},
    dragStart: null,
  };
  window.__scenarioRecorder = recorder;

  function persist() {
    saveDurable({
      recording: recorder.recording,
      paused: recorder.paused,
      hoverCandidates: recorder.hoverCandidates,
      widgetPos: recorder.widgetPos,
    });
  }

  function emit(kind, data) {
    recorder.queue.push(Object.assign({ kind: kind, timestamp_ms: Date.now() }, data));
  }

  // ---- selector synthesis (mirrors internal/selector's priority order) ----
  const unstableClasses = new Set(['active', 'visible', 'hidden', 'open', 'closed']);
  function isStableClass(c) {
    return c.length >= 2 && !/\d{4,}/.test(c) && !unstableClasses.has(c);
  }
  function verifiesUnique(sel, node) {
    try {
      const nodes = document.querySelectorAll(sel);
      return nodes.length === 1 && nodes[0] === node;
    } catch (e) { return false; }
  }
  function synthesise(el) {
    const tag = el.tagName.toLowerCase();
    const cands = [];
    if (el.id && !/^\d/.test(el.id)) cands.push('#' + CSS.escape(el.id));
    const testId = el.getAttribute('data-testid');
    if (testId) cands.push('[data-testid="' + CSS.escape(testId) + '"]');
    const testAttr = el.getAttribute('data-test');
    if (testAttr) cands.push('[data-test="' + CSS.escape(testAttr) + '"]');
    const classes = Array.from(el.classList || []).filter(isStableClass);
    classes.forEach(c => cands.push(tag + '.' + CSS.escape(c)));
    if (classes.length > 1) cands.push(tag + '.' + classes.slice(0, 3).map(CSS.escape).join('.'));
    if (el.getAttribute('name')) cands.push(tag + '[name="' + CSS.escape(el.getAttribute('name')) + '"]');
    let primary = null;
    const fallbacks = [];
    for (const sel of cands) {
      if (primary === null && verifiesUnique(sel, el)) primary = sel;
      else if (document.querySelectorAll(sel).length > 0) fallbacks.push(sel);
    }
    if (primary === null) primary = tag + ':nth-of-type(1)';
    return {
      primary: primary,
      fallbacks: fallbacks,
      element_info: {
        tag: tag, id: el.id || '', classes: Array.from(el.classList || []),
        name: el.getAttribute('name') || '', type: el.getAttribute('type') || '',
        text: (el.textContent || '').trim().slice(0, 80),
      },
    };
  }

  // ---- click: walk up to 5 ancestors for the real clickable target ----
  function findClickable(el) {
    let node = el;
    for (let i = 0; i < 5 && node; i++, node = node.parentElement) {
      const style = window.getComputedStyle(node);
      if (node.onclick || style.cursor === 'pointer' ||
          ['button', 'link', 'menuitem'].includes((node.getAttribute('role') || '')) ||
          ['A', 'BUTTON'].includes(node.tagName) ||
          node.hasAttribute('data-action') || node.hasAttribute('data-testid')) {
        return node;
      }
    }
    return el;
  }

  function isWidgetEvent(el) {
    return !!(el.closest && el.closest('#__scenario_recorder_widget'));
  }

  document.addEventListener('click', (e) => {
    if (!recorder.recording || recorder.paused) return;
    if (isWidgetEvent(e.target)) return;
    const target = findClickable(e.target);
    const sel = synthesise(target);
    emit('click', { selector: sel, text: (target.textContent || '').trim().slice(0, 80), href: target.href || '' });

    // a purposeful click confirms (removes) a matching hover candidate
    let node = e.target;
    for (let i = 0; i < 4 && node; i++, node = node.parentElement) {
      const s = synthesise(node).primary;
      if (recorder.hoverCandidates[s]) { delete recorder.hoverCandidates[s]; break; }
    }
    persist();
  }, true);

  function formContext(el) {
    const form = el.form || el.closest('form');
    return {
      form_id: form ? (form.id || '') : '',
      form_action: form ? (form.action || '') : '',
      form_classes: form ? Array.from(form.classList || []) : [],
      form_aria_label: form ? (form.getAttribute('aria-label') || '') : '',
      form_title: form ? (form.title || '') : '',
      has_password_field: form ? !!form.querySelector('input[type="password"]') : el.type === 'password',
      input_type: el.type || '',
      input_name: el.name || '',
      input_id: el.id || '',
      input_placeholder: el.placeholder || '',
      input_aria_label: el.getAttribute('aria-label') || '',
      input_autocomplete: el.autocomplete || '',
      max_length: el.maxLength > 0 ? el.maxLength : 0,
    };
  }

  document.addEventListener('input', (e) => {
    if (!recorder.recording || recorder.paused) return;
    if (isWidgetEvent(e.target)) return;
    const el = e.target;
    if (!(el.tagName === 'INPUT' || el.tagName === 'TEXTAREA')) return;
    const sel = synthesise(el);
    const key = sel.primary;
    clearTimeout(recorder.inputTimers[key]);
    recorder.inputTimers[key] = setTimeout(() => {
      const value = String(el.value || '');
      const prev = recorder.lastInputValues[key] || '';
      if (value === prev) return;
      const clearFirst = prev === '';
      recorder.lastInputValues[key] = value;
      emit('input', { selector: sel, text: value, clear_first: clearFirst, form_context: formContext(el) });
    }, 500);
  }, true);

  document.addEventListener('change', (e) => {
    if (!recorder.recording || recorder.paused) return;
    if (isWidgetEvent(e.target)) return;
    const el = e.target;
    if (el.tagName === 'SELECT') {
      const sel = synthesise(el);
      emit('change', { selector: sel, select_mode: 'native', text: el.value, is_secret: false });
    } else if (el.tagName === 'INPUT' && el.type === 'file' && el.files && el.files.length > 0) {
      const sel = synthesise(el);
      emit('change', { selector: sel, select_mode: 'upload', file_path: '{{filePath}}' });
    }
  }, true);

  document.addEventListener('scroll', (e) => {
    if (!recorder.recording || recorder.paused) return;
    const target = e.target === document ? window : e.target;
    const key = target === window ? '__window__' : synthesise(target).primary;
    clearTimeout(recorder.scrollTimers[key]);
    recorder.scrollTimers[key] = setTimeout(() => {
      const x = target === window ? window.scrollX : target.scrollLeft;
      const y = target === window ? window.scrollY : target.scrollTop;
      emit('scroll', { x: Math.round(x), y: Math.round(y) });
    }, 1000);
  }, true);

  document.addEventListener('mouseover', (e) => {
    if (!recorder.recording || recorder.paused) return;
    if (isWidgetEvent(e.target)) return;
    const el = e.target;
    let hasHoverRule = false;
    try {
      for (const sheet of document.styleSheets) {
        for (const rule of (sheet.cssRules || [])) {
          if (rule.selectorText && rule.selectorText.includes(':hover') && el.matches(rule.selectorText.replace(/:hover/g, ''))) {
            hasHoverRule = true; break;
          }
        }
        if (hasHoverRule) break;
      }
    } catch (e) { /* cross-origin stylesheet, ignore */ }
    if (!hasHoverRule) return;
    const sel = synthesise(el);
    emit('mouseover', { selector: sel });
    recorder.hoverCandidates[sel.primary] = true;
    persist();
  }, true);

  const specialKeys = new Set(['Enter', 'Escape', 'Tab', 'ArrowUp', 'ArrowDown', 'ArrowLeft', 'ArrowRight']);
  document.addEventListener('keydown', (e) => {
    if (!recorder.recording || recorder.paused) return;
    if (!specialKeys.has(e.key)) return;
    const mods = [];
    if (e.ctrlKey) mods.push('Control');
    if (e.shiftKey) mods.push('Shift');
    if (e.altKey) mods.push('Alt');
    if (e.metaKey) mods.push('Meta');
    emit('keydown', { key: e.key, modifiers: mods });
  }, true);

  document.addEventListener('dragstart', (e) => {
    if (!recorder.recording || recorder.paused) return;
    recorder.dragStart = { selector: synthesise(e.target), x: e.clientX, y: e.clientY };
  }, true);

  document.addEventListener('dragend', (e) => {
    if (!recorder.recording || recorder.paused || !recorder.dragStart) return;
    emit('drag', { selector: recorder.dragStart.selector, drag_target: synthesise(e.target) });
    recorder.dragStart = null;
  }, true);

  // ---- widget ----
  const widget = document.createElement('div');
  widget.id = '__scenario_recorder_widget';
  widget.style.cssText = 'position:fixed;z-index:2147483647;left:' + recorder.widgetPos.x +
    'px;top:' + recorder.widgetPos.y + 'px;background:#1d1d1f;color:#fff;font:12px sans-serif;' +
    'padding:8px 10px;border-radius:6px;box-shadow:0 2px 8px rgba(0,0,0,.3);cursor:move;';
  widget.innerHTML = '<span id="__sr_status">idle</span> ' +
    '<button id="__sr_start">Start</button><button id="__sr_pause">Pause</button>' +
    '<button id="__sr_stop">Stop & Save</button>';
  document.body.appendChild(widget);

  function setStatus(s) {
    const el = document.getElementById('__sr_status');
    if (el) el.textContent = s;
  }
  setStatus(recorder.recording ? (recorder.paused ? 'paused' : 'recording') : 'idle');

  document.getElementById('__sr_start').addEventListener('click', () => {
    recorder.recording = true;
    recorder.paused = false;
    emit('widget_start', {});
    setStatus('recording');
    persist();
  });
  document.getElementById('__sr_pause').addEventListener('click', () => {
    if (!recorder.recording) return;
    recorder.paused = !recorder.paused;
    emit(recorder.paused ? 'widget_pause' : 'widget_start', {});
    setStatus(recorder.paused ? 'paused' : 'recording');
    persist();
  });
  document.getElementById('__sr_stop').addEventListener('click', () => {
    const name = window.prompt('Scenario name?') || '';
    emit('widget_stop', { scenario_name: name });
    recorder.recording = false;
    recorder.paused = false;
    setStatus('idle');
    markClearing();
  });

  return true;
})()`

// DrainScript returns the script the host polls to pull buffered events off
// the page and clear the queue.
const DrainScript = `(() => {
  const r = window.__scenarioRecorder;
  if (!r) return JSON.stringify([]);
  const q = r.queue;
  r.queue = [];
  return JSON.stringify(q);
})()`

// IsAliveScript reports whether a recorder instance is already injected and
// running, for the reinjector's idempotence check.
const IsAliveScript = `(() => !!(window.__scenarioRecorder && window.__scenarioRecorder.alive))()`
