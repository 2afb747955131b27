package browser

// snapshotScript walks the live DOM in-page and returns it as one JSON
// document. It crosses open shadow roots and same-origin iframe content
// documents; cross-origin frames are skipped silently. Element nodes
// carry layout data (absolute rect, visibility, scrollability) and a
// clickability hint derived from the computed cursor, so the Go side
// never has to round-trip per node.
const snapshotScript = `() => {
	const MAX_TEXT = 4000;

	const isVisible = (el, st) => {
		if (st.display === 'none' || st.visibility === 'hidden' || st.opacity === '0') {
			return false;
		}
		const r = el.getBoundingClientRect();
		return r.width > 0 && r.height > 0;
	};

	const walk = (n) => {
		if (n.nodeType === 3) {
			const v = n.nodeValue || '';
			if (!v.trim()) return null;
			return {t: 3, n: '#text', v: v.slice(0, MAX_TEXT)};
		}
		if (n.nodeType !== 1 && n.nodeType !== 9 && n.nodeType !== 11) {
			return null;
		}

		const out = {t: n.nodeType, n: n.nodeName || ''};

		if (n.nodeType === 1) {
			const el = n;
			if (el.attributes && el.attributes.length) {
				out.a = {};
				for (const at of el.attributes) out.a[at.name] = at.value;
			}

			const r = el.getBoundingClientRect();
			out.r = [r.left + window.scrollX, r.top + window.scrollY, r.width, r.height];

			const st = window.getComputedStyle(el);
			out.vis = isVisible(el, st);
			if (el.scrollHeight > el.clientHeight + 1 || el.scrollWidth > el.clientWidth + 1) {
				out.scr = true;
			}
			if (st.cursor === 'pointer' || el.onclick != null) {
				out.clk = true;
				out.cur = st.cursor;
			}

			if (el.shadowRoot) {
				const sr = walk(el.shadowRoot);
				if (sr) out.s = [sr];
			}
			if (el.tagName === 'IFRAME' || el.tagName === 'FRAME') {
				try {
					if (el.contentDocument) {
						const cd = walk(el.contentDocument);
						if (cd) out.d = cd;
					}
				} catch (e) {
					// cross-origin frame
				}
			}
		}

		const kids = [];
		for (const c of n.childNodes) {
			const k = walk(c);
			if (k) kids.push(k);
		}
		if (kids.length) out.c = kids;

		return out;
	};

	return JSON.stringify(walk(document));
}`
