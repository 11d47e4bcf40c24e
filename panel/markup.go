package panel

import (
	"html/template"
	"strings"

	"glyph-panel/catalog"
)

// categoryColors maps known glyph categories to their button colors. The
// table is ordered so the emitted style block is byte-stable across renders.
var categoryColors = []struct {
	Name  string
	Color string
}{
	{"function", "#6fbf6f"},
	{"modifier1", "#c586c0"},
	{"modifier2", "#d8a657"},
	{"number", "#b5cea8"},
	{"comparison", "#569cd6"},
	{"logic", "#4ec9b0"},
	{"arithmetic", "#9cdcfe"},
	{"structural", "#ce9178"},
	{"selection", "#dcdcaa"},
	{"search", "#d16969"},
	{"assignment", "#c8c8c8"},
	{"syntax", "#808080"},
	{"bracket", "#ffd700"},
	{"constant", "#4fc1ff"},
	{"system", "#f44747"},
	{catalog.DefaultCategory, "#d4d4d4"},
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Glyphs</title>
<style>
body { margin: 0; padding: 6px; background: #1e1e1e; font-family: sans-serif; }
#palette { display: flex; flex-wrap: wrap; gap: 4px; }
.glyph-button {
  min-width: 30px; height: 30px; padding: 2px 6px;
  font-size: 18px; line-height: 1;
  color: #d4d4d4;
  background: #2d2d2d; border: 1px solid #3c3c3c; border-radius: 3px;
  cursor: pointer;
}
.glyph-button:hover { background: #3c3c3c; }
{{range .Colors}}.cat-{{.Name}} { color: {{.Color}}; }
{{end}}#toast {
  position: fixed; left: 8px; right: 8px; bottom: 8px; padding: 6px 10px;
  border-radius: 3px; color: #fff; display: none; font-size: 12px;
}
#toast.info { background: #264f78; }
#toast.error { background: #5a1d1d; }
</style>
</head>
<body>
<div id="palette">
{{- range .Glyphs}}
<button class="glyph-button cat-{{.Category}}" title="{{.Name}}">{{.Glyph}}</button>
{{- end}}
</div>
<div id="toast"></div>
<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/api/panel/ws");
  var toastTimer = null;

  function toast(kind, text) {
    var el = document.getElementById("toast");
    el.textContent = text;
    el.className = kind;
    el.style.display = "block";
    if (toastTimer) clearTimeout(toastTimer);
    toastTimer = setTimeout(function () { el.style.display = "none"; }, 3000);
  }

  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "refresh") location.reload();
    if (msg.type === "notification") toast(msg.kind, msg.text);
  };

  document.getElementById("palette").addEventListener("click", function (ev) {
    var b = ev.target.closest("button.glyph-button");
    if (!b || ws.readyState !== WebSocket.OPEN) return;
    ws.send(JSON.stringify({ command: "insertGlyph", glyph: b.textContent }));
  });
})();
</script>
</body>
</html>
`

var page = template.Must(template.New("panel").Parse(pageTemplate))

// Render produces the panel page for the given glyph list. It is pure and
// deterministic: identical input yields byte-identical markup. Categories
// outside the style table keep their class but inherit the button's base
// color.
func Render(glyphs []catalog.Glyph) string {
	var b strings.Builder
	data := struct {
		Colors []struct{ Name, Color string }
		Glyphs []catalog.Glyph
	}{categoryColors, glyphs}
	if err := page.Execute(&b, data); err != nil {
		// The template and data are fixed shapes; Execute cannot fail on them.
		panic(err)
	}
	return b.String()
}
