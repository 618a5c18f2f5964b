package web

// calendarTemplate renders the month panels for /calendar. The root div
// carries data-ready="true" once executed; the snapshot capture waits for
// that attribute before taking the screenshot.
const calendarTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body {
    font-family: "Segoe UI", sans-serif;
    margin: 12px;
    {{if .Dark}}background: #1E1E1E; color: #DDDDDD;{{else}}background: #FFFFFF; color: #222222;{{end}}
  }
  .months { display: flex; flex-wrap: wrap; gap: 12px; }
  .month { border-collapse: collapse; }
  .month th.header {
    background: {{if .Dark}}#2D2D2D{{else}}#F3F3F3{{end}};
    font-size: 14px; padding: 4px;
  }
  .month th, .month td {
    width: 28px; height: 24px; text-align: center; font-size: 12px;
  }
  .wk { color: #888888; font-size: 10px; }
  .weekend { color: #CC0000; }
  .today { background: #0078D4 !important; color: #FFFFFF !important; font-weight: bold; }
</style>
</head>
<body>
<div class="root" data-ready="true">
  <div class="months">
  {{range .Months}}
    <table class="month">
      <tr><th class="header" colspan="8">{{.Header}}</th></tr>
      <tr><th class="wk">Wk</th>{{range $i, $d := .Days}}<th{{if ge $i 5}} class="weekend"{{end}}>{{$d}}</th>{{end}}</tr>
      {{range .Rows}}
      <tr>
        <td class="wk">{{.Week}}</td>
        {{range .Cells}}{{if eq .Day 0}}<td></td>{{else}}<td{{if .Today}} class="today"{{else if .Weekend}} class="weekend"{{end}}{{with .Style}} style="{{.}}"{{end}}{{with .Names}} title="{{range .}}{{.}}
{{end}}"{{end}}>{{.Day}}</td>{{end}}{{end}}
      </tr>
      {{end}}
    </table>
  {{end}}
  </div>
</div>
</body>
</html>
`
