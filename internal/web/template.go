// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import "html/template"

// pageData feeds the single page of the shell.
type pageData struct {
	Warnings  []string
	Notice    string
	Info      string
	Summary   string
	HasResult bool
	Pages     int
	Summarize bool
}

var page = template.Must(template.New("index").Parse(`
<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Document Combiner &amp; Summarizer</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    body { font-family: system-ui, -apple-system, Segoe UI, Roboto, sans-serif; margin: 24px auto; max-width: 760px; }
    h1 { font-size:24px; margin:0 0 12px 0; }
    .box { border:1px solid #eee; border-radius:12px; padding:12px; margin-bottom:16px; }
    .row { display:flex; gap:12px; align-items:center; flex-wrap:wrap; }
    .btn { padding:10px 14px; border:0; background:#111; color:#fff; border-radius:10px; cursor:pointer; text-decoration:none; }
    .warning { background:#fff8e1; border-left:4px solid #f5a623; padding:8px 10px; margin:6px 0; list-style:none; }
    .info { background:#e8f4fd; border-left:4px solid #1c83e1; padding:8px 10px; }
    textarea { width:100%; height:200px; }
  </style>
</head>
<body>
  <h1>Document Merge &amp; Consistency Check</h1>
  <p>Upload multiple PDFs. Click 'Combine &amp; Summarize' to create a single PDF and check for field consistencies.</p>

  <form class="box" method="post" action="/combine" enctype="multipart/form-data">
    <p><input type="file" name="files" multiple></p>
    <p><label><input type="checkbox" name="summarize" value="on"{{if .Summarize}} checked{{end}}>
      Call DB stored procedure to summarize combined PDF (requires DB env vars)</label></p>
    <div class="row">
      <button class="btn" id="combine" type="submit">Combine &amp; Summarize</button>
      {{if .HasResult}}<a class="btn" id="download" href="/download">Download combined PDF</a>
      <span class="pages">{{.Pages}} pages</span>{{end}}
    </div>
  </form>

  {{if .Notice}}<ul><li class="warning notice">{{.Notice}}</li></ul>{{end}}
  {{if .Warnings}}<ul id="warnings">{{range .Warnings}}
    <li class="warning">{{.}}</li>{{end}}
  </ul>{{end}}
  {{if .Info}}<p class="info">{{.Info}}</p>{{end}}

  <h2>Summary</h2>
  <label for="summary">AI / DB Summary</label>
  <textarea id="summary" readonly>{{.Summary}}</textarea>
</body>
</html>
`))
