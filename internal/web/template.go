package web

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>lingodesk</title>
<style>
body { font-family: sans-serif; max-width: 760px; margin: 2em auto; }
textarea { width: 100%; }
fieldset { margin: 1em 0; border: 1px solid #ccc; }
.out { background: #f6f6f6; padding: 0.6em; margin: 0.4em 0; white-space: pre-wrap; }
.err { color: #a00; }
label { margin-right: 1em; }
</style>
</head>
<body>
<h1>Multilingual Query Handler</h1>
<form method="POST" action="/">
<textarea name="text" rows="4" placeholder="Message">{{.Text}}</textarea>
<fieldset>
<label><input type="checkbox" name="generate_reply"{{if .GenReply}} checked{{end}}> Generate reply?</label>
<label>Tone:
<select name="tone">
<option value="professional"{{if eq .Tone "professional"}} selected{{end}}>professional</option>
<option value="friendly"{{if eq .Tone "friendly"}} selected{{end}}>friendly</option>
<option value="formal"{{if eq .Tone "formal"}} selected{{end}}>formal</option>
</select>
</label>
<label>Rate translation:
<select name="rating">
<option value="0"{{if eq .Rating 0}} selected{{end}}>0</option>
<option value="1"{{if eq .Rating 1}} selected{{end}}>1</option>
<option value="2"{{if eq .Rating 2}} selected{{end}}>2</option>
<option value="3"{{if eq .Rating 3}} selected{{end}}>3</option>
<option value="4"{{if eq .Rating 4}} selected{{end}}>4</option>
<option value="5"{{if eq .Rating 5}} selected{{end}}>5</option>
</select>
</label>
<button type="submit">Translate</button>
</fieldset>
</form>
{{if .Submitted}}
{{if .Error}}
<p class="err">Logging failed: {{.Error}}</p>
{{else}}
<h3>Detected Language</h3><div class="out">{{.Result.DetectedSummary}}</div>
<h3>English Translation</h3><div class="out">{{.Result.Translation}}</div>
<h3>Suggested Reply</h3><div class="out">{{.Result.Reply}}</div>
<p>Status: {{.Result.Status}}</p>
{{end}}
{{end}}
</body>
</html>`
