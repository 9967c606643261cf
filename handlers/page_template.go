package handlers

const homeHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>LeetCode Stats</title>
	<style>
		body {
			font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;
			line-height: 1.6;
			color: #333;
			max-width: 800px;
			margin: 0 auto;
			padding: 20px;
			background-color: #f9f9f9;
		}
		.container {
			background-color: #fff;
			padding: 40px;
			border-radius: 8px;
			box-shadow: 0 2px 4px rgba(0,0,0,0.1);
		}
		h1 { color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
		.time { color: #7f8c8d; font-style: italic; }
		.error { background-color: #fdecea; color: #c0392b; padding: 15px; border-radius: 5px; margin: 20px 0; }
		.bar { background-color: #eee; border-radius: 4px; height: 10px; margin-bottom: 12px; }
		.bar span { display: block; height: 10px; border-radius: 4px; background-color: #f39c12; }
		.badge { display: inline-block; background-color: #e8f4f8; padding: 4px 10px; border-radius: 12px; margin: 2px; }
		.answer { background-color: #f4f6f7; padding: 15px; border-radius: 5px; margin-top: 20px; overflow-x: auto; }
	</style>
</head>
<body>
	<div class="container">
		<h1>LeetCode Stats</h1>
		<div class="time">{{.CurrentTime}}</div>

		<form method="POST" action="/">
			<input type="text" name="username" value="{{.Input}}" placeholder="LeetCode username or a question" required>
			<label><input type="checkbox" name="gemini_mode" value="true" {{if .GeminiMode}}checked{{end}}> Ask Gemini</label>
			<button type="submit">Go</button>
		</form>

		{{if .Error}}
		<div class="error">{{.Error}}</div>
		{{end}}

		{{with .Stats}}
		<h2>{{.Username}}</h2>
		{{if .Rank}}<p>Rank: <strong>{{deref .Rank}}</strong></p>{{end}}
		<p>Total solved: <strong>{{.TotalSolved}}</strong></p>

		{{range .Difficulties}}
		<div>{{.Difficulty}}: {{.Solved}} ({{.Percent}}%)</div>
		<div class="bar"><span style="width: {{.Percent}}%"></span></div>
		{{end}}

		{{if .TopLanguages}}
		<h3>Top languages</h3>
		<ul>
			{{range .TopLanguages}}<li>{{.Language}}: {{.Solved}}</li>{{end}}
		</ul>
		{{end}}

		{{if .Badges}}
		<h3>Badges</h3>
		<div>{{range .Badges}}<span class="badge">{{.}}</span>{{end}}</div>
		{{end}}
		{{end}}

		{{if .GeminiResponse}}
		<div class="answer">{{.GeminiResponse}}</div>
		{{end}}
	</div>
</body>
</html>
`
