package render

import (
	"bytes"
	"html/template"

	"github.com/Kuldeep2thakur/depression/internal/scoring"
)

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Mind Check - Result</title>
    <style>
      body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; color: #333; }
      main { max-width: 820px; margin: 40px auto; background: white; padding: 32px; border-radius: 10px; box-shadow: 0 4px 14px rgba(0, 0, 0, 0.08); }
      table { border-collapse: collapse; width: 100%; margin: 24px 0; }
      th, td { border: 1px solid #ddd; padding: 8px 12px; text-align: left; }
      tr.current { background-color: #e8f5e9; font-weight: bold; }
      .button { display: inline-block; padding: 10px 20px; background-color: #4CAF50; color: white; text-decoration: none; border-radius: 5px; margin-right: 12px; }
    </style>
  </head>
  <body>
    <main>
      <h1>Your result</h1>
      <p>Your total score is <strong id="score">{{.Score}}</strong>.</p>
      <h2 id="category">{{.Category.Label}}</h2>
      {{- with .Category.Advice}}
      <p id="advice">{{.}}</p>
      {{- end}}
      <table id="interpretation">
        <thead><tr><th>Score</th><th>Interpretation</th></tr></thead>
        <tbody>
        {{- range .Bands}}
          <tr{{if .Current}} class="current"{{end}}><td>{{.Min}}&ndash;{{.Max}}</td><td>{{.Label}}</td></tr>
        {{- end}}
        </tbody>
      </table>
      <p>This test is not a diagnosis. If you are struggling, please talk to a professional.</p>
      <a class="button" id="again" href="/quiz">Take the test again</a>
      <a class="button" id="home" href="/">Home</a>
    </main>
  </body>
</html>
`))

type bandRow struct {
	scoring.Band
	Current bool
}

type resultView struct {
	Score    int
	Category scoring.Band
	Bands    []bandRow
}

// Result renders the result page for score and its category, listing the
// full interpretation table with the category's row highlighted.
func Result(score int, category scoring.Band, table *scoring.Table) string {
	view := resultView{Score: score, Category: category}
	if table != nil {
		for _, b := range table.Bands() {
			view.Bands = append(view.Bands, bandRow{Band: b, Current: b == category})
		}
	}

	var buf bytes.Buffer
	if err := resultTemplate.Execute(&buf, view); err != nil {
		// The template and view are fixed; failure here is a programming error.
		panic(err)
	}
	return buf.String()
}
