package topcoder

import (
	"fmt"
	"strconv"
	"strings"

	"ojtools/lib/htmlutil"
	"ojtools/lib/judge"

	"github.com/PuerkitoBio/goquery"
)

// problemData is the transient result of walking one statement page.
// It never leaves this package.
type problemData struct {
	Definition map[string]string
	RawSamples []rawSample
	Samples    []judge.TestCase
}

// rawSample is one example block before literal normalization: the
// ordered <pre> argument literals and the "Returns: " literal.
type rawSample struct {
	Inputs []string
	Output string
}

const returnsMarker = "Returns: "

// definitionFields are the labeled cells every Definition section must
// carry. A missing label makes the whole definition unusable, so any
// absence is fatal.
var definitionFields = []struct {
	label string
	key   string
}{
	{"Class:", "class"},
	{"Method:", "method"},
	{"Parameters:", "parameters"},
	{"Returns:", "returns"},
	{"Method signature:", "method_signature"},
}

// parseProblemStatement walks the statement markup:
//
//	<td class="problemText">
//	  <tr>...<h3>Definition</h3>...</tr>
//	  <tr><td/><td><table> <tr><td>Class:</td><td>...</td></tr> ... </table></td></tr>
//	  ...
//	  <tr>...<h3>Examples</h3>...</tr>
//	  <tr><td>0)</td><td/></tr>
//	  <tr><td/><td><table> <pre>{5, 8}</pre> ... <pre>Returns: 40.0</pre> </table></td></tr>
//	  <tr><td>1)</td><td/></tr>
//	  ...
//
// The walk is positional: example rows carry no identifier other than
// the ordinal printed in their header cell, so any deviation from the
// expected shape aborts the parse rather than guessing.
func parseProblemStatement(doc *goquery.Document) (*problemData, error) {
	problemTexts := doc.Find("td.problemText")
	if problemTexts.Length() != 1 {
		return nil, &judge.SampleParseError{Reason: `<td class="problemText"> is not found or not unique`}
	}
	problemText := problemTexts.First()

	definition, err := parseDefinition(problemText)
	if err != nil {
		return nil, err
	}

	raw, err := parseExamples(problemText)
	if err != nil {
		return nil, err
	}

	return &problemData{
		Definition: definition,
		RawSamples: raw,
		Samples:    buildTestCases(raw),
	}, nil
}

func parseDefinition(problemText *goquery.Selection) (map[string]string, error) {
	h3 := htmlutil.FindByExactText(problemText, "h3", "Definition")
	if h3 == nil {
		return nil, &judge.SampleParseError{Reason: "<h3>Definition</h3> is not found"}
	}

	// the h3 sits in a td inside a tr; the row after it holds the
	// nested table of labeled field cells
	section := h3.Parent().Parent().Next()
	definition := map[string]string{}
	for _, field := range definitionFields {
		td := htmlutil.FindByExactText(section, "td.statText", field.label)
		if td == nil {
			return nil, judge.SampleParseErrorf("<td>%s</td> is not found", field.label)
		}
		definition[field.key] = htmlutil.CleanInline(td.Next().Text())
	}
	return definition, nil
}

func parseExamples(problemText *goquery.Selection) ([]rawSample, error) {
	h3 := htmlutil.FindByExactText(problemText, "h3", "Examples")
	if h3 == nil {
		return nil, &judge.SampleParseError{Reason: "<h3>Examples</h3> is not found"}
	}

	var raw []rawSample
	cursor := h3.Parent().Parent()
	for {
		// the header row: "<n>)" where n is the next zero-based ordinal
		cursor = cursor.Next()
		if cursor.Length() == 0 || !cursor.Is("tr") {
			// all examples consumed
			break
		}
		header := strings.TrimSpace(cursor.Find("td").First().Text())
		expected := fmt.Sprintf("%d)", len(raw))
		if header != expected {
			return nil, judge.SampleParseErrorf("<td>%s</td> is expected, but got %q", expected, header)
		}

		// the body row: <pre> literals in document order, terminated
		// by the "Returns: " marker
		cursor = cursor.Next()
		if cursor.Length() == 0 || !cursor.Is("tr") {
			return nil, &judge.SampleParseError{Reason: "<tr>...</tr> is expected, but not found"}
		}
		var inputs []string
		output := ""
		foundOutput := false
		pres := cursor.Find("pre")
		for i := 0; i < pres.Length(); i++ {
			text := strings.TrimSpace(pres.Eq(i).Text())
			if strings.HasPrefix(text, returnsMarker) {
				output = strings.TrimPrefix(text, returnsMarker)
				foundOutput = true
				break
			}
			inputs = append(inputs, text)
		}
		if !foundOutput {
			return nil, &judge.SampleParseError{Reason: "<pre>Returns: ...</pre> is expected, but not found"}
		}

		raw = append(raw, rawSample{Inputs: inputs, Output: output})
	}

	return raw, nil
}

// normalizeLiteral converts one statement literal into the test case
// text format:
//
//	{1, 0, 1, 1, 0}  ->  5 1 0 1 1 0
//	"foo"            ->  foo
//	2                ->  2
//
// Brace lists become size-prefixed flat arrays, the convention most
// judges use for array input. The conversion is context-free per
// token; it does not consult the Definition's type information.
func normalizeLiteral(x string) string {
	if strings.HasPrefix(x, "{") && strings.HasSuffix(x, "}") && len(x) >= 2 {
		elems := strings.Split(x[1:len(x)-1], ",")
		parts := make([]string, 0, len(elems)+1)
		parts = append(parts, strconv.Itoa(len(elems)))
		for _, e := range elems {
			parts = append(parts, strings.TrimSpace(e))
		}
		return strings.Join(parts, " ")
	}
	if strings.HasPrefix(x, `"`) && strings.HasSuffix(x, `"`) && len(x) >= 2 {
		return x[1 : len(x)-1]
	}
	return x
}

func buildTestCases(raw []rawSample) []judge.TestCase {
	cases := make([]judge.TestCase, len(raw))
	for i, r := range raw {
		lines := make([]string, len(r.Inputs))
		for j, input := range r.Inputs {
			lines[j] = normalizeLiteral(input)
		}
		cases[i] = judge.TestCase{
			Name:       fmt.Sprintf("Example #%d", i),
			InputName:  "input",
			Input:      []byte(strings.Join(lines, "\n") + "\n"),
			OutputName: "output",
			Output:     []byte(normalizeLiteral(r.Output)),
		}
	}
	return cases
}
