package atcoder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"ojtools/lib/htmlutil"
	"ojtools/lib/judge"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// sample sections are titled "Sample Input N" / "Sample Output N" in
// the English rendering and 入力例/出力例 in the Japanese one; the
// ordinal is 1-based in both
var (
	sampleInputRegex  = regexp.MustCompile(`^(?:Sample Input|入力例)\s*(\d+)$`)
	sampleOutputRegex = regexp.MustCompile(`^(?:Sample Output|出力例)\s*(\d+)$`)
)

func (p *Problem) DownloadSampleCases(ctx context.Context, client judge.Fetcher) ([]judge.TestCase, error) {
	ctx, span := tracer.Start(ctx, "problem:DownloadSampleCases")
	defer span.End()

	body, err := client.Page(ctx, p.Url())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	cases, err := parseTaskStatement(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse task statement")
		return nil, err
	}

	slog.DebugContext(ctx, "parsed task statement", "task", p.ProblemId, "samples", len(cases))
	return cases, nil
}

func parseTaskStatement(doc *goquery.Document) ([]judge.TestCase, error) {
	statement := doc.Find("div#task-statement")
	if statement.Length() == 0 {
		return nil, &judge.SampleParseError{Reason: `<div id="task-statement"> is not found`}
	}

	// statements carry both language renderings; walking only one
	// avoids collecting every sample twice
	root := statement.Find("span.lang-en")
	if root.Length() == 0 {
		root = statement
	}

	inputs := map[int]string{}
	outputs := map[int]string{}
	root.Find("h3").Each(func(_ int, h3 *goquery.Selection) {
		title := strings.TrimSpace(h3.Text())
		pre := h3.Parent().Find("pre").First()
		if pre.Length() == 0 {
			return
		}
		if m := sampleInputRegex.FindStringSubmatch(title); m != nil {
			n, _ := strconv.Atoi(m[1])
			if _, dup := inputs[n]; !dup {
				inputs[n] = htmlutil.PreText(pre)
			}
			return
		}
		if m := sampleOutputRegex.FindStringSubmatch(title); m != nil {
			n, _ := strconv.Atoi(m[1])
			if _, dup := outputs[n]; !dup {
				outputs[n] = htmlutil.PreText(pre)
			}
		}
	})

	if len(inputs) == 0 {
		return nil, &judge.SampleParseError{Reason: "no sample sections found"}
	}

	cases := make([]judge.TestCase, 0, len(inputs))
	for i := 1; i <= len(inputs); i++ {
		input, ok := inputs[i]
		if !ok {
			return nil, judge.SampleParseErrorf("Sample Input %d is missing", i)
		}
		output, ok := outputs[i]
		if !ok {
			return nil, judge.SampleParseErrorf("Sample Output %d is missing", i)
		}
		cases = append(cases, judge.TestCase{
			Name:       fmt.Sprintf("Sample #%d", i),
			InputName:  fmt.Sprintf("Sample Input %d", i),
			Input:      []byte(terminate(input)),
			OutputName: fmt.Sprintf("Sample Output %d", i),
			Output:     []byte(terminate(output)),
		})
	}
	if len(outputs) != len(inputs) {
		return nil, &judge.SampleParseError{Reason: "sample input/output sections are unbalanced"}
	}
	return cases, nil
}

// terminate trims the markup padding around a sample block and ensures
// exactly one trailing line terminator.
func terminate(s string) string {
	return strings.TrimLeft(strings.TrimRight(s, " \t\r\n"), "\r\n") + "\n"
}
