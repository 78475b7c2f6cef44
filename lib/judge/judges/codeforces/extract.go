package codeforces

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ojtools/lib/htmlutil"
	"ojtools/lib/judge"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
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

	cases, err := parseSampleTests(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse sample tests")
		return nil, err
	}

	slog.DebugContext(ctx, "parsed sample tests",
		"contest", p.ContestId,
		"index", p.Index,
		"samples", len(cases),
	)
	return cases, nil
}

// parseSampleTests reads the statement's sample block:
//
//	<div class="sample-test">
//	  <div class="input"><div class="title">Input</div><pre>...</pre></div>
//	  <div class="output"><div class="title">Output</div><pre>...</pre></div>
//	  ...
//	</div>
//
// Inputs and outputs alternate; an unbalanced block means the page no
// longer follows the expected structure.
func parseSampleTests(doc *goquery.Document) ([]judge.TestCase, error) {
	sampleTest := doc.Find("div.sample-test")
	if sampleTest.Length() == 0 {
		return nil, &judge.SampleParseError{Reason: `<div class="sample-test"> is not found`}
	}

	inputs := sampleTest.Find("div.input pre")
	outputs := sampleTest.Find("div.output pre")
	if inputs.Length() == 0 {
		return nil, &judge.SampleParseError{Reason: "no sample inputs found"}
	}
	if inputs.Length() != outputs.Length() {
		return nil, judge.SampleParseErrorf(
			"sample inputs and outputs are unbalanced: %d inputs, %d outputs",
			inputs.Length(), outputs.Length(),
		)
	}

	cases := make([]judge.TestCase, inputs.Length())
	for i := 0; i < inputs.Length(); i++ {
		cases[i] = judge.TestCase{
			Name:       fmt.Sprintf("Sample #%d", i+1),
			InputName:  "Input",
			Input:      []byte(terminate(htmlutil.PreText(inputs.Eq(i)))),
			OutputName: "Output",
			Output:     []byte(terminate(htmlutil.PreText(outputs.Eq(i)))),
		}
	}
	return cases, nil
}

func terminate(s string) string {
	return strings.TrimLeft(strings.TrimRight(s, " \t\r\n"), "\r\n") + "\n"
}
